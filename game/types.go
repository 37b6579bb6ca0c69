package game

import (
	"github.com/lixenwraith/tilerun/core"
)

// Map runes of the demo entity types
const (
	TagPlayer core.TypeTag = '@'
	TagWall   core.TypeTag = '#'
	TagEnemy  core.TypeTag = 'E'
	TagCoin   core.TypeTag = '$'
)

// Tuning in meters and seconds
const (
	WalkSpeed   = 6.0
	JumpSpeed   = 11.0
	StompBounce = 7.0
	EnemySpeed  = 2.0
	FallLimit   = 20.0 // meters below the map before the player respawns

	CoinScore  = 10
	StompScore = 100

	walkAnimSpeed = 0.25
	coinAnimSpeed = 0.1
	wallColor     = "#8b5a2b"
)

// PlayerAttrs is the per-player state
type PlayerAttrs struct {
	SpawnX, SpawnY float64
	Facing         float64
	Grounded       bool
}

func (a *PlayerAttrs) Clone() core.Attributes {
	c := *a
	return &c
}

// EnemyAttrs is the per-walker state; Dir is -1 or 1
type EnemyAttrs struct {
	Dir float64
}

func (a *EnemyAttrs) Clone() core.Attributes {
	c := *a
	return &c
}
