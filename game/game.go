package game

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/tilerun/core"
	"github.com/lixenwraith/tilerun/engine"
	"github.com/lixenwraith/tilerun/input"
)

// Game is the demo platformer: a player collecting coins and stomping walkers between walls
type Game struct {
	sprites Sprites
	sounds  Sounds

	obstacles core.TypeSet
	enemies   core.TypeSet
	coins     core.TypeSet

	// loaded map, replayed once every coin is taken
	rows []string
	// lowest row of the loaded map, for the fall limit
	floorY float64

	score   *atomic.Int64
	coinsN  *atomic.Int64
	deaths  *atomic.Int64
	cleared *atomic.Int64
}

// Register adds the demo entity types to w and loads their sounds
// Sound failures are logged and leave the sound silent
func Register(w *engine.World, sprites Sprites) *Game {
	g := &Game{
		sprites:   sprites,
		obstacles: core.Types(TagWall),
		enemies:   core.Types(TagEnemy),
		coins:     core.Types(TagCoin),
		score:     w.Status.Int("score"),
		coinsN:    w.Status.Int("coins"),
		deaths:    w.Status.Int("deaths"),
		cleared:   w.Status.Int("cleared"),
	}

	g.sounds.Jump = g.loadSound(w, "jump")
	g.sounds.Coin = g.loadSound(w, "coin")
	g.sounds.Stomp = g.loadSound(w, "stomp")
	g.sounds.Hurt = g.loadSound(w, "hurt")

	w.AddEntityType(TagPlayer, engine.BehaviorFunc(g.updatePlayer), &PlayerAttrs{Facing: 1})
	w.AddEntityType(TagWall, engine.BehaviorFunc(g.updateWall), nil)
	w.AddEntityType(TagEnemy, engine.BehaviorFunc(g.updateEnemy), &EnemyAttrs{Dir: -1})
	w.AddEntityType(TagCoin, engine.BehaviorFunc(g.updateCoin), nil)
	return g
}

// Load places rows in w and records the map extent
func (g *Game) Load(w *engine.World, rows []string) error {
	n, err := w.CreateMap(rows)
	if err != nil {
		return err
	}
	g.rows = rows
	g.floorY = float64(len(rows)) * w.Settings.TileSize
	w.Log.Info("level loaded", zap.Int("entities", n), zap.Int("rows", len(rows)))
	return nil
}

// Score returns the current score
func (g *Game) Score() int64 {
	return g.score.Load()
}

// restart replays the loaded map from scratch, keeping the score
func (g *Game) restart(w *engine.World) error {
	g.cleared.Add(1)
	w.Log.Info("level cleared", zap.Int64("score", g.score.Load()))
	w.Reset()
	return g.Load(w, g.rows)
}

func (g *Game) coinsLeft(w *engine.World) bool {
	for e := range w.Store.All() {
		if e.Type == TagCoin {
			return true
		}
	}
	return false
}

func (g *Game) loadSound(w *engine.World, name string) core.Sound {
	s, err := w.LoadSound(name)
	if err != nil {
		w.Log.Warn("sound unavailable", zap.String("sound", name), zap.Error(err))
		return nil
	}
	return s
}

func (g *Game) play(w *engine.World, s core.Sound) {
	w.PlaySound(s, false, w.Settings.Audio.Volume)
}

func (g *Game) updatePlayer(e *core.Entity, w *engine.World) error {
	p := core.AttrsOf[PlayerAttrs](e)
	tile := w.Settings.TileSize
	if !e.IsInitialized {
		e.BBox = core.BBox{Left: 0.1 * tile, Width: 0.8 * tile, Height: tile}
		p.SpawnX, p.SpawnY = e.X, e.Y
		e.IsInitialized = true
	}

	e.SpeedX = 0
	if w.Keys.IsDown(input.KeyLeft) {
		e.SpeedX -= WalkSpeed
		p.Facing = -1
	}
	if w.Keys.IsDown(input.KeyRight) {
		e.SpeedX += WalkSpeed
		p.Facing = 1
	}
	if p.Grounded && (w.Keys.WentDown(input.KeySpace) || w.Keys.WentDown(input.KeyUp)) {
		e.SpeedY = -JumpSpeed
		g.play(w, g.sounds.Jump)
	}

	dt := w.Time.DeltaTime
	e.SpeedY += w.Settings.Gravity * dt

	// Landing on a walker from above stomps it
	if e.SpeedY > 0 && w.CheckCollision(e, g.enemies, 0, 0) == nil {
		if enemy := w.CheckCollision(e, g.enemies, 0, e.SpeedY*dt); enemy != nil {
			if err := w.RemoveEntity(enemy); err != nil {
				return err
			}
			e.SpeedY = -StompBounce
			g.score.Add(StompScore)
			g.play(w, g.sounds.Stomp)
		}
	}

	hits := w.MoveAndCheckForObstacles(e, g.obstacles)
	p.Grounded = hits.Vertical != nil && e.SpeedY == 0

	collected := false
	for {
		coin := w.CheckCollision(e, g.coins, 0, 0)
		if coin == nil {
			break
		}
		if err := w.RemoveEntity(coin); err != nil {
			return err
		}
		collected = true
		g.score.Add(CoinScore)
		g.coinsN.Add(1)
		g.play(w, g.sounds.Coin)
	}
	if collected && !g.coinsLeft(w) {
		// the store is being walked, so the map is replayed after the pass
		w.Defer(g.restart)
	}

	if w.CheckCollision(e, g.enemies, 0, 0) != nil || (g.floorY > 0 && e.Y > g.floorY+FallLimit) {
		g.respawn(w, e, p)
	}

	w.Camera.X = e.X + tile/2
	w.Camera.Y = e.Y

	anim := 0.0
	if e.SpeedX != 0 {
		anim = walkAnimSpeed
	}
	w.DrawSprite(g.sprites.Player, e, anim, p.Facing, 1)
	return nil
}

func (g *Game) respawn(w *engine.World, e *core.Entity, p *PlayerAttrs) {
	e.X, e.Y = p.SpawnX, p.SpawnY
	e.SpeedX, e.SpeedY = 0, 0
	p.Grounded = false
	g.deaths.Add(1)
	g.play(w, g.sounds.Hurt)
	w.Log.Debug("player respawned", zap.Stringer("ref", e.Ref))
}

func (g *Game) updateWall(e *core.Entity, w *engine.World) error {
	tile := w.Settings.TileSize
	if !e.IsInitialized {
		e.BBox = core.BBox{Width: tile, Height: tile}
		e.IsInitialized = true
	}
	w.DrawRect(e.X, e.Y, tile, tile, wallColor)
	return nil
}

func (g *Game) updateEnemy(e *core.Entity, w *engine.World) error {
	a := core.AttrsOf[EnemyAttrs](e)
	tile := w.Settings.TileSize
	if !e.IsInitialized {
		e.BBox = core.BBox{Width: tile, Height: tile}
		e.IsInitialized = true
	}

	e.SpeedX = a.Dir * EnemySpeed
	e.SpeedY += w.Settings.Gravity * w.Time.DeltaTime
	if hits := w.MoveAndCheckForObstacles(e, g.obstacles); hits.Horizontal != nil {
		a.Dir = -a.Dir
	}

	w.DrawSprite(g.sprites.Enemy, e, walkAnimSpeed/2, -a.Dir, 1)
	return nil
}

func (g *Game) updateCoin(e *core.Entity, w *engine.World) error {
	tile := w.Settings.TileSize
	if !e.IsInitialized {
		e.BBox = core.BBox{Left: 0.25 * tile, Top: 0.25 * tile, Width: 0.5 * tile, Height: 0.5 * tile}
		e.IsInitialized = true
	}
	w.DrawSprite(g.sprites.Coin, e, coinAnimSpeed, 1, 1)
	return nil
}
