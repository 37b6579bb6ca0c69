package constant

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta is the largest scaled delta (seconds) accepted as-is
	MaxFrameDelta = 0.1

	// FallbackFrameDelta replaces deltas above MaxFrameDelta, e.g. after the process was suspended
	FallbackFrameDelta = 0.016

	// InputQueueSize is the buffered capacity between the input pump and the scheduler
	InputQueueSize = 256
)

// World Defaults
const (
	// PixelsPerMeter is terminal cells per world meter
	PixelsPerMeter = 2.0
	TileSize       = 1.0
	TimeSpeed      = 1.0
	Gravity        = 20.0

	// BackgroundColor fills the view before each entity pass
	BackgroundColor = "#444444"
)
