package core

// Visual is a drawable asset with a fixed number of animation frames
// Frame bookkeeping is keyed by the Visual value itself, so implementations must be comparable (pointers in practice)
type Visual interface {
	Name() string
	FrameCount() int
}

// Renderer draws world-space content; coordinates are meters, the renderer owns the scale
type Renderer interface {
	// BeginFrame clears the view and fixes the camera translation for this frame
	BeginFrame(cam Camera)
	DrawVisual(v Visual, e *Entity, frame int, scaleX, scaleY float64)
	DrawRect(x, y, w, h float64, color string)
	// EndFrame presents everything drawn since BeginFrame
	EndFrame()
}

// Sound is a loaded, replayable audio clip
type Sound interface {
	Name() string
}

// Audio plays sounds fire-and-forget
type Audio interface {
	LoadSound(name string) (Sound, error)
	PlaySound(s Sound, loop bool, volume float64)
}

// NopRenderer discards all drawing, used headless and in tests
type NopRenderer struct{}

func (NopRenderer) BeginFrame(Camera)                                   {}
func (NopRenderer) DrawVisual(Visual, *Entity, int, float64, float64)   {}
func (NopRenderer) DrawRect(float64, float64, float64, float64, string) {}
func (NopRenderer) EndFrame()                                           {}

type nopSound string

func (s nopSound) Name() string { return string(s) }

// NopAudio loads placeholder sounds and never plays them
type NopAudio struct{}

func (NopAudio) LoadSound(name string) (Sound, error) { return nopSound(name), nil }
func (NopAudio) PlaySound(Sound, bool, float64)       {}
