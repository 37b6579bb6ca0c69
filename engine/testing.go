package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/tilerun/config"
	"github.com/lixenwraith/tilerun/core"
)

// TestEpoch is the start time of test clocks
var TestEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewTestWorld creates a world with default settings, a mock clock and a recording renderer
// This is a test helper shared by packages building on the engine
func NewTestWorld() (*World, *MockTimeProvider, *RecordingRenderer) {
	clock := NewMockTimeProvider(TestEpoch)
	w := NewWorld(config.Default(), nil)
	w.Time = NewTimeInfo(clock.Now())
	rec := &RecordingRenderer{}
	w.Renderer = rec
	return w, clock, rec
}

// DrawCall is one DrawVisual recorded by RecordingRenderer
type DrawCall struct {
	Asset          string
	Ref            core.Ref
	Frame          int
	ScaleX, ScaleY float64
}

// RecordingRenderer remembers what was drawn, for assertions
type RecordingRenderer struct {
	Frames  int
	Cameras []core.Camera
	Draws   []DrawCall
	Rects   int
	open    bool
}

func (r *RecordingRenderer) BeginFrame(cam core.Camera) {
	r.Cameras = append(r.Cameras, cam)
	r.open = true
}

func (r *RecordingRenderer) DrawVisual(v core.Visual, e *core.Entity, frame int, scaleX, scaleY float64) {
	r.Draws = append(r.Draws, DrawCall{Asset: v.Name(), Ref: e.Ref, Frame: frame, ScaleX: scaleX, ScaleY: scaleY})
}

func (r *RecordingRenderer) DrawRect(x, y, w, h float64, color string) {
	r.Rects++
}

func (r *RecordingRenderer) EndFrame() {
	if r.open {
		r.Frames++
	}
	r.open = false
}

// StepHost advances a mock clock by Step per frame and stops the loop after Limit frames
type StepHost struct {
	Clock  *MockTimeProvider
	Step   time.Duration
	Limit  int
	frames int
}

func (h *StepHost) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.frames >= h.Limit {
		return context.Canceled
	}
	h.frames++
	h.Clock.Advance(h.Step)
	return nil
}
