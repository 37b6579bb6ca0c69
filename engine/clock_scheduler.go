package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/tilerun/constant"
	"github.com/lixenwraith/tilerun/input"
	"github.com/lixenwraith/tilerun/status"
)

// SchedulerState is the lifecycle of the game loop
type SchedulerState uint8

const (
	StateIdle SchedulerState = iota
	StateRunning
)

func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// ErrNotRunning is returned by Tick before Start
var ErrNotRunning = errors.New("scheduler not running")

// Host paces the loop; NextFrame blocks until the next tick may run
type Host interface {
	NextFrame(ctx context.Context) error
}

// TickerHost paces frames with a fixed interval ticker
type TickerHost struct {
	ticker *time.Ticker
}

// NewTickerHost creates a host firing every interval
func NewTickerHost(interval time.Duration) *TickerHost {
	if interval <= 0 {
		interval = constant.FrameUpdateInterval
	}
	return &TickerHost{ticker: time.NewTicker(interval)}
}

func (h *TickerHost) NextFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.ticker.C:
		return nil
	}
}

// Stop releases the ticker
func (h *TickerHost) Stop() {
	h.ticker.Stop()
}

// ClockScheduler runs the game loop: one tick updates every entity, clears input edges and advances time
// Ticks run to completion on the calling goroutine; the only suspension point is Host.NextFrame between ticks
type ClockScheduler struct {
	world  *World
	clock  TimeProvider
	host   Host
	events <-chan input.Event

	state     SchedulerState
	tickCount uint64

	// Cached metric pointers
	statTicks    *atomic.Int64
	statEntities *atomic.Int64
	statDelta    *status.Float
	statTotal    *status.Float
}

// NewClockScheduler creates an idle scheduler
// events may be nil when nothing feeds input, clock nil uses the monotonic clock
func NewClockScheduler(world *World, clock TimeProvider, host Host, events <-chan input.Event) *ClockScheduler {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &ClockScheduler{
		world:        world,
		clock:        clock,
		host:         host,
		events:       events,
		state:        StateIdle,
		statTicks:    world.Status.Int("engine.ticks"),
		statEntities: world.Status.Int("engine.entities"),
		statDelta:    world.Status.Float("time.delta"),
		statTotal:    world.Status.Float("time.total"),
	}
}

// State returns the lifecycle state
func (cs *ClockScheduler) State() SchedulerState {
	return cs.state
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount
}

// Start moves Idle → Running and samples the clock; later calls are no-ops
func (cs *ClockScheduler) Start() {
	if cs.state == StateRunning {
		return
	}
	cs.world.Time.PrevSample = cs.clock.Now()
	cs.state = StateRunning
	cs.world.Log.Info("scheduler running",
		zap.Int("entities", cs.world.Store.Count()),
		zap.Float64("time_speed", cs.world.Settings.TimeSpeed),
	)
}

// Run starts the loop and ticks until ctx ends or a tick fails
// The first tick runs immediately, each following one after Host.NextFrame
func (cs *ClockScheduler) Run(ctx context.Context) error {
	cs.Start()
	for {
		if err := cs.Tick(); err != nil {
			return err
		}
		if err := cs.host.NextFrame(ctx); err != nil {
			return err
		}
	}
}

// Tick runs one simulation step
//
//  1. queued input events are applied to the key state
//  2. each live entity within the slot range present at tick start runs its type's behavior;
//     entities removed earlier in the same pass are skipped
//  3. work queued with World.Defer runs
//  4. key edge flags are cleared
//  5. the clock advances
//
// A behavior error aborts the tick and is returned wrapped with the entity it came from
func (cs *ClockScheduler) Tick() error {
	if cs.state != StateRunning {
		return ErrNotRunning
	}
	w := cs.world

	if cs.events != nil {
		w.Keys.Drain(cs.events)
	}

	w.Renderer.BeginFrame(w.Camera)
	err := cs.updateEntities()
	w.Renderer.EndFrame()
	if err == nil {
		err = w.runDeferred()
	}
	if err != nil {
		w.Log.Error("tick failed", zap.Uint64("tick", cs.tickCount), zap.Error(err))
		return err
	}

	w.Keys.ClearEdges()

	if w.Time.Advance(cs.clock.Now(), w.Settings.TimeSpeed) {
		w.Log.Debug("frame delta clamped", zap.Uint64("tick", cs.tickCount))
	}

	cs.tickCount++
	cs.statTicks.Store(int64(cs.tickCount))
	cs.statEntities.Store(int64(w.Store.Count()))
	cs.statDelta.Set(w.Time.DeltaTime)
	cs.statTotal.Set(w.Time.TotalTime)
	return nil
}

func (cs *ClockScheduler) updateEntities() error {
	w := cs.world
	n := w.Store.Len()
	for i := 0; i < n; i++ {
		e, ok := w.Store.At(i)
		if !ok {
			continue
		}
		typ, err := w.Types.Lookup(e.Type)
		if err != nil {
			return fmt.Errorf("entity %s: %w", e.Ref, err)
		}
		if typ.Behavior == nil {
			continue
		}
		if err := typ.Behavior.Update(e, w); err != nil {
			return fmt.Errorf("update %s entity %s: %w", e.Type, e.Ref, err)
		}
	}
	return nil
}
