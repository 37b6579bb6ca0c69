package input

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/tilerun/constant"
	"github.com/lixenwraith/tilerun/core"
)

// Pump turns terminal events into press/release events for the scheduler
// Terminals only report presses and auto-repeats, so a release is synthesized once a held key
// has produced no event for releaseAfter
type Pump struct {
	screen       tcell.Screen
	table        *KeyTable
	out          chan<- Event
	releaseAfter time.Duration
	log          *zap.Logger

	held map[KeyCode]time.Time
}

// NewPump creates a pump writing to out
func NewPump(screen tcell.Screen, table *KeyTable, out chan<- Event, releaseAfter time.Duration, log *zap.Logger) *Pump {
	if log == nil {
		log = zap.NewNop()
	}
	switch {
	case releaseAfter <= 0:
		releaseAfter = constant.KeyReleaseAfter
	case releaseAfter < constant.MinKeyReleaseAfter:
		releaseAfter = constant.MinKeyReleaseAfter
	}
	return &Pump{
		screen:       screen,
		table:        table,
		out:          out,
		releaseAfter: releaseAfter,
		log:          log,
		held:         make(map[KeyCode]time.Time),
	}
}

// Run reads screen events until ctx ends or the player quits, which returns core.ErrQuit
func (p *Pump) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() { p.screen.ChannelEvents(events, quit) })

	ticker := time.NewTicker(p.releaseAfter / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			out, err := p.handle(ev, time.Now())
			if err != nil {
				return err
			}
			if err := p.send(ctx, out); err != nil {
				return err
			}

		case now := <-ticker.C:
			if err := p.send(ctx, p.expire(now)); err != nil {
				return err
			}
		}
	}
}

// handle converts one terminal event, returning core.ErrQuit for quit bindings
func (p *Pump) handle(ev tcell.Event, now time.Time) ([]Event, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
		return nil, nil

	case *tcell.EventKey:
		entry := p.table.Lookup(ev)
		switch entry.Behavior {
		case BehaviorQuit:
			p.log.Info("quit key", zap.String("key", ev.Name()))
			return nil, core.ErrQuit
		case BehaviorGame:
			_, wasHeld := p.held[entry.Code]
			p.held[entry.Code] = now
			if wasHeld {
				// auto-repeat keeps the key down
				return nil, nil
			}
			return []Event{{Code: entry.Code, Down: true}}, nil
		}
	}
	return nil, nil
}

// expire releases keys that have been silent for releaseAfter
func (p *Pump) expire(now time.Time) []Event {
	var out []Event
	for code, last := range p.held {
		if now.Sub(last) >= p.releaseAfter {
			delete(p.held, code)
			out = append(out, Event{Code: code, Down: false})
		}
	}
	return out
}

func (p *Pump) send(ctx context.Context, events []Event) error {
	for _, ev := range events {
		select {
		case p.out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
