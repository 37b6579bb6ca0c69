package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tilerun/audio"
	"github.com/lixenwraith/tilerun/config"
	"github.com/lixenwraith/tilerun/constant"
	"github.com/lixenwraith/tilerun/core"
	"github.com/lixenwraith/tilerun/engine"
	"github.com/lixenwraith/tilerun/game"
	"github.com/lixenwraith/tilerun/input"
	"github.com/lixenwraith/tilerun/level"
	"github.com/lixenwraith/tilerun/render"
)

var (
	configFlag  = flag.String("config", "tilerun.yaml", "settings file, defaults apply when missing")
	levelFlag   = flag.String("level", "", "YAML level file, overrides the settings file")
	debugFlag   = flag.Bool("debug", false, "write debug logs to the log file")
	profileFlag = flag.String("profile", "", "profile mode: cpu, mem")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tilerun: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *levelFlag != "" {
		settings.Level = *levelFlag
	}

	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileFlag)
	}

	log, err := setupLogging(settings.Log, *debugFlag)
	if err != nil {
		return err
	}
	defer log.Sync()

	rows := game.DefaultLevel.Rows
	if settings.Level != "" {
		lvl, err := level.LoadFile(settings.Level)
		if err != nil {
			return err
		}
		rows = lvl.Rows
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	core.SetCrashTerminal(screen)
	defer core.Recover()

	world := engine.NewWorld(settings, log)
	renderer := render.NewTerminalRenderer(screen, settings.PixelsPerMeter)
	renderer.SetHUD(render.NewHUD(world.Status))
	world.Renderer = renderer

	if settings.Audio.Enabled {
		sm := audio.NewSoundManager(settings.Audio.SoundDir, log)
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the game runs silent
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			world.Audio = sm
			defer sm.Cleanup()
		}
	}

	g := game.Register(world, game.DefaultSprites())
	if err := g.Load(world, rows); err != nil {
		return err
	}

	events := make(chan input.Event, constant.InputQueueSize)
	pump := input.NewPump(screen, input.DefaultKeyTable(), events, settings.Input.ReleaseAfter, log)

	host := engine.NewTickerHost(settings.FrameInterval)
	defer host.Stop()
	scheduler := engine.NewClockScheduler(world, nil, host, events)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer core.Recover()
		return pump.Run(ctx)
	})
	grp.Go(func() error {
		defer core.Recover()
		return scheduler.Run(ctx)
	})

	err = grp.Wait()
	log.Info("shutdown",
		zap.Uint64("ticks", scheduler.TickCount()),
		zap.Int64("score", g.Score()),
		zap.Error(err),
	)
	if errors.Is(err, core.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
