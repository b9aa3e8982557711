package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/run-or-die/audio"
	"github.com/lixenwraith/run-or-die/config"
	"github.com/lixenwraith/run-or-die/engine"
	"github.com/lixenwraith/run-or-die/input"
	"github.com/lixenwraith/run-or-die/parameter"
	"github.com/lixenwraith/run-or-die/render"
)

var (
	configFlag = flag.String("config", "", "Config file (default ./"+parameter.ConfigFileName+", then built-in)")
	seedFlag   = flag.Uint64("seed", 0, "Run seed, overrides config and environment when non-zero")
	logFlag    = flag.String("log", "", "Log file; empty discards logs")
	debugFlag  = flag.Bool("debug", false, "Log at debug level")
	muteFlag   = flag.Bool("mute", false, "Disable audio cues")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	log, logFile := setupLogging(*logFlag, level)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Run.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	run, err := engine.NewRun(cfg.Options(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	defer func() { finish(screen, logFile, recover(), os.Stderr, os.Exit) }()
	screen.HideCursor()

	cues := audio.NewCuePlayer(audio.Config{Enabled: cfg.Audio.Enabled, Volume: cfg.Audio.Volume}, log.With("component", "audio"))
	if err := cues.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without audio", "error", err)
	}
	defer cues.Close()
	cues.Attach(run)

	loop(screen, run, cues, log)
}

// finish restores the terminal once; after a panic it prints the crash, closes the log and exits
// os.Exit skips deferred calls, so the log is closed here rather than by main's defer
func finish(screen tcell.Screen, logFile *os.File, crash any, stderr io.Writer, exit func(int)) {
	screen.Fini()
	if crash == nil {
		return
	}
	fmt.Fprintf(stderr, "\n\x1b[31mRUN-OR-DIE CRASHED: %v\x1b[0m\n", crash)
	fmt.Fprintf(stderr, "Stack Trace:\n%s\n", debug.Stack())
	if logFile != nil {
		logFile.Close()
	}
	exit(1)
}

// loop runs input, ticks and rendering until quit
// Input is polled on its own goroutine; every run mutation happens here
func loop(screen tcell.Screen, run *engine.Run, cues *audio.CuePlayer, log *slog.Logger) {
	keys := input.DefaultKeyTable()
	renderer := render.NewRenderer(screen)
	clock := engine.NewFrameClock(engine.NewMonotonicTimeProvider(), parameter.MaxFrameDelta)

	events := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	run.Start()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if !handleIntent(keys.Translate(ev), run, clock, cues, log) {
					return
				}
			}

		case <-ticker.C:
			run.Tick(clock.Delta())
			renderer.Draw(render.SceneFromRun(run))
		}
	}
}

// handleIntent applies one input intent; returns false to quit
func handleIntent(intent input.IntentType, run *engine.Run, clock *engine.FrameClock, cues *audio.CuePlayer, log *slog.Logger) bool {
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentFlap:
		run.Flap()
	case input.IntentPause:
		if run.Running() {
			run.Stop()
			clock.Pause()
		} else {
			clock.Resume()
			run.Start()
		}
	case input.IntentReset:
		run.Reset()
		clock.Resume()
		log.Info("run reset", "seed", run.Rand().SeedValue(), "best", run.Score().Best())
	case input.IntentToggleMute:
		cues.SetMuted(!cues.Muted())
	}
	return true
}
