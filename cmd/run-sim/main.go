// Command run-sim plays a seeded run headless and prints a deterministic digest
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lixenwraith/run-or-die/config"
	"github.com/lixenwraith/run-or-die/engine"
	"github.com/lixenwraith/run-or-die/event"
	"github.com/lixenwraith/run-or-die/parameter"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (default ./"+parameter.ConfigFileName+", then built-in)")
		seed       = flag.Uint64("seed", 0, "Run seed, overrides config when non-zero")
		frames     = flag.Int("frames", 3600, "Frames to simulate")
		flapEvery  = flag.Int("flap", 18, "Flap every N frames; 0 never flaps")
		verbose    = flag.Bool("v", false, "Log warnings to stderr")
		metrics    = flag.Bool("metrics", true, "Print metrics after the digest")
	)
	flag.Parse()

	log := slog.New(slog.DiscardHandler)
	if *verbose {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	cfg, err := config.Load(*configPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}

	run, err := engine.NewRun(cfg.Options(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}

	summary := simulate(run, *frames, *flapEvery)
	report(os.Stdout, run, summary, *metrics)
}

// summary counts events seen during a simulation
type summary struct {
	events map[event.EventType]int
}

func simulate(run *engine.Run, frames, flapEvery int) summary {
	s := summary{events: make(map[event.EventType]int)}
	run.HandleAll(func(e event.Event) { s.events[e.Type]++ })

	dt := parameter.SimStep.Seconds()
	run.Start()
	for i := 0; i < frames; i++ {
		if flapEvery > 0 && i%flapEvery == 0 {
			run.Flap()
		}
		run.Tick(dt)
	}
	return s
}

func report(w io.Writer, run *engine.Run, s summary, withMetrics bool) {
	fmt.Fprintf(w, "seed=%d frames=%d digest=%016x\n", run.Rand().SeedValue(), run.Frame(), run.Digest())
	for _, t := range event.Types() {
		if n := s.events[t]; n > 0 {
			fmt.Fprintf(w, "event.%s=%d\n", t, n)
		}
	}
	if !withMetrics {
		return
	}
	for _, line := range run.Metrics().Lines() {
		fmt.Fprintln(w, line)
	}
}
