package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/content"
	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/event"
	"github.com/lixenwraith/run-or-die/placement"
	"github.com/lixenwraith/run-or-die/player"
	"github.com/lixenwraith/run-or-die/segment"
	"github.com/lixenwraith/run-or-die/spawn"
	"github.com/lixenwraith/run-or-die/status"
)

const testDT = 1.0 / 60

func testOptions(seed uint64) Options {
	return Options{
		Seed: seed,
		Ring: segment.RingConfig{
			Count:       4,
			Height:      10,
			SpeedScale:  1,
			WallContent: "wall",
		},
		Categories: []segment.Category{{
			Name:    "blades",
			Kind:    segment.KindPoint,
			Content: "blade",
			Constraint: placement.Constraint{
				Bounds:        core.NewBounds(-1.5, 1, 1.5, 9),
				MinCount:      1,
				MaxCount:      3,
				MinSeparation: 1,
			},
			Rotation: 90,
		}},
		Cursor: spawn.CursorConfig{
			Start:        spawn.DefaultStart,
			Lookahead:    spawn.DefaultLookahead,
			FallbackStep: spawn.DefaultFallbackStep,
			CullDistance: 20,
		},
		Rules:    []spawn.Rule{spawn.NewRule("spike", "spike")},
		Viewport: camera.Viewport{CenterY: 20, Width: 3, Height: 20, VerticalMargin: 10.5},
		Mover:    player.DefaultMoverConfig(),
		Defs: []content.Def{
			{Ref: "wall", Class: content.ClassWall},
			{Ref: "blade", Class: content.ClassHazard},
			{Ref: "spike", Class: content.ClassObstacle},
		},
	}
}

func newTestRun(t *testing.T, seed uint64) *Run {
	t.Helper()
	r, err := NewRun(testOptions(seed), nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	r.Start()
	return r
}

// script flaps every 20 frames so the mover keeps climbing
func script(r *Run, frames int) {
	for i := 0; i < frames; i++ {
		if i%20 == 0 {
			r.Flap()
		}
		r.Tick(testDT)
	}
}

func TestRunSystemOrder(t *testing.T) {
	r := newTestRun(t, 1)
	want := []string{"player", "thresholds", "ring", "cursor", "score", "pickup", "events", "metrics"}
	got := r.Systems()
	if len(got) != len(want) {
		t.Fatalf("%d systems, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Name() != want[i] {
			t.Errorf("system %d = %s, want %s", i, s.Name(), want[i])
		}
	}
}

func TestAddSystemKeepsPriorityOrder(t *testing.T) {
	r := newTestRun(t, 1)
	var order []string
	r.AddSystem(NewSystem("late", 1000, func(*Frame) { order = append(order, "late") }))
	r.AddSystem(NewSystem("early", 0, func(*Frame) { order = append(order, "early") }))
	r.Tick(testDT)

	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("order = %v, want [early late]", order)
	}
	if first := r.Systems()[0].Name(); first != "early" {
		t.Errorf("first system = %s", first)
	}
}

func TestRunDeterministic(t *testing.T) {
	a := newTestRun(t, 42)
	b := newTestRun(t, 42)
	script(a, 300)
	script(b, 300)

	if a.Digest() != b.Digest() {
		t.Fatal("same seed and inputs produced different runs")
	}
	if a.Rand().Draws() == 0 {
		t.Fatal("run drew no random values")
	}

	c := newTestRun(t, 43)
	script(c, 300)
	if a.Digest() == c.Digest() {
		t.Error("different seeds produced identical runs")
	}
}

func TestRunResetReproducesFreshRun(t *testing.T) {
	a := newTestRun(t, 7)
	script(a, 200)
	a.Reset()
	script(a, 200)

	b := newTestRun(t, 7)
	script(b, 200)

	if a.Digest() != b.Digest() {
		t.Error("reset run diverged from a fresh run with the same seed")
	}
	if a.Frame() != 200 {
		t.Errorf("Frame = %d after reset, want 200", a.Frame())
	}
}

func TestRunResetKeepsBest(t *testing.T) {
	r := newTestRun(t, 7)
	script(r, 200)
	best := r.Score().Best()
	if best <= 0 {
		t.Fatalf("best = %f after climbing", best)
	}
	r.Reset()
	if r.Score().Best() != best {
		t.Errorf("best = %f after reset, want %f", r.Score().Best(), best)
	}
}

func TestRunStopFreezes(t *testing.T) {
	r := newTestRun(t, 3)
	script(r, 30)
	r.Stop()
	if r.Running() {
		t.Fatal("Running after Stop")
	}

	digest, frame := r.Digest(), r.Frame()
	script(r, 30)
	if r.Digest() != digest || r.Frame() != frame {
		t.Error("stopped run advanced")
	}

	r.Start()
	r.Tick(testDT)
	if r.Frame() != frame+1 {
		t.Errorf("Frame = %d after resume, want %d", r.Frame(), frame+1)
	}
}

func TestRunPublishesEvents(t *testing.T) {
	r := newTestRun(t, 5)
	counts := make(map[event.EventType]int)
	r.HandleAll(func(e event.Event) { counts[e.Type]++ })

	script(r, 300)

	for _, et := range []event.EventType{event.EventRunStart, event.EventFlap, event.EventObstacleSpawned, event.EventSegmentRecycled} {
		if counts[et] == 0 {
			t.Errorf("no %s events", et)
		}
	}
	if counts[event.EventRunStart] != 1 {
		t.Errorf("%d run start events, want 1", counts[event.EventRunStart])
	}
	if got := r.Metrics().Int(status.RingRelocations); got != int64(counts[event.EventSegmentRecycled]) {
		t.Errorf("relocations metric %d, events %d", got, counts[event.EventSegmentRecycled])
	}
}

func TestRunWithoutPlayer(t *testing.T) {
	r := newTestRun(t, 1)
	r.SetTelemetrySource(nil)
	var warnings []string
	r.Handle(event.EventWarning, func(e event.Event) {
		warnings = append(warnings, e.Payload.(*event.WarningPayload).Cause)
	})
	anchors := r.Ring().Anchors()

	for i := 0; i < 5; i++ {
		r.Tick(testDT)
	}

	if got := r.Metrics().Warnings()["no_player"]; got != 5 {
		t.Errorf("no_player count = %d, want 5", got)
	}
	if len(warnings) != 1 || warnings[0] != "no_player" {
		t.Errorf("warning events = %v, want one no_player", warnings)
	}
	if r.Cursor().NextHeight() != spawn.DefaultStart {
		t.Errorf("cursor advanced to %f without a player", r.Cursor().NextHeight())
	}
	if got := r.Ring().Anchors(); !equalFloats(got, anchors) {
		t.Errorf("ring moved without a player: %v -> %v", anchors, got)
	}
}

func TestRunWithoutRulesIdlesCursor(t *testing.T) {
	opts := testOptions(1)
	opts.Rules = nil
	r, err := NewRun(opts, nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	r.Start()
	script(r, 10)

	if r.Cursor().Stats().Spawns != 0 {
		t.Error("cursor spawned without rules")
	}
	if got := r.Metrics().Warnings()["no_table"]; got != 10 {
		t.Errorf("no_table count = %d, want 10", got)
	}
}

func TestNewRunRejectsBrokenRing(t *testing.T) {
	opts := testOptions(1)
	opts.Ring.Count = 0
	if _, err := NewRun(opts, nil); !errors.Is(err, segment.ErrSegmentCount) {
		t.Errorf("err = %v, want ErrSegmentCount", err)
	}
}

func TestRunObjectSplit(t *testing.T) {
	r := newTestRun(t, 9)
	script(r, 60)

	band, world := r.BandObjects(), r.WorldObjects()
	if len(band)+len(world) != r.Store().Len() {
		t.Fatalf("split %d+%d, store holds %d", len(band), len(world), r.Store().Len())
	}
	for _, o := range world {
		if o.Ref != "spike" {
			t.Errorf("world object %d is %q", o.Handle, o.Ref)
		}
	}
	if len(world) != r.Cursor().Live() {
		t.Errorf("%d world objects, cursor owns %d", len(world), r.Cursor().Live())
	}
}

// coinOptions adds one coin per segment just above its bottom edge, in the player's column
func coinOptions(seed uint64) Options {
	opts := testOptions(seed)
	opts.Categories = append(opts.Categories, segment.Category{
		Name:    "coins",
		Kind:    segment.KindPoint,
		Content: "coin",
		Constraint: placement.Constraint{
			Bounds:   core.NewBounds(-0.1, 0.1, 0.1, 0.3),
			MinCount: 1,
			MaxCount: 1,
		},
	})
	opts.Defs = append(opts.Defs, content.Def{Ref: "coin", Class: content.ClassCoin, Value: 3})
	return opts
}

func TestRunCollectsCoins(t *testing.T) {
	r, err := NewRun(coinOptions(4), nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	var pickups []*event.CoinPayload
	r.Handle(event.EventCoinCollected, func(e event.Event) {
		pickups = append(pickups, e.Payload.(*event.CoinPayload))
	})
	r.Start()

	bottom := r.Ring().Segments()[0]
	before := bottom.OwnedCount()
	r.Tick(testDT)

	if len(pickups) != 1 {
		t.Fatalf("%d pickups on the first tick, want the bottom segment coin only", len(pickups))
	}
	if pickups[0].Value != 3 || pickups[0].Total != 3 || r.Score().Coins() != 3 {
		t.Errorf("pickup %+v, score coins %d, want value 3", *pickups[0], r.Score().Coins())
	}
	if r.Store().Has(pickups[0].Handle) {
		t.Error("collected coin still in the store")
	}
	if bottom.OwnedCount() != before-1 {
		t.Errorf("bottom segment owns %d, want %d", bottom.OwnedCount(), before-1)
	}
	if got := r.Metrics().Int(status.CoinsCollected); got != 3 {
		t.Errorf("coins metric = %d, want 3", got)
	}

	// Coins of higher segments stay until they scroll down to the player
	r.Tick(testDT)
	if len(pickups) != 1 {
		t.Errorf("%d pickups while resting, want 1", len(pickups))
	}
}

func TestRunCoinsResetWithRun(t *testing.T) {
	r, err := NewRun(coinOptions(4), nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	r.Start()
	r.Tick(testDT)
	if r.Score().Coins() == 0 {
		t.Fatal("no coin collected before reset")
	}

	r.Reset()
	if r.Score().Coins() != 0 {
		t.Errorf("coins = %d after reset", r.Score().Coins())
	}
	r.Tick(testDT)
	if r.Score().Coins() != 3 {
		t.Errorf("coins = %d after reset tick, want the respawned bottom coin", r.Score().Coins())
	}
}

func TestRunWithoutPlayerSkipsPickup(t *testing.T) {
	r, err := NewRun(coinOptions(4), nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	r.Start()
	r.SetTelemetrySource(nil)
	r.Tick(testDT)
	if r.Score().Coins() != 0 {
		t.Errorf("coins = %d without a player", r.Score().Coins())
	}
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
