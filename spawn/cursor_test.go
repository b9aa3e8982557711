package spawn

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/vmath"
)

type spawnRecord struct {
	ref      core.ContentRef
	position mgl64.Vec3
	parent   core.Handle
}

type recordSink struct {
	next    core.Handle
	spawned map[core.Handle]spawnRecord
	order   []core.Handle
	fail    bool
}

func newRecordSink() *recordSink {
	return &recordSink{spawned: make(map[core.Handle]spawnRecord)}
}

func (s *recordSink) Spawn(ref core.ContentRef, position mgl64.Vec3, _ mgl64.Quat, parent core.Handle) (core.Handle, error) {
	if s.fail {
		return 0, errors.New("refused")
	}
	s.next++
	s.spawned[s.next] = spawnRecord{ref: ref, position: position, parent: parent}
	s.order = append(s.order, s.next)
	return s.next, nil
}

func (s *recordSink) Destroy(h core.Handle) {
	delete(s.spawned, h)
}

func TestCursorSpacingScenario(t *testing.T) {
	r := rule("only", 1, 0, 10)
	r.SpacingMin, r.SpacingMax = 2, 2
	sink := newRecordSink()
	c := NewCursor(CursorConfig{Start: 5, Lookahead: 0}, NewTable(r), sink, vmath.NewRand(1), nil)

	n := c.Tick(5, true)
	if n != 1 {
		t.Fatalf("Tick spawned %d, want 1", n)
	}
	if c.NextHeight() != 7 {
		t.Errorf("NextHeight = %f, want 7", c.NextHeight())
	}
	got := sink.spawned[sink.order[0]]
	if got.position.Y() != 5 {
		t.Errorf("spawn y = %f, want 5", got.position.Y())
	}
}

func TestCursorFillsLookahead(t *testing.T) {
	sink := newRecordSink()
	c := NewCursor(CursorConfig{Start: 8, Lookahead: 30}, NewTable(NewRule("saw", "saw")), sink, vmath.NewRand(3), nil)

	c.Tick(0, true)
	if c.NextHeight() <= 30 {
		t.Errorf("NextHeight = %f, want past lookahead 30", c.NextHeight())
	}

	prev := -1.0
	for _, h := range sink.order {
		y := sink.spawned[h].position.Y()
		if y <= prev {
			t.Fatalf("spawn heights not increasing: %f after %f", y, prev)
		}
		if prev >= 0 && y-prev < DefaultSpacingMin-1e-9 {
			t.Errorf("gap %f below rule spacing", y-prev)
		}
		prev = y
	}

	before := len(sink.order)
	c.Tick(0, true)
	if len(sink.order) != before {
		t.Error("second tick at the same height spawned again")
	}
}

func TestCursorFallbackStep(t *testing.T) {
	sink := newRecordSink()
	c := NewCursor(CursorConfig{Start: 0, Lookahead: 10}, NewTable(rule("high", 1, 100, 200)), sink, vmath.NewRand(1), nil)

	if n := c.Tick(0, true); n != 0 {
		t.Fatalf("spawned %d with nothing eligible", n)
	}
	if c.NextHeight() != 12 {
		t.Errorf("NextHeight = %f, want 12 after three fallback steps", c.NextHeight())
	}
	if c.Stats().Fallbacks != 3 {
		t.Errorf("Fallbacks = %d, want 3", c.Stats().Fallbacks)
	}
}

func TestCursorMissingDependencies(t *testing.T) {
	table := NewTable(NewRule("saw", "saw"))
	sink := newRecordSink()

	tests := []struct {
		name       string
		table      *Table
		sink       core.SpawnSink
		havePlayer bool
	}{
		{"no player", table, sink, false},
		{"no table", nil, sink, true},
		{"no sink", table, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := vmath.NewRand(1)
			c := NewCursor(CursorConfig{Start: 8, Lookahead: 30}, tt.table, tt.sink, rng, nil)
			for i := 0; i < 3; i++ {
				if n := c.Tick(0, tt.havePlayer); n != 0 {
					t.Fatalf("spawned %d with missing dependency", n)
				}
			}
			if c.NextHeight() != 8 {
				t.Errorf("NextHeight advanced to %f", c.NextHeight())
			}
			if rng.Draws() != 0 {
				t.Errorf("idle tick consumed %d draws", rng.Draws())
			}
			if len(c.warned) != 1 || c.IdleCause() == "" {
				t.Errorf("warned %d times, want once", len(c.warned))
			}
		})
	}
}

func TestCursorResumesAfterRestore(t *testing.T) {
	rng := vmath.NewRand(1)
	c := NewCursor(CursorConfig{Start: 8, Lookahead: 30}, nil, newRecordSink(), rng, nil)
	c.Tick(0, true)

	c.SetTable(NewTable(NewRule("saw", "saw")))
	if n := c.Tick(0, true); n == 0 {
		t.Fatal("no spawns after table restored")
	}
}

func TestCursorSinkRestoreKeepsHeight(t *testing.T) {
	r := rule("only", 1, 0, 1000)
	r.SpacingMin, r.SpacingMax = 3, 3
	sink := newRecordSink()
	c := NewCursor(CursorConfig{Start: 8, Lookahead: 10}, NewTable(r), sink, vmath.NewRand(2), nil)

	c.Tick(0, true)
	parked := c.NextHeight()

	c.SetSink(nil)
	for h := 0.0; h < 50; h += 10 {
		if n := c.Tick(h, true); n != 0 {
			t.Fatalf("spawned %d while detached", n)
		}
	}
	if c.IdleCause() != IdleNoSink || c.NextHeight() != parked {
		t.Fatalf("detached cursor idle=%q next=%f, want %q at %f", c.IdleCause(), c.NextHeight(), IdleNoSink, parked)
	}

	spawned := len(sink.order)
	c.SetSink(sink)
	if n := c.Tick(50, true); n == 0 {
		t.Fatal("no spawns after sink restored")
	}
	first := sink.spawned[sink.order[spawned]]
	if first.position.Y() != parked {
		t.Errorf("first spawn after restore at %f, want parked height %f", first.position.Y(), parked)
	}
	for i := spawned + 1; i < len(sink.order); i++ {
		prev, cur := sink.spawned[sink.order[i-1]], sink.spawned[sink.order[i]]
		if d := cur.position.Y() - prev.position.Y(); d != 3 {
			t.Errorf("gap %f between spawns %d and %d, want 3", d, i-1, i)
		}
	}
}

func TestCursorLanes(t *testing.T) {
	mk := func(lane core.Lane) Rule {
		r := NewRule(lane.String(), "saw")
		r.LockToSide = true
		r.Lane = lane
		r.XRange = Span{Min: -2, Max: 3}
		return r
	}

	tests := []struct {
		lane core.Lane
		want float64
	}{
		{core.LaneLeft, -2},
		{core.LaneRight, 3},
		{core.LaneCenter, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.lane.String(), func(t *testing.T) {
			sink := newRecordSink()
			c := NewCursor(CursorConfig{Start: 0, Lookahead: 20, CenterX: 0.75}, NewTable(mk(tt.lane)), sink, vmath.NewRand(1), nil)
			c.Tick(0, true)
			for _, h := range sink.order {
				if x := sink.spawned[h].position.X(); x != tt.want {
					t.Errorf("x = %f, want %f", x, tt.want)
				}
			}
		})
	}
}

func TestCursorRandomXInRange(t *testing.T) {
	r := NewRule("mid", "saw")
	r.XRange = Span{Min: -1.5, Max: 1.5}
	sink := newRecordSink()
	c := NewCursor(CursorConfig{Start: 0, Lookahead: 500}, NewTable(r), sink, vmath.NewRand(8), nil)
	c.Tick(0, true)

	for _, h := range sink.order {
		if x := sink.spawned[h].position.X(); x < -1.5 || x > 1.5 {
			t.Errorf("x = %f outside range", x)
		}
	}
}

func TestCursorSpawnBound(t *testing.T) {
	r := NewRule("dense", "saw")
	r.SpacingMin, r.SpacingMax = 0, 0
	sink := newRecordSink()
	c := NewCursor(CursorConfig{Start: 0, Lookahead: 100, MaxSpawnsPerTick: 5}, NewTable(r), sink, vmath.NewRand(1), nil)

	if n := c.Tick(0, true); n != 5 {
		t.Fatalf("spawned %d, want cap 5", n)
	}
	// Spacing below 1 is floored to 1
	if c.NextHeight() != 5 {
		t.Errorf("NextHeight = %f, want 5", c.NextHeight())
	}
	c.Tick(0, true)
	last := sink.spawned[sink.order[5]].position.Y()
	if last != 5 {
		t.Errorf("resumed at %f, want 5", last)
	}
}

func TestCursorCullAndReset(t *testing.T) {
	sink := newRecordSink()
	c := NewCursor(CursorConfig{Start: 0, Lookahead: 50, CullDistance: 10}, NewTable(NewRule("saw", "saw")), sink, vmath.NewRand(4), nil)

	c.Tick(0, true)
	spawned := c.Live()
	c.Tick(40, true)
	if c.Stats().Culled == 0 {
		t.Fatal("nothing culled after climbing 40")
	}
	for _, h := range sink.order {
		rec, ok := sink.spawned[h]
		if ok && rec.position.Y() < 30 {
			t.Errorf("obstacle at %f survived cull line 30", rec.position.Y())
		}
	}
	if c.Live() != len(sink.spawned) {
		t.Errorf("Live = %d, sink holds %d", c.Live(), len(sink.spawned))
	}
	if spawned == 0 {
		t.Fatal("first tick spawned nothing")
	}

	c.Reset()
	if c.NextHeight() != 0 || c.Live() != 0 || len(sink.spawned) != 0 {
		t.Errorf("reset left next=%f live=%d sink=%d", c.NextHeight(), c.Live(), len(sink.spawned))
	}
}

func TestCursorDeterministic(t *testing.T) {
	run := func() []mgl64.Vec3 {
		sink := newRecordSink()
		table := NewTable(rule("a", 2, 0, 9999), rule("b", 1, 0, 9999))
		c := NewCursor(CursorConfig{Start: 8, Lookahead: 200}, table, sink, vmath.NewRand(555), nil)
		c.Tick(0, true)
		out := make([]mgl64.Vec3, 0, len(sink.order))
		for _, h := range sink.order {
			out = append(out, sink.spawned[h].position)
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs spawned %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("spawn %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCursorSinkErrorStillAdvances(t *testing.T) {
	sink := newRecordSink()
	sink.fail = true
	c := NewCursor(CursorConfig{Start: 0, Lookahead: 20}, NewTable(NewRule("saw", "saw")), sink, vmath.NewRand(1), nil)

	c.Tick(0, true)
	if c.NextHeight() <= 20 {
		t.Errorf("NextHeight = %f, cursor stalled on sink errors", c.NextHeight())
	}
	if c.Stats().SinkErrors == 0 || c.Stats().Spawns != 0 {
		t.Errorf("stats = %+v", c.Stats())
	}
}
