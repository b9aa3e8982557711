package player

import (
	"math"
	"testing"
)

func TestMoverFlapArc(t *testing.T) {
	m := NewMover(DefaultMoverConfig())
	if _, ok := m.Telemetry(); !ok {
		t.Fatal("mover should always report telemetry")
	}

	m.Flap()
	tm, _ := m.Telemetry()
	if tm.Velocity != 8 || tm.Resting {
		t.Fatalf("after flap: %+v", tm)
	}

	peak := 0.0
	for i := 0; i < 120; i++ {
		m.Step(1.0 / 60)
		peak = math.Max(peak, m.Height())
	}
	// v^2 / 2g = 64 / 40
	if math.Abs(peak-1.6) > 0.15 {
		t.Errorf("peak height = %f, want about 1.6", peak)
	}
	if m.Height() != 0 || !m.Resting() {
		t.Errorf("after landing: height=%f resting=%v", m.Height(), m.Resting())
	}
}

func TestMoverRestingAtApex(t *testing.T) {
	cfg := DefaultMoverConfig()
	cfg.RestEpsilon = 0.5
	m := NewMover(cfg)
	m.Flap()

	sawRest := false
	for i := 0; i < 60; i++ {
		m.Step(0.01)
		if m.Resting() && m.Height() > 0 {
			sawRest = true
		}
	}
	if !sawRest {
		t.Error("mover never reported resting near the apex")
	}
}

func TestMoverFallCap(t *testing.T) {
	cfg := DefaultMoverConfig()
	cfg.Ground = false
	cfg.MaxFallSpeed = 5
	m := NewMover(cfg)
	for i := 0; i < 100; i++ {
		m.Step(0.1)
	}
	if m.Velocity() != -5 {
		t.Errorf("Velocity = %f, want capped -5", m.Velocity())
	}
	if m.Height() >= 0 {
		t.Errorf("ungrounded mover should fall, height %f", m.Height())
	}

	m.Reset()
	if m.Height() != 0 || m.Velocity() != 0 || m.Flaps() != 0 {
		t.Error("Reset did not restore start state")
	}
}

func TestScorePausesOnDescent(t *testing.T) {
	s := NewScore(0)

	heights := []float64{1, 3, 2, 1, 2.5, 4, 3}
	wantMax := []float64{1, 3, 3, 3, 3, 4, 4}
	for i, h := range heights {
		s.Update(h)
		if s.Height() != wantMax[i] {
			t.Errorf("step %d: Height = %f, want %f", i, s.Height(), wantMax[i])
		}
	}
	if s.Meters() != 4 {
		t.Errorf("Meters = %d, want 4", s.Meters())
	}
}

func TestScoreBestAcrossRuns(t *testing.T) {
	s := NewScore(2)
	if !s.Update(12) {
		t.Error("first climb should set a best")
	}
	s.Reset()
	if s.Height() != 0 {
		t.Errorf("Height after reset = %f", s.Height())
	}
	if s.Update(8) {
		t.Error("lower run should not set a best")
	}
	if s.Best() != 10 {
		t.Errorf("Best = %f, want 10", s.Best())
	}
	if !s.Update(13) || s.Best() != 11 {
		t.Errorf("Best = %f, want 11", s.Best())
	}
}

func TestScoreCoins(t *testing.T) {
	s := NewScore(0)
	s.AddCoins(3)
	s.AddCoins(-5)
	s.AddCoins(0)
	if s.Coins() != 3 {
		t.Errorf("Coins = %d, want 3", s.Coins())
	}
	s.Reset()
	if s.Coins() != 0 {
		t.Error("coins should reset per run")
	}
}
