package player

import (
	"math"

	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/parameter"
)

// MoverConfig configures the reference vertical controller
type MoverConfig struct {
	Gravity      float64
	FlapImpulse  float64
	RestEpsilon  float64
	MaxFallSpeed float64 // 0 leaves the fall uncapped
	StartHeight  float64
	Ground       bool    // stop at Floor instead of falling forever
	Floor        float64
}

// DefaultMoverConfig returns the reference tuning
func DefaultMoverConfig() MoverConfig {
	return MoverConfig{
		Gravity:      parameter.PlayerGravity,
		FlapImpulse:  parameter.PlayerFlapImpulse,
		RestEpsilon:  parameter.PlayerRestEpsilon,
		MaxFallSpeed: parameter.PlayerMaxFallSpeed,
		Ground:       true,
	}
}

// Mover integrates gravity and flap impulses on one axis
// It is the default telemetry source of a run
type Mover struct {
	cfg      MoverConfig
	height   float64
	velocity float64
	resting  bool
	flaps    int
}

// NewMover creates a mover at cfg.StartHeight
func NewMover(cfg MoverConfig) *Mover {
	if cfg.RestEpsilon <= 0 {
		cfg.RestEpsilon = parameter.PlayerRestEpsilon
	}
	m := &Mover{cfg: cfg}
	m.Reset()
	return m
}

// Flap replaces the vertical velocity with the flap impulse
func (m *Mover) Flap() {
	m.velocity = m.cfg.FlapImpulse
	m.resting = false
	m.flaps++
}

// Stop zeroes the vertical velocity
func (m *Mover) Stop() {
	m.velocity = 0
	m.resting = true
}

// Step advances the mover by dt seconds
func (m *Mover) Step(dt float64) {
	if dt <= 0 {
		return
	}
	m.velocity += m.cfg.Gravity * dt
	if m.cfg.MaxFallSpeed > 0 && m.velocity < -m.cfg.MaxFallSpeed {
		m.velocity = -m.cfg.MaxFallSpeed
	}
	m.height += m.velocity * dt

	if m.cfg.Ground && m.height <= m.cfg.Floor {
		m.height = m.cfg.Floor
		if m.velocity < 0 {
			m.velocity = 0
		}
	}
	m.resting = math.Abs(m.velocity) < m.cfg.RestEpsilon
}

// Reset returns the mover to its start state
func (m *Mover) Reset() {
	m.height = m.cfg.StartHeight
	m.velocity = 0
	m.resting = true
	m.flaps = 0
}

// Telemetry implements core.TelemetrySource
func (m *Mover) Telemetry() (core.Telemetry, bool) {
	return core.Telemetry{Height: m.height, Velocity: m.velocity, Resting: m.resting}, true
}

// Height returns the world-space height
func (m *Mover) Height() float64 { return m.height }

// Velocity returns the vertical velocity
func (m *Mover) Velocity() float64 { return m.velocity }

// Resting reports whether the mover is inside the rest dead zone
func (m *Mover) Resting() bool { return m.resting }

// Flaps returns the number of flaps this run
func (m *Mover) Flaps() int { return m.flaps }
