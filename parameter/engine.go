package parameter

import "time"

// Run loop timing
const (
	// FrameUpdateInterval is the interactive frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps dt after a stall so one frame cannot scroll a whole ring
	MaxFrameDelta = 100 * time.Millisecond

	// SimStep is the fixed dt used by the headless simulator
	SimStep = time.Second / 60
)

// Event queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo (1024 - 1)
	EventBufferMask = 1023
)

// Run reference values
const (
	DefaultSeed = 1

	ConfigFileName = "run-or-die.toml"
	EnvSeed        = "RUNORDIE_SEED"
	EnvAudio       = "RUNORDIE_AUDIO"
)
