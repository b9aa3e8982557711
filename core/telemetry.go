package core

// Telemetry is the player state consumed each tick
type Telemetry struct {
	Height   float64 // world-space height
	Velocity float64 // vertical velocity, positive is up
	Resting  bool    // forces zero scroll regardless of velocity
}

// TelemetrySource supplies player telemetry; ok is false when no player is attached
type TelemetrySource interface {
	Telemetry() (t Telemetry, ok bool)
}
