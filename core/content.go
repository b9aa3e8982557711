package core

import "github.com/go-gl/mathgl/mgl64"

// ContentRef names what to instantiate; the host decides what the name means
type ContentRef string

// None reports whether the reference is unset
func (r ContentRef) None() bool { return r == "" }

// Handle identifies one spawned object; zero is the world root and never a spawned object
type Handle uint64

// RootHandle parents objects directly in world space
const RootHandle Handle = 0

// SpawnSink materializes content for the core
// Spawn must be safe to call repeatedly; every returned handle can later be destroyed
// When parent is not RootHandle, position is local to the parent
type SpawnSink interface {
	Spawn(ref ContentRef, position mgl64.Vec3, rotation mgl64.Quat, parent Handle) (Handle, error)
	Destroy(h Handle)
}

// SizeQuery answers footprint queries for content references
type SizeQuery interface {
	Size(ref ContentRef) (mgl64.Vec2, bool)
}

// Lane is a fixed horizontal lane for side-locked rules
type Lane int

const (
	LaneCenter Lane = 0
	LaneLeft   Lane = -1
	LaneRight  Lane = 1
)

// String returns the config spelling of the lane
func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneRight:
		return "right"
	default:
		return "center"
	}
}

// ParseLane maps config text to a lane; anything unrecognized is center
func ParseLane(s string) Lane {
	switch s {
	case "left", "Left", "LEFT":
		return LaneLeft
	case "right", "Right", "RIGHT":
		return LaneRight
	default:
		return LaneCenter
	}
}

// Placer moves an existing object; sinks that track transforms implement it
type Placer interface {
	Place(h Handle, position mgl64.Vec3)
}

