package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/run-or-die/core"
)

// Event is one queued notification stamped with the frame it happened in
type Event struct {
	Type    EventType
	Frame   int64
	Payload any
}

// RunPayload carries the run seed
type RunPayload struct {
	Seed uint64
}

// SegmentPayload describes a relocation
type SegmentPayload struct {
	ID     uuid.UUID
	Index  int
	Anchor float64
	Items  int // content spawned by the repopulate
}

// SpawnPayload describes a cursor spawn
type SpawnPayload struct {
	Handle   core.Handle
	Ref      core.ContentRef
	Position mgl64.Vec3
}

// ClearPayload counts destroyed content
type ClearPayload struct {
	Count int
}

// ScorePayload carries the new best height
type ScorePayload struct {
	Best float64
}

// CoinPayload describes one pickup
type CoinPayload struct {
	Handle core.Handle
	Value  int
	Total  int // coins collected this run after the pickup
}

// WarningPayload names a degraded dependency
type WarningPayload struct {
	Cause string
}
