package parameter

// System execution priorities (lower runs first)
// Player motion resolves before the ring and cursor read it
const (
	PriorityPlayer     = 10
	PriorityThresholds = 20
	PriorityRing       = 30
	PriorityCursor     = 40
	PriorityScore      = 50
	PriorityPickup     = 60
	PriorityEvents     = 100 // after all state changes of the tick
	PriorityMetrics    = 110
)
