package event

// EventType identifies what happened during a tick
type EventType int

const (
	// EventRunStart marks a fresh or reset run
	// Trigger: Run.Start, Run.Reset
	// Consumer: audio, score | Payload: *RunPayload
	EventRunStart EventType = iota + 1

	// EventRunStop marks a paused run
	// Trigger: Run.Stop
	// Consumer: audio | Payload: *RunPayload
	EventRunStop

	// EventSegmentRecycled reports one relocated segment
	// Trigger: ring tick relocation
	// Consumer: audio, metrics | Payload: *SegmentPayload
	EventSegmentRecycled

	// EventObstacleSpawned reports one cursor spawn
	// Trigger: cursor tick
	// Consumer: audio, metrics | Payload: *SpawnPayload
	EventObstacleSpawned

	// EventContentCleared reports cursor content destroyed below the player
	// Trigger: cursor cull
	// Consumer: metrics | Payload: *ClearPayload
	EventContentCleared

	// EventFlap reports a player flap impulse
	// Trigger: input
	// Consumer: audio | Payload: nil
	EventFlap

	// EventNewBest reports the run's max height passing the best height
	// Trigger: score tracker
	// Consumer: audio, HUD | Payload: *ScorePayload
	EventNewBest

	// EventCoinCollected reports a coin picked up by the player
	// Trigger: pickup system
	// Consumer: audio, HUD | Payload: *CoinPayload
	EventCoinCollected

	// EventWarning reports a degraded dependency, once per cause
	// Trigger: any component running without configuration
	// Consumer: metrics | Payload: *WarningPayload
	EventWarning
)

var typeNames = map[EventType]string{
	EventRunStart:        "run_start",
	EventRunStop:         "run_stop",
	EventSegmentRecycled: "segment_recycled",
	EventObstacleSpawned: "obstacle_spawned",
	EventContentCleared:  "content_cleared",
	EventFlap:            "flap",
	EventNewBest:         "new_best",
	EventCoinCollected:   "coin_collected",
	EventWarning:         "warning",
}

// String returns the log name of the type
func (t EventType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Types returns every defined event type in declaration order
func Types() []EventType {
	return []EventType{
		EventRunStart, EventRunStop, EventSegmentRecycled, EventObstacleSpawned,
		EventContentCleared, EventFlap, EventNewBest, EventCoinCollected, EventWarning,
	}
}
