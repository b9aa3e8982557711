package status

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Metric keys written by the run loop
const (
	RingRelocations   = "ring.relocations"
	RingSpeed         = "ring.speed"
	PopulateItems     = "populate.items"
	PopulateUnderfill = "populate.underfill"
	PopulateSkipped   = "populate.skipped"
	CursorSpawns      = "cursor.spawns"
	CursorFallbacks   = "cursor.fallbacks"
	CursorCulled      = "cursor.culled"
	CursorNextHeight  = "cursor.next_height"
	ContentLive       = "content.live"
	PlayerHeight      = "player.height"
	ScoreBest         = "score.best"
	CoinsCollected    = "score.coins"
	RunFrames         = "run.frames"
	RunDraws          = "run.draws"

	warnPrefix = "warn."
)

// Registry is the metrics facade shared by the run and its readers
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Inc adds delta to an integer counter
func (r *Registry) Inc(key string, delta int64) int64 {
	return r.Ints.Get(key).Add(delta)
}

// Int reads an integer counter
func (r *Registry) Int(key string) int64 {
	return r.Ints.Get(key).Load()
}

// SetFloat stores a gauge
func (r *Registry) SetFloat(key string, v float64) {
	r.Floats.Get(key).Set(v)
}

// Float reads a gauge
func (r *Registry) Float(key string) float64 {
	return r.Floats.Get(key).Get()
}

// Warn counts one occurrence of a warning cause
func (r *Registry) Warn(cause string) {
	r.Inc(warnPrefix+cause, 1)
}

// Warnings returns warning counts keyed by cause
func (r *Registry) Warnings() map[string]int64 {
	out := make(map[string]int64)
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if cause, ok := strings.CutPrefix(key, warnPrefix); ok {
			out[cause] = v.Load()
		}
	})
	return out
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Reset zeroes every metric while keeping cached pointers valid
func (r *Registry) Reset() {
	r.Ints.Range(func(_ string, v *atomic.Int64) { v.Store(0) })
	r.Floats.Range(func(_ string, v *AtomicFloat) { v.Set(0) })
}

// Lines renders every metric as "key=value", sorted by key
func (r *Registry) Lines() []string {
	var lines []string
	r.Ints.Range(func(key string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.3f", key, v.Get()))
	})
	sort.Strings(lines)
	return lines
}
