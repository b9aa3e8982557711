package engine

import (
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/content"
	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/event"
	"github.com/lixenwraith/run-or-die/parameter"
	"github.com/lixenwraith/run-or-die/placement"
	"github.com/lixenwraith/run-or-die/player"
	"github.com/lixenwraith/run-or-die/segment"
	"github.com/lixenwraith/run-or-die/spawn"
	"github.com/lixenwraith/run-or-die/status"
	"github.com/lixenwraith/run-or-die/vmath"
)

// Options is everything a run is built from
type Options struct {
	Seed       uint64
	Ring       segment.RingConfig
	Categories []segment.Category
	Cursor     spawn.CursorConfig
	Rules      []spawn.Rule
	Viewport   camera.Viewport
	Mover      player.MoverConfig
	Defs       []content.Def

	// PickupRadius is the coin collection distance, 0 uses the reference radius
	PickupRadius float64
}

// Run owns one play-field: shared random stream, content store, ring, cursor, player and score
// All state changes happen inside Tick on the caller's goroutine
type Run struct {
	opts Options
	log  *slog.Logger

	rng      *vmath.Rand
	store    *content.Store
	solver   *placement.Solver
	pop      *segment.Populator
	ring     *segment.Ring
	table    *spawn.Table
	cursor   *spawn.Cursor
	mover    *player.Mover
	score    *player.Score
	viewport camera.Viewport
	source   core.TelemetrySource

	queue   *event.Queue
	router  *event.Router
	metrics *status.Registry
	systems []System

	frame   int64
	running bool
	started bool
	warned  map[string]bool

	lastCulled int
}

// NewRun builds a run from opts
// Ring invariant violations are returned; an unusable spawn table only idles the cursor
func NewRun(opts Options, log *slog.Logger) (*Run, error) {
	log = core.OrDiscard(log)
	r := &Run{
		opts:     opts,
		log:      log,
		rng:      vmath.NewRand(opts.Seed),
		store:    content.NewStore(content.NewRegistry(opts.Defs...)),
		viewport: opts.Viewport,
		queue:    event.NewQueue(),
		metrics:  status.NewRegistry(),
		warned:   make(map[string]bool),
	}
	r.router = event.NewRouter(r.queue)
	r.solver = placement.NewSolver(r.rng)
	r.pop = segment.NewPopulator(r.store, r.store, r.solver, opts.Categories, log.With("component", "populator"))

	ring, err := segment.NewRing(opts.Ring, r.pop, log.With("component", "ring"))
	if err != nil {
		return nil, errors.Wrap(err, "build segment ring")
	}
	r.ring = ring

	table := spawn.NewTable(opts.Rules...)
	if err := table.Validate(); err != nil {
		log.Warn("spawn table unusable, cursor idle", "error", err)
		table = nil
	}
	r.table = table

	sink := &eventSink{SpawnSink: r.store, run: r}
	r.cursor = spawn.NewCursor(opts.Cursor, table, sink, r.rng, log.With("component", "cursor"))

	r.mover = player.NewMover(opts.Mover)
	r.source = r.mover
	r.score = player.NewScore(opts.Mover.StartHeight)
	if r.opts.PickupRadius <= 0 {
		r.opts.PickupRadius = parameter.PlayerPickupRadius
	}

	r.addSystems()
	return r, nil
}

// AddSystem inserts s keeping systems ordered by priority; equal priorities keep insertion order
func (r *Run) AddSystem(s System) {
	r.systems = append(r.systems, s)
	for i := 0; i < len(r.systems)-1; i++ {
		for j := 0; j < len(r.systems)-i-1; j++ {
			if r.systems[j].Priority() > r.systems[j+1].Priority() {
				r.systems[j], r.systems[j+1] = r.systems[j+1], r.systems[j]
			}
		}
	}
}

// Systems returns the systems in execution order
func (r *Run) Systems() []System {
	out := make([]System, len(r.systems))
	copy(out, r.systems)
	return out
}

// Start populates the ring on first call and resumes ticking
func (r *Run) Start() {
	if r.running {
		return
	}
	if !r.started {
		stats := r.ring.Start()
		r.recordPopulate(stats)
		r.started = true
		r.push(event.EventRunStart, &event.RunPayload{Seed: r.rng.SeedValue()})
	}
	r.running = true
}

// Stop pauses the run; Tick does nothing until Start
func (r *Run) Stop() {
	if !r.running {
		return
	}
	r.running = false
	r.push(event.EventRunStop, &event.RunPayload{Seed: r.rng.SeedValue()})
	r.router.Drain()
}

// Running reports whether Tick advances the run
func (r *Run) Running() bool {
	return r.running
}

// Reset rewinds the random stream and every component to start-of-run state, then starts
// A reset run replays the same content as a fresh run with the same seed
func (r *Run) Reset() {
	r.Reseed(r.rng.SeedValue())
}

// Reseed resets the run under a new seed
func (r *Run) Reseed(seed uint64) {
	r.rng.Seed(seed)
	r.cursor.Reset()
	r.mover.Reset()
	r.score.Reset()
	r.metrics.Reset()
	r.frame = 0
	r.lastCulled = 0

	stats := r.ring.Reset()
	r.recordPopulate(stats)
	r.started = true
	r.running = true
	r.push(event.EventRunStart, &event.RunPayload{Seed: seed})
}

// Tick advances the run by dt seconds in fixed system order
func (r *Run) Tick(dt float64) {
	if !r.running || dt < 0 {
		return
	}
	r.frame++
	f := &Frame{Index: r.frame, DT: dt}
	for _, s := range r.systems {
		s.Update(f)
	}
}

// Flap applies a flap impulse to the reference mover
func (r *Run) Flap() {
	if !r.running {
		return
	}
	r.mover.Flap()
	r.push(event.EventFlap, nil)
}

// SetTelemetrySource replaces the player; nil detaches it and idles the cursor
func (r *Run) SetTelemetrySource(src core.TelemetrySource) {
	r.source = src
}

// SetViewport replaces the viewport thresholds derive from
func (r *Run) SetViewport(v camera.Viewport) {
	r.viewport = v
}

// Handle registers an event handler
func (r *Run) Handle(t event.EventType, h event.Handler) {
	r.router.Handle(t, h)
}

// HandleAll registers a handler for every event type
func (r *Run) HandleAll(h event.Handler) {
	r.router.HandleAll(h)
}

func (r *Run) push(t event.EventType, payload any) {
	r.queue.Push(event.Event{Type: t, Frame: r.frame, Payload: payload})
}

// warnOnce counts every occurrence and logs and publishes the first
func (r *Run) warnOnce(cause string) {
	r.metrics.Warn(cause)
	if r.warned[cause] {
		return
	}
	r.warned[cause] = true
	r.log.Warn("run degraded", "cause", cause)
	r.push(event.EventWarning, &event.WarningPayload{Cause: cause})
}

func (r *Run) recordPopulate(s segment.PopulateStats) {
	r.metrics.Inc(status.PopulateItems, int64(s.Items))
	r.metrics.Inc(status.PopulateUnderfill, int64(s.Underfill))
	r.metrics.Inc(status.PopulateSkipped, int64(s.Skipped))
}

// Options returns the options the run was built from
func (r *Run) Options() Options { return r.opts }

// Frame returns the index of the last tick
func (r *Run) Frame() int64 { return r.frame }

// Ring returns the segment ring
func (r *Run) Ring() *segment.Ring { return r.ring }

// Cursor returns the spawn cursor
func (r *Run) Cursor() *spawn.Cursor { return r.cursor }

// Store returns the content store
func (r *Run) Store() *content.Store { return r.store }

// Mover returns the reference mover
func (r *Run) Mover() *player.Mover { return r.mover }

// Score returns the score tracker
func (r *Run) Score() *player.Score { return r.score }

// Metrics returns the metrics registry
func (r *Run) Metrics() *status.Registry { return r.metrics }

// Rand returns the shared random stream
func (r *Run) Rand() *vmath.Rand { return r.rng }

// Viewport returns the current viewport
func (r *Run) Viewport() camera.Viewport { return r.viewport }

// Telemetry returns the current player telemetry
func (r *Run) Telemetry() (core.Telemetry, bool) {
	if r.source == nil {
		return core.Telemetry{}, false
	}
	return r.source.Telemetry()
}

// BandObjects returns segment content in band space, ordered by handle
func (r *Run) BandObjects() []content.Object {
	return r.objectsUnder(true)
}

// WorldObjects returns cursor content in world space, ordered by handle
func (r *Run) WorldObjects() []content.Object {
	return r.objectsUnder(false)
}

// objectsUnder splits the store into segment-owned and root-level cursor content
func (r *Run) objectsUnder(band bool) []content.Object {
	walls := make(map[core.Handle]bool)
	for _, seg := range r.ring.Segments() {
		if seg.Handle != core.RootHandle {
			walls[seg.Handle] = true
		}
	}
	owned := make(map[core.Handle]bool)
	for _, seg := range r.ring.Segments() {
		for _, h := range seg.Owned() {
			owned[h] = true
		}
	}

	var out []content.Object
	for _, o := range r.store.Objects() {
		inBand := walls[o.Handle] || walls[o.Parent] || owned[o.Handle]
		if inBand == band {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// eventSink publishes cursor spawns as events
type eventSink struct {
	core.SpawnSink
	run *Run
}

func (s *eventSink) Spawn(ref core.ContentRef, position mgl64.Vec3, rotation mgl64.Quat, parent core.Handle) (core.Handle, error) {
	h, err := s.SpawnSink.Spawn(ref, position, rotation, parent)
	if err == nil {
		s.run.push(event.EventObstacleSpawned, &event.SpawnPayload{Handle: h, Ref: ref, Position: position})
	}
	return h, err
}
