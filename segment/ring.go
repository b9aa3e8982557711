package segment

import (
	"log/slog"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/core"
)

// Ring defaults
const (
	DefaultSegmentCount  = 4
	DefaultSegmentHeight = 10.0
	DefaultDeadZone      = 0.05
	DefaultSpeedScale    = 1.0
)

// chainEpsilon tolerates float drift when validating supplied anchors
const chainEpsilon = 1e-6

var (
	ErrSegmentCount  = errors.New("segment count does not match ring size")
	ErrSegmentHeight = errors.New("segment height must be positive")
	ErrAnchorChain   = errors.New("segment anchors are not a contiguous chain")
)

// RingConfig configures the segment ring
type RingConfig struct {
	Count       int
	Height      float64          // 0 measures WallContent through the size query
	Anchors     []float64        // explicit start anchors; empty derives StartAnchor + i*Height
	StartAnchor float64          // lowest anchor when Anchors is empty
	SpeedScale  float64          // scroll speed = -velocity * SpeedScale
	DeadZone    float64          // |velocity| below this scrolls nothing
	WallContent core.ContentRef  // spawned once per segment as the parent of its content
	Origin      mgl64.Vec3       // X and Z shared by every anchor
}

// TickResult reports what one ring tick did
type TickResult struct {
	Speed     float64
	Delta     float64
	Relocated []*Segment
	Stats     PopulateStats // summed over relocated segments
}

// Ring recycles a fixed set of segments to simulate endless vertical travel
// Sorted anchors always form a contiguous chain spaced by the segment height
type Ring struct {
	cfg      RingConfig
	height   float64
	segments []*Segment
	start    []float64
	pop      *Populator
	placer   core.Placer
	log      *slog.Logger

	speed float64
	order []*Segment
}

// NewRing validates cfg and builds the segments
// Invariant violations are returned as errors and the ring must not be used
func NewRing(cfg RingConfig, pop *Populator, log *slog.Logger) (*Ring, error) {
	if cfg.Count <= 0 {
		return nil, errors.Wrapf(ErrSegmentCount, "count %d", cfg.Count)
	}
	if len(cfg.Anchors) > 0 && len(cfg.Anchors) != cfg.Count {
		return nil, errors.Wrapf(ErrSegmentCount, "%d anchors for ring of %d", len(cfg.Anchors), cfg.Count)
	}
	if cfg.SpeedScale == 0 {
		cfg.SpeedScale = DefaultSpeedScale
	}
	if cfg.DeadZone <= 0 {
		cfg.DeadZone = DefaultDeadZone
	}

	r := &Ring{
		cfg: cfg,
		pop: pop,
		log: core.OrDiscard(log),
	}

	height, err := r.measureHeight()
	if err != nil {
		return nil, err
	}
	r.height = height

	start := make([]float64, cfg.Count)
	if len(cfg.Anchors) > 0 {
		copy(start, cfg.Anchors)
		if err := validateChain(start, height); err != nil {
			return nil, err
		}
	} else {
		for i := range start {
			start[i] = cfg.StartAnchor + float64(i)*height
		}
	}
	r.start = start

	r.segments = make([]*Segment, cfg.Count)
	for i, y := range start {
		r.segments[i] = newSegment(i, mgl64.Vec3{cfg.Origin.X(), y, cfg.Origin.Z()}, height)
	}
	r.order = make([]*Segment, cfg.Count)

	if pop != nil {
		if pl, ok := pop.Sink().(core.Placer); ok {
			r.placer = pl
		}
		if err := r.spawnWalls(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// measureHeight resolves an explicit or measured segment height
func (r *Ring) measureHeight() (float64, error) {
	h := r.cfg.Height
	if h < 0 || math.IsNaN(h) {
		return 0, errors.Wrapf(ErrSegmentHeight, "height %f", h)
	}
	if h > 0 {
		return h, nil
	}
	if r.pop != nil && r.pop.Sizes() != nil && !r.cfg.WallContent.None() {
		if size, ok := r.pop.Sizes().Size(r.cfg.WallContent); ok && size.Y() > 0 {
			return size.Y(), nil
		}
	}
	r.log.Warn("segment height not measurable, using fallback", "height", DefaultSegmentHeight)
	return DefaultSegmentHeight, nil
}

// validateChain checks that sorted anchors step by exactly height
func validateChain(anchors []float64, height float64) error {
	sorted := make([]float64, len(anchors))
	copy(sorted, anchors)
	sort.Float64s(sorted)
	for i := 1; i < len(sorted); i++ {
		if math.Abs(sorted[i]-sorted[i-1]-height) > chainEpsilon {
			return errors.Wrapf(ErrAnchorChain, "gap %f between %f and %f, want %f",
				sorted[i]-sorted[i-1], sorted[i-1], sorted[i], height)
		}
	}
	return nil
}

func (r *Ring) spawnWalls() error {
	if r.cfg.WallContent.None() || r.pop.Sink() == nil {
		return nil
	}
	for _, seg := range r.segments {
		h, err := r.pop.Sink().Spawn(r.cfg.WallContent, seg.Anchor, mgl64.QuatIdent(), core.RootHandle)
		if err != nil {
			return errors.Wrapf(err, "spawn wall for segment %d", seg.Index)
		}
		seg.Handle = h
	}
	return nil
}

// Start populates every segment once
func (r *Ring) Start() PopulateStats {
	var total PopulateStats
	if r.pop == nil {
		return total
	}
	for _, seg := range r.segments {
		total = addStats(total, r.pop.Populate(seg))
	}
	return total
}

// Reset returns every segment to its start-of-run anchor and repopulates
func (r *Ring) Reset() PopulateStats {
	r.speed = 0
	for i, seg := range r.segments {
		r.move(seg, r.start[i])
	}
	return r.Start()
}

// ScrollSpeed returns the speed telemetry t produces, zero inside the dead zone
func (r *Ring) ScrollSpeed(t core.Telemetry) float64 {
	if t.Resting || math.Abs(t.Velocity) < r.cfg.DeadZone {
		return 0
	}
	return -t.Velocity * r.cfg.SpeedScale
}

// Tick scrolls the ring by the player's motion and recycles segments past the thresholds
// Zero-speed ticks do not translate and do not check thresholds
func (r *Ring) Tick(dt float64, t core.Telemetry, th camera.Thresholds) TickResult {
	speed := r.ScrollSpeed(t)
	r.speed = speed
	res := TickResult{Speed: speed}
	if speed == 0 || dt <= 0 {
		return res
	}

	res.Delta = speed * dt
	for _, seg := range r.segments {
		r.move(seg, seg.Y()+res.Delta)
	}

	r.sortOrder()
	if speed < 0 {
		// Lowest first; each relocation lands on the running highest anchor
		highest := r.order[len(r.order)-1].Y()
		for _, seg := range r.order {
			if seg.Y() >= th.Bottom {
				break
			}
			highest += r.height
			r.relocate(seg, highest, &res)
		}
	} else {
		// Highest first; each relocation lands below the running lowest anchor
		lowest := r.order[0].Y()
		for i := len(r.order) - 1; i >= 0; i-- {
			seg := r.order[i]
			if seg.Y() <= th.Top {
				break
			}
			lowest -= r.height
			r.relocate(seg, lowest, &res)
		}
	}
	return res
}

func (r *Ring) relocate(seg *Segment, y float64, res *TickResult) {
	r.move(seg, y)
	res.Relocated = append(res.Relocated, seg)
	if r.pop != nil {
		res.Stats = addStats(res.Stats, r.pop.Populate(seg))
	}
	r.log.Debug("segment relocated", "segment", seg.Index, "id", seg.ID, "anchor", y)
}

func (r *Ring) move(seg *Segment, y float64) {
	seg.setY(y)
	if r.placer != nil && seg.Handle != core.RootHandle {
		r.placer.Place(seg.Handle, seg.Anchor)
	}
}

// sortOrder fills order with segments by ascending anchor; ties keep index order
func (r *Ring) sortOrder() {
	copy(r.order, r.segments)
	sort.SliceStable(r.order, func(i, j int) bool {
		return r.order[i].Y() < r.order[j].Y()
	})
}

// Speed returns the scroll speed of the last tick
func (r *Ring) Speed() float64 {
	return r.speed
}

// Height returns the segment height in use
func (r *Ring) Height() float64 {
	return r.height
}

// Segments returns the segments in construction order
func (r *Ring) Segments() []*Segment {
	return r.segments
}

// Anchors returns the current anchors sorted ascending
func (r *Ring) Anchors() []float64 {
	out := make([]float64, len(r.segments))
	for i, seg := range r.segments {
		out[i] = seg.Y()
	}
	sort.Float64s(out)
	return out
}

// Contiguous reports whether sorted anchors still step by the segment height
func (r *Ring) Contiguous() bool {
	return validateChain(r.Anchors(), r.height) == nil
}

func addStats(a, b PopulateStats) PopulateStats {
	return PopulateStats{
		Items:      a.Items + b.Items,
		Underfill:  a.Underfill + b.Underfill,
		Skipped:    a.Skipped + b.Skipped,
		SinkErrors: a.SinkErrors + b.SinkErrors,
	}
}
