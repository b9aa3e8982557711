package segment

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/core"
	"github.com/lixenwraith/run-or-die/placement"
)

// Kind selects which solver mode fills a category
type Kind int

const (
	KindPoint     Kind = iota // free points, Euclidean separation (blades)
	KindAxis                  // points separated along one axis (platform rows)
	KindFootprint             // width-aware rectangles
	KindGrid                  // integer column occupancy
)

// ParseKind maps config text to a kind; unknown text is KindPoint
func ParseKind(s string) Kind {
	switch s {
	case "axis":
		return KindAxis
	case "footprint":
		return KindFootprint
	case "grid":
		return KindGrid
	default:
		return KindPoint
	}
}

// String returns the config spelling of the kind
func (k Kind) String() string {
	switch k {
	case KindAxis:
		return "axis"
	case KindFootprint:
		return "footprint"
	case KindGrid:
		return "grid"
	default:
		return "point"
	}
}

// Category is one kind of content placed on every segment
type Category struct {
	Name       string
	Kind       Kind
	Content    core.ContentRef
	Constraint placement.Constraint     // point, axis and footprint kinds
	Grid       placement.GridConstraint // grid kind
	Rotation   float64                  // degrees about the X axis
	Depth      float64                  // local Z of the first item
	DepthNudge float64                  // added to Z per item index to avoid z-fighting
}

// PopulateStats summarizes one Populate call
type PopulateStats struct {
	Items      int
	Underfill  int // categories that fell short of their target
	Skipped    int // unconfigured categories
	SinkErrors int
}

// Populator fills segments with per-category content through the spawn sink
type Populator struct {
	sink       core.SpawnSink
	sizes      core.SizeQuery
	solver     *placement.Solver
	categories []Category
	log        *slog.Logger

	warned map[string]bool
}

// NewPopulator creates a populator; sizes may be nil when no category is width-aware
func NewPopulator(sink core.SpawnSink, sizes core.SizeQuery, solver *placement.Solver, categories []Category, log *slog.Logger) *Populator {
	cats := make([]Category, len(categories))
	copy(cats, categories)
	return &Populator{
		sink:       sink,
		sizes:      sizes,
		solver:     solver,
		categories: cats,
		log:        core.OrDiscard(log),
		warned:     make(map[string]bool),
	}
}

// Sink returns the spawn sink content is materialized through
func (p *Populator) Sink() core.SpawnSink {
	return p.sink
}

// Sizes returns the content-size query, possibly nil
func (p *Populator) Sizes() core.SizeQuery {
	return p.sizes
}

// Clear destroys only the content owned by seg
func (p *Populator) Clear(seg *Segment) {
	if p.sink != nil {
		for _, h := range seg.owned {
			p.sink.Destroy(h)
		}
	}
	seg.owned = seg.owned[:0]
}

// Populate clears seg and refills it, one solver call per category
func (p *Populator) Populate(seg *Segment) PopulateStats {
	var stats PopulateStats
	p.Clear(seg)
	if p.sink == nil {
		p.warnOnce("sink", "populate skipped: no spawn sink")
		return stats
	}

	for i := range p.categories {
		cat := &p.categories[i]
		if cat.Content.None() {
			p.warnOnce("category:"+cat.Name, "category has no content reference", "category", cat.Name)
			stats.Skipped++
			continue
		}

		res, ok := p.solve(cat)
		if !ok {
			stats.Skipped++
			continue
		}
		if res.Underfilled() {
			stats.Underfill++
		}

		rot := mgl64.QuatRotate(mgl64.DegToRad(cat.Rotation), mgl64.Vec3{1, 0, 0})
		for j, item := range res.Items {
			pos := mgl64.Vec3{item.Position.X(), item.Position.Y(), cat.Depth + float64(j)*cat.DepthNudge}
			if seg.Handle == core.RootHandle {
				pos = seg.Anchor.Add(pos)
			}
			h, err := p.sink.Spawn(cat.Content, pos, rot, seg.Handle)
			if err != nil {
				p.log.Warn("spawn failed", "category", cat.Name, "segment", seg.Index, "error", err)
				stats.SinkErrors++
				continue
			}
			seg.own(h)
			stats.Items++
		}
	}
	return stats
}

// solve runs the solver mode for cat; ok is false when the category cannot be resolved
func (p *Populator) solve(cat *Category) (placement.Result, bool) {
	switch cat.Kind {
	case KindGrid:
		g := cat.Grid
		return p.solver.SolveGrid(g, p.solver.CountRange(g.MinCount, g.MaxCount)), true

	case KindFootprint:
		c := cat.Constraint
		fp, ok := p.footprint(cat)
		if !ok {
			return placement.Result{}, false
		}
		c.Footprint = &fp
		return p.solver.Solve(c, p.solver.Count(c)), true

	default:
		c := cat.Constraint
		c.Footprint = nil
		return p.solver.Solve(c, p.solver.Count(c)), true
	}
}

// footprint resolves the rectangle size for a width-aware category
// A zero width range or height is filled from the content-size query
func (p *Populator) footprint(cat *Category) (placement.Footprint, bool) {
	var fp placement.Footprint
	if cat.Constraint.Footprint != nil {
		fp = *cat.Constraint.Footprint
	}
	if fp.WidthMin > 0 && fp.Height > 0 {
		return fp, true
	}

	var size mgl64.Vec2
	ok := false
	if p.sizes != nil {
		size, ok = p.sizes.Size(cat.Content)
	}
	if !ok {
		p.warnOnce("size:"+cat.Name, "content size unknown for width-aware category",
			"category", cat.Name, "content", string(cat.Content))
		return fp, false
	}
	if fp.WidthMin <= 0 {
		fp.WidthMin, fp.WidthMax = size.X(), size.X()
	}
	if fp.Height <= 0 {
		fp.Height = size.Y()
	}
	return fp, true
}

func (p *Populator) warnOnce(key, msg string, args ...any) {
	if p.warned[key] {
		return
	}
	p.warned[key] = true
	p.log.Warn(msg, args...)
}

// Warnings returns the number of distinct one-time warnings raised
func (p *Populator) Warnings() int {
	return len(p.warned)
}
