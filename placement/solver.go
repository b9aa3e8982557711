package placement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/vmath"
)

// Solver performs rejection sampling against one shared random stream
// Draw order is fixed, so equal seeds and inputs give equal output
type Solver struct {
	rng *vmath.Rand
}

// NewSolver creates a solver drawing from rng
func NewSolver(rng *vmath.Rand) *Solver {
	return &Solver{rng: rng}
}

// Count draws a target count uniformly from [MinCount, MaxCount]
func (s *Solver) Count(c Constraint) int {
	return s.CountRange(c.MinCount, c.MaxCount)
}

// CountRange draws uniformly from [min, max], clamping negatives to zero
func (s *Solver) CountRange(min, max int) int {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return s.rng.IntRange(min, max)
}

// Solve places up to target items within c.Bounds
// Sampling stops at target or when the attempt budget is spent; under-fill is not an error
func (s *Solver) Solve(c Constraint, target int) Result {
	if target < 0 {
		target = 0
	}
	res := Result{Target: target}
	if target == 0 {
		return res
	}

	if c.Footprint != nil {
		return s.solveFootprint(c, res)
	}

	budget := c.budget()
	minX, minY := c.Bounds.Min.X(), c.Bounds.Min.Y()
	maxX, maxY := c.Bounds.Max.X(), c.Bounds.Max.Y()

	for res.Attempts < budget && len(res.Items) < target {
		res.Attempts++
		p := mgl64.Vec2{s.rng.Range(minX, maxX), s.rng.Range(minY, maxY)}
		if !separated(res.Items, p, c.Metric, c.MinSeparation) {
			continue
		}
		res.Items = append(res.Items, Placement{Position: p})
	}
	return res
}

// separated reports whether p keeps at least min distance from every accepted item
func separated(items []Placement, p mgl64.Vec2, m Metric, min float64) bool {
	if min <= 0 {
		return true
	}
	for i := range items {
		if m.Distance(items[i].Position, p) < min {
			return false
		}
	}
	return true
}
