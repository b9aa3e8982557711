package placement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"github.com/lixenwraith/run-or-die/core"
)

// broadPhaseCell is the resolv cell edge in bounds units
const broadPhaseCell = 2

// footprintSpace indexes accepted rectangles in a resolv space shifted so all cells are non-negative
type footprintSpace struct {
	space  *resolv.Space
	origin mgl64.Vec2
}

func newFootprintSpace(b core.Bounds, gap float64) *footprintSpace {
	pad := gap + broadPhaseCell
	w := int(math.Ceil(b.Width()+2*pad)) + broadPhaseCell
	h := int(math.Ceil(b.Height()+2*pad)) + broadPhaseCell
	return &footprintSpace{
		space:  resolv.NewSpace(w, h, broadPhaseCell, broadPhaseCell),
		origin: b.Min.Sub(mgl64.Vec2{pad, pad}),
	}
}

// object maps r into space coordinates
// resolv covers cells up to X+W-1, so extents are padded by one unit to keep the phase conservative
func (fs *footprintSpace) object(r core.Rect) *resolv.Object {
	min := r.Min().Sub(fs.origin)
	return resolv.NewObject(min.X(), min.Y(), r.Size.X()+1, r.Size.Y()+1)
}

// insert registers an accepted rectangle
func (fs *footprintSpace) insert(r core.Rect, index int) {
	obj := fs.object(r)
	obj.Data = index
	fs.space.Add(obj)
}

// nearby returns indices of accepted rectangles sharing a cell with r
func (fs *footprintSpace) nearby(r core.Rect) []int {
	candidate := fs.object(r)
	fs.space.Add(candidate)
	defer fs.space.Remove(candidate)

	coll := candidate.Check(0, 0)
	if coll == nil {
		return nil
	}
	out := make([]int, 0, len(coll.Objects))
	for _, o := range coll.Objects {
		if idx, ok := o.Data.(int); ok {
			out = append(out, idx)
		}
	}
	return out
}

// solveFootprint packs rectangles so that each candidate, grown by Gap, clears every accepted rectangle
func (s *Solver) solveFootprint(c Constraint, res Result) Result {
	fp := c.Footprint
	budget := c.budget()
	index := newFootprintSpace(c.Bounds, fp.Gap)

	for res.Attempts < budget && len(res.Items) < res.Target {
		res.Attempts++

		w := s.rng.Range(fp.WidthMin, fp.WidthMax)
		h := fp.Height
		if w <= 0 || w > c.Bounds.Width() || h > c.Bounds.Height() {
			continue
		}

		// Centers are drawn so the whole rectangle lies inside bounds
		cx := s.rng.Range(c.Bounds.Min.X()+w/2, c.Bounds.Max.X()-w/2)
		cy := s.rng.Range(c.Bounds.Min.Y()+h/2, c.Bounds.Max.Y()-h/2)
		cand := Placement{Position: mgl64.Vec2{cx, cy}, Size: mgl64.Vec2{w, h}}
		if !c.Bounds.ContainsRect(cand.Rect()) {
			continue
		}
		if !separated(res.Items, cand.Position, c.Metric, c.MinSeparation) {
			continue
		}

		grown := cand.Rect().Expand(fp.Gap)
		blocked := false
		for _, idx := range index.nearby(grown) {
			if grown.Intersects(res.Items[idx].Rect()) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		index.insert(cand.Rect(), len(res.Items))
		res.Items = append(res.Items, cand)
	}
	return res
}
