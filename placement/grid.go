package placement

import (
	"github.com/go-gl/mathgl/mgl64"
)

// SolveGrid packs integer-width items into columns with an occupancy mask
// Each attempt draws a width, gathers every start column whose span plus GapCells is free,
// and picks one uniformly; an attempt with no candidate ends the call early
// Position.X is the span center in column units, Position.Y is drawn from the safe band
func (s *Solver) SolveGrid(g GridConstraint, target int) Result {
	if target < 0 {
		target = 0
	}
	res := Result{Target: target}
	cols := g.Columns()
	if target == 0 || cols <= 0 {
		return res
	}

	minW, maxW := g.MinWidth, g.MaxWidth
	if minW < 1 {
		minW = 1
	}
	if maxW < minW {
		maxW = minW
	}
	safeLo, safeHi := g.SafeMin, g.SafeMax
	if safeHi < safeLo {
		safeLo, safeHi = safeHi, safeLo
	}

	occupied := make([]bool, cols)
	candidates := make([]int, 0, cols)
	budget := g.budget()

	for res.Attempts < budget && len(res.Items) < target {
		res.Attempts++
		width := s.rng.IntRange(minW, maxW)

		candidates = candidates[:0]
		for start := 0; start < cols; start++ {
			end := start + width - 1
			if end >= cols {
				break
			}
			if spanFree(occupied, start-g.GapCells, end+g.GapCells) {
				candidates = append(candidates, start)
			}
		}
		if len(candidates) == 0 {
			break
		}

		start := candidates[s.rng.Intn(len(candidates))]
		end := start + width - 1
		reserve(occupied, start-g.GapCells, end+g.GapCells)

		y := g.BandHeight * s.rng.Range(safeLo, safeHi)
		x := float64(g.MinColumn+start) + float64(width-1)/2
		res.Items = append(res.Items, Placement{
			Position: mgl64.Vec2{x, y},
			Size:     mgl64.Vec2{float64(width), g.ItemHeight},
		})
	}
	return res
}

// spanFree reports whether every column in [from, to], clipped to the mask, is free
func spanFree(occ []bool, from, to int) bool {
	from, to = clipSpan(len(occ), from, to)
	for i := from; i <= to; i++ {
		if occ[i] {
			return false
		}
	}
	return true
}

func reserve(occ []bool, from, to int) {
	from, to = clipSpan(len(occ), from, to)
	for i := from; i <= to; i++ {
		occ[i] = true
	}
}

func clipSpan(n, from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > n-1 {
		to = n - 1
	}
	return from, to
}
