package placement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/core"
)

// Metric selects how separation between two positions is measured
type Metric int

const (
	// Euclidean compares straight-line distance
	Euclidean Metric = iota
	// AxisX compares |dx| only; items on the same column conflict
	AxisX
	// AxisY compares |dy| only; items in the same row conflict
	AxisY
)

// Retry budgets used when a constraint leaves Attempts unset
const (
	DefaultPointAttempts = 100
	DefaultAxisAttempts  = 50
	DefaultGridAttempts  = 40
)

// String returns the config spelling of the metric
func (m Metric) String() string {
	switch m {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "euclidean"
	}
}

// ParseMetric maps config text to a metric; unknown text is Euclidean
func ParseMetric(s string) Metric {
	switch s {
	case "x", "axis_x":
		return AxisX
	case "y", "axis_y":
		return AxisY
	default:
		return Euclidean
	}
}

// Distance returns the separation of a and b under m
func (m Metric) Distance(a, b mgl64.Vec2) float64 {
	d := a.Sub(b)
	switch m {
	case AxisX:
		return abs(d.X())
	case AxisY:
		return abs(d.Y())
	default:
		return d.Len()
	}
}

// Footprint turns point sampling into width-aware rectangle packing
type Footprint struct {
	WidthMin float64
	WidthMax float64 // WidthMax <= WidthMin draws a fixed width
	Height   float64
	Gap      float64 // clearance kept around every accepted rectangle
}

// Constraint describes one placement request; immutable per call
type Constraint struct {
	Bounds        core.Bounds
	MinCount      int
	MaxCount      int
	MinSeparation float64
	Metric        Metric
	Attempts      int // 0 selects the default budget for the metric
	Footprint     *Footprint
}

// budget returns the effective attempt budget
func (c Constraint) budget() int {
	if c.Attempts > 0 {
		return c.Attempts
	}
	if c.Metric != Euclidean {
		return DefaultAxisAttempts
	}
	return DefaultPointAttempts
}

// GridConstraint describes integer column packing within a band
// Columns are inclusive; a width-w item starting at column c covers c..c+w-1
type GridConstraint struct {
	MinColumn  int
	MaxColumn  int
	MinWidth   int
	MaxWidth   int
	GapCells   int     // free columns reserved on each side of an item
	BandHeight float64 // y is drawn as BandHeight * [SafeMin, SafeMax)
	SafeMin    float64
	SafeMax    float64
	ItemHeight float64
	MinCount   int
	MaxCount   int
	Attempts   int // 0 selects DefaultGridAttempts
}

func (g GridConstraint) budget() int {
	if g.Attempts > 0 {
		return g.Attempts
	}
	return DefaultGridAttempts
}

// Columns returns the number of addressable columns
func (g GridConstraint) Columns() int {
	return g.MaxColumn - g.MinColumn + 1
}

// Placement is one accepted item; Size is zero for point items
type Placement struct {
	Position mgl64.Vec2
	Size     mgl64.Vec2
}

// Rect returns the item's footprint rectangle
func (p Placement) Rect() core.Rect {
	return core.Rect{Center: p.Position, Size: p.Size}
}

// Result carries accepted placements in insertion order
type Result struct {
	Items    []Placement
	Target   int
	Attempts int // samples drawn
}

// Underfilled reports whether the budget ran out before reaching Target
func (r Result) Underfilled() bool {
	return len(r.Items) < r.Target
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
