package render

import (
	"math"

	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/parameter"
)

// Layout maps band-space coordinates onto terminal cells
// The visible band spans the viewport vertically; the HUD takes the last rows
type Layout struct {
	Cols     int
	Rows     int // play-field rows, excluding the HUD
	Viewport camera.Viewport

	rowsPerUnit float64
	colsPerUnit float64
}

// NewLayout fits vp into a width x height screen
func NewLayout(width, height int, vp camera.Viewport) Layout {
	rows := height - parameter.HUDRows
	if rows < 1 {
		rows = 1
	}
	l := Layout{Cols: width, Rows: rows, Viewport: vp}
	if vp.Height > 0 {
		l.rowsPerUnit = float64(rows) / vp.Height
	}
	l.colsPerUnit = l.rowsPerUnit * parameter.CellsPerUnitX
	return l
}

// Row returns the screen row of band height y; ok is false outside the play field
func (l Layout) Row(y float64) (int, bool) {
	row := int(math.Floor((l.Viewport.Top() - y) * l.rowsPerUnit))
	return row, row >= 0 && row < l.Rows
}

// Col returns the screen column of x; ok is false outside the screen
func (l Layout) Col(x float64) (int, bool) {
	col := int(math.Floor(float64(l.Cols)/2 + (x-l.Viewport.CenterX)*l.colsPerUnit))
	return col, col >= 0 && col < l.Cols
}

// Cell returns the cell of (x, y)
func (l Layout) Cell(x, y float64) (col, row int, ok bool) {
	col, okc := l.Col(x)
	row, okr := l.Row(y)
	return col, row, okc && okr
}

// Span returns the cells covered by a width, at least one
func (l Layout) Span(width float64) int {
	n := int(math.Round(width * l.colsPerUnit))
	if n < 1 {
		n = 1
	}
	return n
}
