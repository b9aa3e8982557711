package camera

// Thresholds are the recycle lines along the scroll axis
type Thresholds struct {
	Top    float64
	Bottom float64
}

// Viewport is the visible band in band space
type Viewport struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64

	VerticalMargin   float64 // pushed outward from the top and bottom edges
	HorizontalMargin float64 // pushed outward from the left and right edges

	TopOverride    *float64 // literal top threshold, replaces the derived value
	BottomOverride *float64 // literal bottom threshold, replaces the derived value
}

// Top returns the upper visible edge
func (v Viewport) Top() float64 { return v.CenterY + v.Height/2 }

// Bottom returns the lower visible edge
func (v Viewport) Bottom() float64 { return v.CenterY - v.Height/2 }

// Left returns the left visible edge
func (v Viewport) Left() float64 { return v.CenterX - v.Width/2 }

// Right returns the right visible edge
func (v Viewport) Right() float64 { return v.CenterX + v.Width/2 }

// Thresholds derives recycle lines from the edges plus margin, then applies overrides
func (v Viewport) Thresholds() Thresholds {
	th := Thresholds{
		Top:    v.Top() + v.VerticalMargin,
		Bottom: v.Bottom() - v.VerticalMargin,
	}
	if v.TopOverride != nil {
		th.Top = *v.TopOverride
	}
	if v.BottomOverride != nil {
		th.Bottom = *v.BottomOverride
	}
	return th
}

// HorizontalLimits returns the left and right limits with the horizontal margin applied
func (v Viewport) HorizontalLimits() (left, right float64) {
	return v.Left() - v.HorizontalMargin, v.Right() + v.HorizontalMargin
}

// Resize replaces the visible extent, keeping the center
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}
