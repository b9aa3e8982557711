package core

import "github.com/go-gl/mathgl/mgl64"

// Bounds is an axis-aligned rectangle in a segment's local space or in world space
type Bounds struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewBounds builds bounds from min/max per axis, swapping inverted pairs
func NewBounds(minX, minY, maxX, maxY float64) Bounds {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return Bounds{Min: mgl64.Vec2{minX, minY}, Max: mgl64.Vec2{maxX, maxY}}
}

// Width returns the X extent
func (b Bounds) Width() float64 { return b.Max.X() - b.Min.X() }

// Height returns the Y extent
func (b Bounds) Height() float64 { return b.Max.Y() - b.Min.Y() }

// Contains reports whether p lies inside the closed rectangle
func (b Bounds) Contains(p mgl64.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// ContainsRect reports whether r lies fully inside the closed rectangle
func (b Bounds) ContainsRect(r Rect) bool {
	return b.Contains(r.Min()) && b.Contains(r.Max())
}

// Rect is a centered footprint: Center plus full Size per axis
type Rect struct {
	Center mgl64.Vec2
	Size   mgl64.Vec2
}

// Min returns the lower-left corner
func (r Rect) Min() mgl64.Vec2 { return r.Center.Sub(r.Size.Mul(0.5)) }

// Max returns the upper-right corner
func (r Rect) Max() mgl64.Vec2 { return r.Center.Add(r.Size.Mul(0.5)) }

// Expand grows the rectangle by margin on every side
func (r Rect) Expand(margin float64) Rect {
	return Rect{Center: r.Center, Size: r.Size.Add(mgl64.Vec2{2 * margin, 2 * margin})}
}

// Intersects reports open-interval overlap; touching edges do not intersect
func (r Rect) Intersects(o Rect) bool {
	aMin, aMax := r.Min(), r.Max()
	bMin, bMax := o.Min(), o.Max()
	return aMin.X() < bMax.X() && aMax.X() > bMin.X() &&
		aMin.Y() < bMax.Y() && aMax.Y() > bMin.Y()
}
