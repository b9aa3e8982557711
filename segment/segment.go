package segment

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/run-or-die/core"
)

// Segment is one repeatable band of the play-field
// Anchor.Y is the segment's bottom edge along the scroll axis
type Segment struct {
	ID     uuid.UUID
	Index  int
	Anchor mgl64.Vec3
	Height float64
	Handle core.Handle // wall object parenting the segment's content, RootHandle when none

	owned []core.Handle
}

func newSegment(index int, anchor mgl64.Vec3, height float64) *Segment {
	return &Segment{
		ID:     uuid.New(),
		Index:  index,
		Anchor: anchor,
		Height: height,
	}
}

// Y returns the anchor along the scroll axis
func (s *Segment) Y() float64 {
	return s.Anchor.Y()
}

// Top returns the upper edge of the segment
func (s *Segment) Top() float64 {
	return s.Anchor.Y() + s.Height
}

// Owned returns a copy of the handles spawned for this segment
func (s *Segment) Owned() []core.Handle {
	out := make([]core.Handle, len(s.owned))
	copy(out, s.owned)
	return out
}

// OwnedCount returns the number of live handles owned by the segment
func (s *Segment) OwnedCount() int {
	return len(s.owned)
}

// Release drops h from the owned set after the caller destroyed it
func (s *Segment) Release(h core.Handle) bool {
	for i, v := range s.owned {
		if v == h {
			s.owned = append(s.owned[:i], s.owned[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Segment) own(h core.Handle) {
	s.owned = append(s.owned, h)
}

func (s *Segment) setY(y float64) {
	s.Anchor = mgl64.Vec3{s.Anchor.X(), y, s.Anchor.Z()}
}
