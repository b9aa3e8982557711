package spawn

import (
	"github.com/lixenwraith/run-or-die/core"
)

// Rule defaults
const (
	DefaultWeight     = 1.0
	DefaultMaxHeight  = 9999.0
	DefaultXMin       = -1.5
	DefaultXMax       = 1.5
	DefaultSpacingMin = 6.0
	DefaultSpacingMax = 10.0
)

// Span is a closed numeric interval
type Span struct {
	Min float64
	Max float64
}

// Rule is one weighted, height-gated obstacle template
type Rule struct {
	Name      string
	Content   core.ContentRef
	Weight    float64 // negative weights count as zero
	MinHeight float64
	MaxHeight float64

	// Horizontal placement: random within XRange, or a fixed lane when LockToSide is set
	// Left takes XRange.Min, Right takes XRange.Max, Center takes the cursor's center X
	LockToSide bool
	Lane       core.Lane
	XRange     Span

	SpacingMin float64 // vertical gap to the next spawn
	SpacingMax float64
}

// NewRule creates a rule with the stock ranges
func NewRule(name string, content core.ContentRef) Rule {
	return Rule{
		Name:       name,
		Content:    content,
		Weight:     DefaultWeight,
		MaxHeight:  DefaultMaxHeight,
		XRange:     Span{Min: DefaultXMin, Max: DefaultXMax},
		SpacingMin: DefaultSpacingMin,
		SpacingMax: DefaultSpacingMax,
	}
}

// EligibleAt reports whether h lies within the rule's height gate
func (r Rule) EligibleAt(h float64) bool {
	return h >= r.MinHeight && h <= r.MaxHeight
}

// EffectiveWeight returns the weight clamped to zero
func (r Rule) EffectiveWeight() float64 {
	if r.Weight < 0 {
		return 0
	}
	return r.Weight
}
