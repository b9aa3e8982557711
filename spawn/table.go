package spawn

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/run-or-die/vmath"
)

var (
	ErrNoRules     = errors.New("spawn table has no rules")
	ErrRuleContent = errors.New("spawn rule has no content reference")
)

// Table selects one rule per query by weight among the rules eligible at a height
// Rule order is fixed at construction and decides ties
type Table struct {
	rules []Rule
}

// NewTable creates a table over rules in the given order
func NewTable(rules ...Rule) *Table {
	rs := make([]Rule, len(rules))
	copy(rs, rules)
	return &Table{rules: rs}
}

// Validate reports configuration errors that make the table unusable
func (t *Table) Validate() error {
	if len(t.rules) == 0 {
		return ErrNoRules
	}
	for i, r := range t.rules {
		if r.Content.None() {
			return errors.Wrapf(ErrRuleContent, "rule %d (%s)", i, r.Name)
		}
	}
	return nil
}

// Len returns the number of rules
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in stored order
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Eligible returns the rules whose height gate contains h, in stored order
func (t *Table) Eligible(h float64) []Rule {
	var out []Rule
	for _, r := range t.rules {
		if r.EligibleAt(h) {
			out = append(out, r)
		}
	}
	return out
}

// TotalWeight sums the clamped weights of rules eligible at h
func (t *Table) TotalWeight(h float64) float64 {
	total := 0.0
	for _, r := range t.rules {
		if r.EligibleAt(h) {
			total += r.EffectiveWeight()
		}
	}
	return total
}

// Select draws one roll in [0, total) and returns the matching rule
// No draw is consumed when nothing is eligible
func (t *Table) Select(h float64, rng *vmath.Rand) (Rule, bool) {
	total := t.TotalWeight(h)
	if total <= 0 {
		return Rule{}, false
	}
	return t.Pick(h, rng.Range(0, total))
}

// Pick walks eligible rules in stored order and returns the first whose cumulative weight reaches roll
// Zero-weight rules never match
func (t *Table) Pick(h, roll float64) (Rule, bool) {
	cum := 0.0
	for _, r := range t.rules {
		if !r.EligibleAt(h) {
			continue
		}
		w := r.EffectiveWeight()
		if w == 0 {
			continue
		}
		cum += w
		if cum >= roll {
			return r, true
		}
	}
	return Rule{}, false
}
