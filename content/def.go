package content

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/core"
)

// Class groups content for rendering and diagnostics
type Class int

const (
	ClassObstacle Class = iota
	ClassWall
	ClassPlatform
	ClassHazard
	ClassCoin
)

var classNames = map[Class]string{
	ClassObstacle: "obstacle",
	ClassWall:     "wall",
	ClassPlatform: "platform",
	ClassHazard:   "hazard",
	ClassCoin:     "coin",
}

// String returns the config spelling of the class
func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "obstacle"
}

// ParseClass maps config text to a class; unknown text is ClassObstacle
func ParseClass(s string) Class {
	for c, name := range classNames {
		if name == s {
			return c
		}
	}
	return ClassObstacle
}

// Def describes one registered content reference
type Def struct {
	Ref   core.ContentRef
	Size  mgl64.Vec2 // footprint width and height
	Glyph rune
	Class Class
	Value int // coins awarded on pickup, ClassCoin only
}

// CoinValue returns the pickup value; coins without one are worth 1
func (d Def) CoinValue() int {
	if d.Value > 0 {
		return d.Value
	}
	return 1
}

// Registry holds content definitions and answers size queries
type Registry struct {
	mu   sync.RWMutex
	defs map[core.ContentRef]Def
}

// NewRegistry creates a registry seeded with defs
func NewRegistry(defs ...Def) *Registry {
	r := &Registry{defs: make(map[core.ContentRef]Def, len(defs))}
	for _, d := range defs {
		r.defs[d.Ref] = d
	}
	return r
}

// Register adds or replaces a definition
func (r *Registry) Register(d Def) {
	r.mu.Lock()
	r.defs[d.Ref] = d
	r.mu.Unlock()
}

// Lookup returns the definition for ref
func (r *Registry) Lookup(ref core.ContentRef) (Def, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[ref]
	return d, ok
}

// Size implements core.SizeQuery
func (r *Registry) Size(ref core.ContentRef) (mgl64.Vec2, bool) {
	d, ok := r.Lookup(ref)
	if !ok || d.Size.X() <= 0 || d.Size.Y() <= 0 {
		return mgl64.Vec2{}, false
	}
	return d.Size, true
}

// Refs returns registered references sorted by name
func (r *Registry) Refs() []core.ContentRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.ContentRef, 0, len(r.defs))
	for ref := range r.defs {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
