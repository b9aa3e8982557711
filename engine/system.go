package engine

import (
	"github.com/lixenwraith/run-or-die/camera"
	"github.com/lixenwraith/run-or-die/core"
)

// Frame is the per-tick state systems read and write in priority order
type Frame struct {
	Index      int64
	DT         float64
	Telemetry  core.Telemetry
	HavePlayer bool
	Thresholds camera.Thresholds
}

// System is one step of the fixed tick order
type System interface {
	Name() string
	Priority() int
	Update(f *Frame)
}

// systemFunc adapts a closure to System
type systemFunc struct {
	name     string
	priority int
	update   func(f *Frame)
}

func (s systemFunc) Name() string     { return s.name }
func (s systemFunc) Priority() int    { return s.priority }
func (s systemFunc) Update(f *Frame) { s.update(f) }

// NewSystem wraps update as a named system
func NewSystem(name string, priority int, update func(f *Frame)) System {
	return systemFunc{name: name, priority: priority, update: update}
}
