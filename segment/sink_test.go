package segment

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/run-or-die/core"
)

type spawned struct {
	ref      core.ContentRef
	position mgl64.Vec3
	rotation mgl64.Quat
	parent   core.Handle
}

// memorySink records spawns and destroys for assertions
type memorySink struct {
	next      core.Handle
	live      map[core.Handle]spawned
	destroyed int
	failRef   core.ContentRef
}

func newMemorySink() *memorySink {
	return &memorySink{live: make(map[core.Handle]spawned)}
}

func (m *memorySink) Spawn(ref core.ContentRef, position mgl64.Vec3, rotation mgl64.Quat, parent core.Handle) (core.Handle, error) {
	if ref == m.failRef {
		return 0, errors.New("spawn refused")
	}
	m.next++
	m.live[m.next] = spawned{ref: ref, position: position, rotation: rotation, parent: parent}
	return m.next, nil
}

func (m *memorySink) Destroy(h core.Handle) {
	if _, ok := m.live[h]; ok {
		delete(m.live, h)
		m.destroyed++
	}
}

func (m *memorySink) Place(h core.Handle, position mgl64.Vec3) {
	if s, ok := m.live[h]; ok {
		s.position = position
		m.live[h] = s
	}
}

func (m *memorySink) countRef(ref core.ContentRef) int {
	n := 0
	for _, s := range m.live {
		if s.ref == ref {
			n++
		}
	}
	return n
}

type sizeTable map[core.ContentRef]mgl64.Vec2

func (s sizeTable) Size(ref core.ContentRef) (mgl64.Vec2, bool) {
	v, ok := s[ref]
	return v, ok
}
