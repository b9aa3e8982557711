package content

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/lixenwraith/run-or-die/core"
)

var (
	ErrUnknownContent = errors.New("unknown content reference")
	ErrUnknownParent  = errors.New("unknown parent handle")
)

// Identity ties an entity to its handle and content reference
type Identity struct {
	Handle core.Handle
	Ref    core.ContentRef
}

// Transform is stored relative to Parent; RootHandle parents in world space
type Transform struct {
	Local    mgl64.Vec3
	Rotation mgl64.Quat
	Parent   core.Handle
}

var (
	identityType  = donburi.NewComponentType[Identity]()
	transformType = donburi.NewComponentType[Transform]()

	spawnedQuery = donburi.NewQuery(filter.Contains(identityType, transformType))
)

// Object is a resolved snapshot of one spawned entity
type Object struct {
	Handle   core.Handle
	Ref      core.ContentRef
	Parent   core.Handle
	Local    mgl64.Vec3
	World    mgl64.Vec3
	Rotation mgl64.Quat
	Def      Def
	Known    bool // Def was found in the registry
}

// Store materializes spawned content as donburi entities
// It implements core.SpawnSink, core.Placer and core.SizeQuery
type Store struct {
	mu       sync.RWMutex
	world    donburi.World
	defs     *Registry
	entities map[core.Handle]donburi.Entity
	children map[core.Handle][]core.Handle
	next     core.Handle

	// Strict rejects references missing from the registry
	Strict bool
}

// NewStore creates an empty store; defs may be nil
func NewStore(defs *Registry) *Store {
	if defs == nil {
		defs = NewRegistry()
	}
	return &Store{
		world:    donburi.NewWorld(),
		defs:     defs,
		entities: make(map[core.Handle]donburi.Entity),
		children: make(map[core.Handle][]core.Handle),
	}
}

// Registry returns the definitions the store resolves against
func (s *Store) Registry() *Registry {
	return s.defs
}

// Size implements core.SizeQuery through the registry
func (s *Store) Size(ref core.ContentRef) (mgl64.Vec2, bool) {
	return s.defs.Size(ref)
}

// Spawn implements core.SpawnSink
func (s *Store) Spawn(ref core.ContentRef, position mgl64.Vec3, rotation mgl64.Quat, parent core.Handle) (core.Handle, error) {
	if ref.None() {
		return 0, errors.Wrap(ErrUnknownContent, "empty reference")
	}
	if s.Strict {
		if _, ok := s.defs.Lookup(ref); !ok {
			return 0, errors.Wrapf(ErrUnknownContent, "%q", ref)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if parent != core.RootHandle {
		if _, ok := s.entities[parent]; !ok {
			return 0, errors.Wrapf(ErrUnknownParent, "handle %d", parent)
		}
	}

	s.next++
	h := s.next
	e := s.world.Create(identityType, transformType)
	entry := s.world.Entry(e)
	identityType.SetValue(entry, Identity{Handle: h, Ref: ref})
	transformType.SetValue(entry, Transform{Local: position, Rotation: rotation, Parent: parent})

	s.entities[h] = e
	if parent != core.RootHandle {
		s.children[parent] = append(s.children[parent], h)
	}
	return h, nil
}

// Destroy implements core.SpawnSink; children are destroyed with their parent
// Unknown handles are ignored
func (s *Store) Destroy(h core.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroy(h)
}

func (s *Store) destroy(h core.Handle) {
	e, ok := s.entities[h]
	if !ok {
		return
	}
	kids := s.children[h]
	delete(s.children, h)
	for _, c := range kids {
		s.destroy(c)
	}

	entry := s.world.Entry(e)
	parent := transformType.Get(entry).Parent
	if list, ok := s.children[parent]; ok {
		s.children[parent] = removeHandle(list, h)
	}

	s.world.Remove(e)
	delete(s.entities, h)
}

func removeHandle(list []core.Handle, h core.Handle) []core.Handle {
	for i, v := range list {
		if v == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Place implements core.Placer
func (s *Store) Place(h core.Handle, position mgl64.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[h]
	if !ok {
		return
	}
	transformType.Get(s.world.Entry(e)).Local = position
}

// Has reports whether h is live
func (s *Store) Has(h core.Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entities[h]
	return ok
}

// Len returns the number of live objects
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return spawnedQuery.Count(s.world)
}

// Children returns the live children of h
func (s *Store) Children(h core.Handle) []core.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Handle, len(s.children[h]))
	copy(out, s.children[h])
	return out
}

// Get returns a resolved snapshot of h
func (s *Store) Get(h core.Handle) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[h]
	if !ok {
		return Object{}, false
	}
	return s.resolve(s.world.Entry(e)), true
}

// WorldPosition returns the position of h after applying every parent offset
func (s *Store) WorldPosition(h core.Handle) (mgl64.Vec3, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.worldPosition(h)
}

func (s *Store) worldPosition(h core.Handle) (mgl64.Vec3, bool) {
	var pos mgl64.Vec3
	for h != core.RootHandle {
		e, ok := s.entities[h]
		if !ok {
			return mgl64.Vec3{}, false
		}
		tf := transformType.Get(s.world.Entry(e))
		pos = pos.Add(tf.Local)
		h = tf.Parent
	}
	return pos, true
}

func (s *Store) resolve(entry *donburi.Entry) Object {
	id := identityType.Get(entry)
	tf := transformType.Get(entry)
	world, _ := s.worldPosition(id.Handle)
	def, known := s.defs.Lookup(id.Ref)
	return Object{
		Handle:   id.Handle,
		Ref:      id.Ref,
		Parent:   tf.Parent,
		Local:    tf.Local,
		World:    world,
		Rotation: tf.Rotation,
		Def:      def,
		Known:    known,
	}
}

// Objects returns snapshots of every live object ordered by handle
func (s *Store) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Object, 0, len(s.entities))
	spawnedQuery.Each(s.world, func(entry *donburi.Entry) {
		out = append(out, s.resolve(entry))
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Clear destroys every object; handles are not reused
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Collect first; entities must not be removed during a query walk
	handles := make([]core.Handle, 0, len(s.entities))
	for h := range s.entities {
		handles = append(handles, h)
	}
	for _, h := range handles {
		s.destroy(h)
	}
}
