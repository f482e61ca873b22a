package ecs

import "github.com/milk9111/loopdeloop/ecs/component"

// System updates a world once per simulation tick.
type System interface {
	Update(w *World)
}

// World owns entities, their components, the node hierarchy and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	nodes    []node
	systems  []System
	events   EventQueue
	tick     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new root entity.
func (w *World) CreateEntity() Entity {
	e := w.entities.create()
	idx := int(e.id()) - 1
	for idx >= len(w.nodes) {
		w.nodes = append(w.nodes, node{})
	}
	w.nodes[idx] = node{}
	return e
}

// DestroyEntity removes an entity, its components and all of its descendants.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, child := range w.Children(e) {
		w.DestroyEntity(child)
	}
	id := int(e.id())
	for _, s := range w.stores {
		s.Remove(id)
	}
	w.nodes[id-1] = node{}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	var out []Entity
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Systems returns a copy of the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return append([]System(nil), w.systems...)
}

// Update runs all systems once, in registration order, and advances the tick.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.tick++
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Tick returns the number of completed Update calls.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent stores value under kind for e, replacing any previous value.
func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(int(e.id()), value)
	return nil
}

// GetComponent returns the untyped component stored under kind for e.
func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(kind.ID(), false)
	if !s.Has(int(e.id())) {
		return nil, false
	}
	return s.Get(int(e.id())), true
}

// HasComponent reports whether e carries a component of kind.
func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

// RemoveComponent deletes the component of kind from e.
func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(int(e.id()))
}
