package trigger

import (
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
)

// Base is the part every trigger kind shares: the node it is attached to
// and whether hits on descendant nodes count as hits on it.
type Base struct {
	Entity              ecs.Entity
	TriggerFromChildren bool
}

func (b *Base) triggerBase() *Base { return b }

// Reaches reports whether a hit on from applies to this trigger.
func (b *Base) Reaches(w *ecs.World, from ecs.Entity) bool {
	if b == nil || !from.Valid() {
		return false
	}
	if from == b.Entity {
		return true
	}
	return b.TriggerFromChildren && w.IsAncestor(b.Entity, from)
}

type trigger interface {
	triggerBase() *Base
}

// eachReaching visits the trigger on e itself, then every ancestor trigger
// that accepts hits from children, nearest first, until fn returns false.
func eachReaching[T trigger](w *ecs.World, e ecs.Entity, handle component.ComponentHandle[T], fn func(T) bool) {
	if w == nil || !e.Valid() {
		return
	}
	if t, ok := ecs.Get(w, e, handle); ok {
		if !fn(t) {
			return
		}
	}
	eachAncestor(w, e, handle, fn)
}

// eachAncestor visits ancestor triggers of e that accept hits from children.
func eachAncestor[T trigger](w *ecs.World, e ecs.Entity, handle component.ComponentHandle[T], fn func(T) bool) {
	w.EachAncestor(e, func(a ecs.Entity) bool {
		t, ok := ecs.Get(w, a, handle)
		if !ok || !t.triggerBase().TriggerFromChildren {
			return true
		}
		return fn(t)
	})
}

func collect[T trigger](w *ecs.World, e ecs.Entity, handle component.ComponentHandle[T]) []T {
	var out []T
	eachReaching(w, e, handle, func(t T) bool {
		out = append(out, t)
		return true
	})
	return out
}

// PlatformsFor returns every platform trigger that a hit on e reaches.
func PlatformsFor(w *ecs.World, e ecs.Entity) []*Platform {
	return collect(w, e, PlatformComponent)
}

// ObjectsFor returns every object trigger that a hit on e reaches.
func ObjectsFor(w *ecs.World, e ecs.Entity) []*Object {
	return collect(w, e, ObjectComponent)
}

// AreasFor returns every area trigger that a hit on e reaches.
func AreasFor(w *ecs.World, e ecs.Entity) []*Area {
	return collect(w, e, AreaComponent)
}

// IsArea reports whether e is volumetric: tagged as an area or reached by
// an area trigger.
func IsArea(w *ecs.World, e ecs.Entity) bool {
	if ecs.Has(w, e, component.AreaTagComponent) {
		return true
	}
	found := false
	eachReaching(w, e, AreaComponent, func(*Area) bool {
		found = true
		return false
	})
	return found
}
