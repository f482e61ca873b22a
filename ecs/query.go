package ecs

import "github.com/milk9111/loopdeloop/ecs/component"

// IntersectEntities returns entity IDs present in both sets.
func IntersectEntities(a, b *SparseSet) []int {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if len(a.ids) > len(b.ids) {
		a, b = b, a
	}
	out := make([]int, 0, len(a.ids))
	for _, id := range a.ids {
		if b.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Query returns live entities that carry every listed component kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	ids := sets[0].Entities()
	if len(sets) > 1 {
		ids = IntersectEntities(sets[0], sets[1])
	}
	var out []Entity
	for _, id := range ids {
		keep := true
		for _, s := range sets[min(2, len(sets)):] {
			if !s.Has(id) {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil || kind == nil {
		return 0, false
	}
	for _, id := range w.store(kind.ID(), false).Entities() {
		if e, ok := w.entities.entity(id); ok {
			return e, true
		}
	}
	return 0, false
}
