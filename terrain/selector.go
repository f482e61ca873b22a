package terrain

import "github.com/milk9111/loopdeloop/ecs"

// CollisionModeSelector accepts a hit when its source actor lists the hit
// node's name, or the name of one of its ancestors, as an allowed path.
// Hits without a source are rejected.
func CollisionModeSelector(w *ecs.World) Selector {
	return func(h Hit) bool {
		if w == nil || h.Source == nil || !h.Entity.Valid() {
			return false
		}
		for _, name := range h.Source.PathNames() {
			if name == "" {
				continue
			}
			if w.ParentHasName(h.Entity, name) {
				return true
			}
		}
		return false
	}
}
