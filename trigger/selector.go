package trigger

import (
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/terrain"
)

// TransformSelector decides solidity from the hit node's triggers: every
// reaching platform must agree the hit is solid; otherwise areas are never
// solid; otherwise the actor's path names decide.
func TransformSelector(w *ecs.World) terrain.Selector {
	fallback := terrain.CollisionModeSelector(w)
	return func(h terrain.Hit) bool {
		found, solid := false, true
		eachReaching(w, h.Entity, PlatformComponent, func(p *Platform) bool {
			found = true
			if !p.IsSolid(h) {
				solid = false
				return false
			}
			return true
		})
		if found {
			return solid
		}
		if IsArea(w, h.Entity) {
			return false
		}
		return fallback(h)
	}
}
