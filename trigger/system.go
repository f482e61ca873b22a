package trigger

import "github.com/milk9111/loopdeloop/ecs"

// System settles every trigger once per tick. Register it after every
// system that notifies triggers.
type System struct{}

func NewSystem() *System { return &System{} }

func (s *System) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, PlatformComponent, func(_ ecs.Entity, p *Platform) { p.Update() })
	ecs.ForEach(w, AreaComponent, func(_ ecs.Entity, a *Area) { a.Update() })
	ecs.ForEach(w, ObjectComponent, func(_ ecs.Entity, o *Object) { o.Update() })
}
