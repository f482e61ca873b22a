package motion

import (
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
)

// System steps every controller with its entity's input and writes the
// resulting pose back to the entity's Transform.
type System struct{}

func NewSystem() *System { return &System{} }

func (s *System) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, ControllerComponent, func(e ecs.Entity, c *Controller) {
		in, _ := ecs.Get(w, e, component.InputComponent)
		c.Step(in)
		if err := ecs.Add(w, e, component.TransformComponent, c.Transform()); err != nil {
			panic("motion system: update transform: " + err.Error())
		}
		if in.JumpPressed {
			in.JumpPressed = false
			if err := ecs.Add(w, e, component.InputComponent, in); err != nil {
				panic("motion system: update input: " + err.Error())
			}
		}
	})
}
