package trigger

import (
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/terrain"
)

// Activation is passed to object handlers.
type Activation struct {
	Trigger ecs.Entity
	Actor   terrain.Source
}

// Object is a trigger switched on and off by actors, such as a button or
// a spring. While any actor keeps it activated it fires OnStay every tick.
type Object struct {
	Base

	// AllowReactivation makes every Activate fire OnEnter and every
	// Deactivate fire OnExit, instead of only the first and last.
	AllowReactivation bool

	OnEnter Event[Activation]
	OnStay  Event[Activation]
	OnExit  Event[Activation]

	world      *ecs.World
	activators []terrain.Source
}

var ObjectComponent = component.NewComponent[*Object]()

func NewObject(w *ecs.World, e ecs.Entity, fromChildren, allowReactivation bool) (*Object, error) {
	o := &Object{
		Base:              Base{Entity: e, TriggerFromChildren: fromChildren},
		AllowReactivation: allowReactivation,
		world:             w,
	}
	if err := ecs.Add(w, e, ObjectComponent, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Object) Activated() bool {
	return o != nil && len(o.activators) > 0
}

func (o *Object) Activators() []terrain.Source {
	if o == nil {
		return nil
	}
	return append([]terrain.Source(nil), o.activators...)
}

func (o *Object) indexOf(actor terrain.Source) int {
	for i, a := range o.activators {
		if a == actor {
			return i
		}
	}
	return -1
}

// Activate adds actor as an activator. A nil actor stands for an
// activation with no actor, such as one from a script, and is tracked like
// any other. Ancestor objects that accept children are deactivated by it in
// turn.
func (o *Object) Activate(actor terrain.Source) {
	o.activate(actor, true)
}

// Deactivate removes actor. Ancestor objects that accept children are
// activated by it in turn.
func (o *Object) Deactivate(actor terrain.Source) {
	o.deactivate(actor, true)
}

// Trigger activates then immediately deactivates.
func (o *Object) Trigger(actor terrain.Source) {
	o.Activate(actor)
	o.Deactivate(actor)
}

func (o *Object) activate(actor terrain.Source, bubble bool) {
	if o == nil {
		return
	}
	present := o.indexOf(actor) >= 0
	if present && !o.AllowReactivation {
		return
	}
	first := len(o.activators) == 0
	if !present {
		o.activators = append(o.activators, actor)
	}
	if first || o.AllowReactivation {
		o.OnEnter.Invoke(Activation{Trigger: o.Entity, Actor: actor})
	}
	if bubble {
		eachAncestor(o.world, o.Entity, ObjectComponent, func(parent *Object) bool {
			parent.deactivate(actor, false)
			return true
		})
	}
}

func (o *Object) deactivate(actor terrain.Source, bubble bool) {
	if o == nil {
		return
	}
	i := o.indexOf(actor)
	if i < 0 {
		return
	}
	o.activators = append(o.activators[:i], o.activators[i+1:]...)
	if len(o.activators) == 0 || o.AllowReactivation {
		o.OnExit.Invoke(Activation{Trigger: o.Entity, Actor: actor})
	}
	if bubble {
		eachAncestor(o.world, o.Entity, ObjectComponent, func(parent *Object) bool {
			parent.activate(actor, false)
			return true
		})
	}
}

// Update fires OnStay once per activator.
func (o *Object) Update() {
	if o == nil || len(o.activators) == 0 {
		return
	}
	for _, a := range o.Activators() {
		o.OnStay.Invoke(Activation{Trigger: o.Entity, Actor: a})
	}
}

// ActivateReaching activates every object a hit on e reaches, the nearest
// one with bubbling.
func ActivateReaching(w *ecs.World, e ecs.Entity, actor terrain.Source) {
	if o, ok := ecs.Get(w, e, ObjectComponent); ok {
		o.Activate(actor)
		return
	}
	eachAncestor(w, e, ObjectComponent, func(o *Object) bool {
		o.activate(actor, false)
		return true
	})
}
