package trigger

import (
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/terrain"
)

// Area is a volumetric trigger. Casts never treat it as solid; actors
// overlapping it are reported through enter, stay and exit.
type Area struct {
	Base

	Predicates []Predicate

	OnEnter Event[Collision]
	OnStay  Event[Collision]
	OnExit  Event[Collision]

	overlaps registry
}

var AreaComponent = component.NewComponent[*Area]()

// NewArea attaches an area trigger to e and tags it as an area.
func NewArea(w *ecs.World, e ecs.Entity, fromChildren bool) (*Area, error) {
	a := &Area{Base: Base{Entity: e, TriggerFromChildren: fromChildren}}
	if err := ecs.Add(w, e, AreaComponent, a); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, e, component.AreaTagComponent, component.AreaTag{}); err != nil {
		return nil, err
	}
	return a, nil
}

// NotifyOverlap records that actor overlaps the area this tick.
func (a *Area) NotifyOverlap(actor terrain.Source) {
	if a == nil || actor == nil {
		return
	}
	c := Collision{Trigger: a.Entity, Actor: actor}
	if !allPass(a.Predicates, c) {
		return
	}
	if a.overlaps.notify(actor, terrain.NoHit) {
		a.OnEnter.Invoke(c)
	}
}

func (a *Area) Update() {
	if a == nil {
		return
	}
	a.overlaps.update(func(c Contact) {
		col := Collision{Trigger: a.Entity, Actor: c.Actor}
		if allPass(a.Predicates, col) {
			a.OnStay.Invoke(col)
		}
	}, func(c Contact) {
		a.OnExit.Invoke(Collision{Trigger: a.Entity, Actor: c.Actor})
	})
}

func (a *Area) Contains(actor terrain.Source) bool {
	return a != nil && a.overlaps.contains(actor)
}

// NotifyOverlaps reports actor to every area a shape on e reaches. Each
// area is notified at most once per call.
func NotifyOverlaps(w *ecs.World, e ecs.Entity, actor terrain.Source) {
	eachReaching(w, e, AreaComponent, func(a *Area) bool {
		a.NotifyOverlap(actor)
		return true
	})
}
