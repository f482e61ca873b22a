package trigger

import (
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/terrain"
)

// Collision is passed to platform and area handlers.
type Collision struct {
	Trigger ecs.Entity
	Actor   terrain.Source
	Hit     terrain.Hit
}

// Predicate filters notifications. A set of predicates passes when every
// member passes; the empty set always passes.
type Predicate func(c Collision) bool

// SolidityPredicate decides whether a hit on a platform blocks the actor.
type SolidityPredicate func(p *Platform, h terrain.Hit) bool

// Platform is a trigger attached to terrain. It reports actors colliding
// with it, actors standing on it, and can veto solidity per hit.
type Platform struct {
	Base

	CollisionPredicates []Predicate
	SurfacePredicates   []Predicate
	SolidityPredicates  []SolidityPredicate

	OnCollisionEnter Event[Collision]
	OnCollisionStay  Event[Collision]
	OnCollisionExit  Event[Collision]
	OnSurfaceEnter   Event[Collision]
	OnSurfaceStay    Event[Collision]
	OnSurfaceExit    Event[Collision]

	world      *ecs.World
	collisions registry
	surfaces   registry
}

var PlatformComponent = component.NewComponent[*Platform]()

// NewPlatform attaches a platform trigger to e. The surface predicates
// start with StandingOn.
func NewPlatform(w *ecs.World, e ecs.Entity, fromChildren bool) (*Platform, error) {
	p := &Platform{
		Base:  Base{Entity: e, TriggerFromChildren: fromChildren},
		world: w,
	}
	p.SurfacePredicates = []Predicate{p.StandingOn}
	if err := ecs.Add(w, e, PlatformComponent, p); err != nil {
		return nil, err
	}
	return p, nil
}

// StandingOn passes when the actor is grounded on a node this platform reaches.
func (p *Platform) StandingOn(c Collision) bool {
	if c.Actor == nil || !c.Actor.Grounded() {
		return false
	}
	primary, secondary := c.Actor.Surfaces()
	return p.Reaches(p.world, primary) || p.Reaches(p.world, secondary)
}

// IsSolid reports whether h should block, the AND of the solidity predicates.
func (p *Platform) IsSolid(h terrain.Hit) bool {
	for _, pred := range p.SolidityPredicates {
		if !pred(p, h) {
			return false
		}
	}
	return true
}

// OneWay returns a solidity predicate for platforms that are only solid
// from above: the hit must come from the actor's bottom side and the
// surface normal must be within maxAngle degrees of straight up.
func OneWay(maxAngle float64) SolidityPredicate {
	return func(_ *Platform, h terrain.Hit) bool {
		if h.Side != terrain.SideBottom {
			return false
		}
		return common.AngleWithin(h.NormalAngle(), 90, maxAngle)
	}
}

func allPass(preds []Predicate, c Collision) bool {
	for _, pred := range preds {
		if !pred(c) {
			return false
		}
	}
	return true
}

// NotifyCollision records that actor touched this platform this tick. With
// bubble set, ancestor platforms accepting hits from children are notified too.
func (p *Platform) NotifyCollision(actor terrain.Source, hit terrain.Hit, bubble bool) {
	if p == nil || actor == nil {
		return
	}
	c := Collision{Trigger: p.Entity, Actor: actor, Hit: hit}
	if !allPass(p.CollisionPredicates, c) {
		return
	}
	if p.collisions.notify(actor, hit) {
		p.OnCollisionEnter.Invoke(c)
	}
	if bubble {
		eachAncestor(p.world, p.Entity, PlatformComponent, func(parent *Platform) bool {
			parent.NotifyCollision(actor, hit, false)
			return true
		})
	}
}

// NotifySurfaceCollision records that actor stands on this platform this tick.
func (p *Platform) NotifySurfaceCollision(actor terrain.Source, hit terrain.Hit, bubble bool) {
	if p == nil || actor == nil {
		return
	}
	c := Collision{Trigger: p.Entity, Actor: actor, Hit: hit}
	if !allPass(p.SurfacePredicates, c) {
		return
	}
	if p.surfaces.notify(actor, hit) {
		p.OnSurfaceEnter.Invoke(c)
	}
	if bubble {
		eachAncestor(p.world, p.Entity, PlatformComponent, func(parent *Platform) bool {
			parent.NotifySurfaceCollision(actor, hit, false)
			return true
		})
	}
}

// Update settles this tick's notifications. It must run once per tick,
// after every actor has moved.
func (p *Platform) Update() {
	if p == nil {
		return
	}
	p.collisions.update(func(c Contact) {
		col := Collision{Trigger: p.Entity, Actor: c.Actor, Hit: c.Hit}
		if allPass(p.CollisionPredicates, col) {
			p.OnCollisionStay.Invoke(col)
		}
	}, func(c Contact) {
		p.OnCollisionExit.Invoke(Collision{Trigger: p.Entity, Actor: c.Actor, Hit: c.Hit})
	})
	p.surfaces.update(func(c Contact) {
		col := Collision{Trigger: p.Entity, Actor: c.Actor, Hit: c.Hit}
		if allPass(p.SurfacePredicates, col) {
			p.OnSurfaceStay.Invoke(col)
		}
	}, func(c Contact) {
		p.OnSurfaceExit.Invoke(Collision{Trigger: p.Entity, Actor: c.Actor, Hit: c.Hit})
	})
}

// Colliding reports whether actor was colliding as of the last update.
func (p *Platform) Colliding(actor terrain.Source) bool {
	return p != nil && p.collisions.contains(actor)
}

// Supporting reports whether actor was standing on the platform as of the last update.
func (p *Platform) Supporting(actor terrain.Source) bool {
	return p != nil && p.surfaces.contains(actor)
}

// Riders returns the actors standing on the platform.
func (p *Platform) Riders() []terrain.Source {
	if p == nil {
		return nil
	}
	return p.surfaces.actors()
}

// NotifyCollisions forwards a selected hit to the platform on the hit node,
// bubbling to its ancestors. Without one, ancestors that accept hits from
// children are notified directly.
func NotifyCollisions(w *ecs.World, actor terrain.Source, hit terrain.Hit) {
	notifyReaching(w, hit, func(p *Platform, bubble bool) {
		p.NotifyCollision(actor, hit, bubble)
	})
}

// NotifySurfaces forwards a surface the actor stands on, like NotifyCollisions.
func NotifySurfaces(w *ecs.World, actor terrain.Source, hit terrain.Hit) {
	notifyReaching(w, hit, func(p *Platform, bubble bool) {
		p.NotifySurfaceCollision(actor, hit, bubble)
	})
}

func notifyReaching(w *ecs.World, hit terrain.Hit, fn func(p *Platform, bubble bool)) {
	if w == nil || !hit.Valid() {
		return
	}
	if p, ok := ecs.Get(w, hit.Entity, PlatformComponent); ok {
		fn(p, true)
		return
	}
	eachAncestor(w, hit.Entity, PlatformComponent, func(p *Platform) bool {
		fn(p, false)
		return true
	})
}
