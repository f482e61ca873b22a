// Package motion moves actors along terrain: airborne physics, landing,
// and running on floors, walls and ceilings.
package motion

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/config"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/terrain"
	"github.com/milk9111/loopdeloop/trigger"
)

// DetachReason records why an actor last left the ground.
type DetachReason string

const (
	DetachNone       DetachReason = ""
	DetachNoSurface  DetachReason = "no_surface"
	DetachContinuity DetachReason = "continuity"
	DetachSlip       DetachReason = "slip"
	DetachJump       DetachReason = "jump"
	DetachLaunch     DetachReason = "launch"
)

// Controller is one actor's surface-following state. It is also the
// terrain.Source of every cast the actor makes.
type Controller struct {
	Tuning config.Tuning
	Paths  []string

	Position cp.Vector
	Velocity cp.Vector
	// GroundSpeed is the signed speed along the surface while grounded.
	GroundSpeed  float64
	SurfaceAngle float64
	Rotation     float64
	WallMode     WallMode
	Footing      Footing
	JustLanded   bool
	DetachReason DetachReason

	PrimaryHit   terrain.Hit
	SecondaryHit terrain.Hit

	entity ecs.Entity
	world  *ecs.World
	space  *terrain.Space
	caster *terrain.Caster
	state  State

	// hits collects every contact made this step, for collision notifications.
	hits []terrain.Hit
}

var ControllerComponent = component.NewComponent[*Controller]()

// NewController creates an airborne controller at position. Casts use the
// trigger-aware selector, so terrain must be reachable through paths.
func NewController(w *ecs.World, space *terrain.Space, e ecs.Entity, tuning config.Tuning, paths []string, position cp.Vector) *Controller {
	c := &Controller{
		Tuning:   tuning,
		Paths:    append([]string(nil), paths...),
		Position: position,
		entity:   e,
		world:    w,
		space:    space,
		state:    stateAirborne,
	}
	c.caster = terrain.NewCaster(space, uint(tuning.TerrainMask), trigger.TransformSelector(w))
	return c
}

func (c *Controller) Entity() ecs.Entity { return c.entity }

func (c *Controller) Grounded() bool { return c.state == stateGrounded }

func (c *Controller) Surfaces() (primary, secondary ecs.Entity) {
	return c.PrimaryHit.Entity, c.SecondaryHit.Entity
}

func (c *Controller) PathNames() []string { return c.Paths }

// State returns the name of the current state.
func (c *Controller) State() string {
	if c.state == nil {
		return ""
	}
	return c.state.Name()
}

// Step advances the actor one tick.
func (c *Controller) Step(in component.Input) {
	if c == nil {
		return
	}
	if c.state == nil {
		c.state = stateAirborne
	}
	c.JustLanded = false
	c.hits = c.hits[:0]

	c.state.Update(c, in)

	c.notifyCollisions()
	c.notifyAreas()
}

func (c *Controller) changeState(next State) {
	if c.state == next {
		return
	}
	if c.state != nil {
		c.state.Exit(c)
	}
	if c.Tuning.Debug {
		log.Printf("motion: %s %s -> %s at (%.2f, %.2f)", c.entity, c.State(), next.Name(), c.Position.X, c.Position.Y)
	}
	c.state = next
	next.Enter(c)
}

// Detach drops the actor off the ground, keeping its world velocity.
func (c *Controller) Detach() {
	c.detach(DetachNone)
}

func (c *Controller) detach(reason DetachReason) {
	if c.state == stateGrounded {
		c.DetachReason = reason
	}
	c.changeState(stateAirborne)
}

// Launch detaches the actor and sets its world velocity.
func (c *Controller) Launch(vx, vy float64) {
	c.Velocity = cp.Vector{X: vx, Y: vy}
	if c.state == stateGrounded {
		c.detach(DetachLaunch)
	}
}

// Jump adds speed along the surface normal and leaves the ground. It does
// nothing while airborne.
func (c *Controller) Jump(speed float64) {
	if c.state != stateGrounded {
		return
	}
	normal := common.DirectionOf(c.SurfaceAngle + 90)
	c.Velocity = c.Velocity.Add(normal.Mult(speed))
	c.detach(DetachJump)
}

// SetGroundSpeed replaces the ground speed and the velocity derived from it.
func (c *Controller) SetGroundSpeed(gs float64) {
	c.GroundSpeed = gs
	if c.state == stateGrounded {
		c.Velocity = common.DirectionOf(c.SurfaceAngle).Mult(gs)
	}
}

// Transform returns the actor's pose.
func (c *Controller) Transform() component.Transform {
	return component.Transform{X: c.Position.X, Y: c.Position.Y, Rotation: c.Rotation}
}

func (c *Controller) cast(from, to cp.Vector, side terrain.Side) terrain.Hit {
	return c.caster.Cast(from, to, side, c)
}

// local converts an offset in the wall mode's frame to a world point.
func (c *Controller) local(v cp.Vector) cp.Vector {
	return c.Position.Add(c.WallMode.ToWorld(v))
}

func (c *Controller) notifyCollisions() {
	if c.world == nil {
		return
	}
	for _, h := range c.hits {
		trigger.NotifyCollisions(c.world, c, h)
	}
	if c.state != stateGrounded {
		return
	}
	if c.PrimaryHit.Valid() {
		trigger.NotifySurfaces(c.world, c, c.PrimaryHit)
	}
	if c.SecondaryHit.Valid() && c.SecondaryHit.Entity != c.PrimaryHit.Entity {
		trigger.NotifySurfaces(c.world, c, c.SecondaryHit)
	}
}

// Bounds is the actor's collision box.
func (c *Controller) Bounds() cp.BB {
	s := c.Tuning.Sensors
	return cp.NewBBForExtents(c.Position, s.HalfWidth, s.HalfHeight)
}

func (c *Controller) notifyAreas() {
	if c.world == nil || c.space == nil {
		return
	}
	c.space.BBQuery(c.Bounds(), uint(c.Tuning.TerrainMask), func(e ecs.Entity, _ *cp.Shape) {
		trigger.NotifyOverlaps(c.world, e, c)
	})
}
