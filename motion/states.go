package motion

import (
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/terrain"
)

// State is one node of the controller's state machine.
type State interface {
	Name() string
	Enter(c *Controller)
	Exit(c *Controller)
	Update(c *Controller, in component.Input)
}

// State singletons (no allocations on transitions).
var (
	stateAirborne State = &airborneState{}
	stateGrounded State = &groundedState{}
)

type airborneState struct{}

type groundedState struct{}

func (airborneState) Name() string { return "airborne" }
func (airborneState) Enter(c *Controller) {
	c.WallMode = WallFloor
	c.Footing = FootingNone
	c.PrimaryHit = terrain.NoHit
	c.SecondaryHit = terrain.NoHit
	c.Rotation = 0
	c.SurfaceAngle = 0
}
func (airborneState) Exit(c *Controller) {}

func (groundedState) Name() string { return "grounded" }
func (groundedState) Enter(c *Controller) {
	c.DetachReason = DetachNone
}
func (groundedState) Exit(c *Controller) {}
