package motion

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/terrain"
)

func (airborneState) Update(c *Controller, in component.Input) {
	t := c.Tuning
	s := t.Sensors

	if dir := common.Sign(in.MoveX); dir != 0 {
		vx := c.Velocity.X + in.MoveX*t.AirAcceleration
		// Air control never pushes past top speed, but keeps momentum above it.
		if math.Abs(vx) > t.TopSpeed && math.Abs(vx) > math.Abs(c.Velocity.X) {
			vx = dir * math.Max(t.TopSpeed, math.Abs(c.Velocity.X))
		}
		c.Velocity.X = vx
	}
	c.Velocity.Y = math.Max(c.Velocity.Y-t.Gravity, -t.MaxFallSpeed)
	c.Position = c.Position.Add(c.Velocity)

	if c.Velocity.Y > 0 {
		from := c.Position
		to := c.Position.Add(cp.Vector{Y: s.HalfHeight})
		if hit := c.cast(from, to, terrain.SideTop); hit.Valid() {
			c.Position.Y = hit.Point.Y - s.HalfHeight
			c.Velocity.Y = 0
			c.hits = append(c.hits, hit)
		}
	}

	for _, dir := range [2]float64{-1, 1} {
		side := terrain.SideRight
		if dir < 0 {
			side = terrain.SideLeft
		}
		from := c.Position.Add(cp.Vector{Y: s.WallHeight})
		to := from.Add(cp.Vector{X: dir * s.HalfWidth})
		hit := c.cast(from, to, side)
		if !hit.Valid() {
			continue
		}
		c.Position.X = hit.Point.X - dir*s.HalfWidth
		if c.Velocity.X*dir > 0 {
			c.Velocity.X = 0
		}
		c.hits = append(c.hits, hit)
	}

	if c.Velocity.Y > 0 {
		return
	}
	from := c.Position.Add(s.GroundStart.Vector())
	to := c.Position.Add(s.GroundEnd.Vector())
	hit := c.cast(from, to, terrain.SideBottom)
	if !hit.Valid() {
		return
	}
	c.land(hit, in)
}

// land switches to the grounded state and runs its step immediately,
// without integrating the position a second time. The actor keeps falling
// when neither foot reaches the surface the ground check found.
func (c *Controller) land(hit terrain.Hit, in component.Input) {
	left := c.probeFoot(FootingLeft)
	right := c.probeFoot(FootingRight)
	if footing, _ := ResolveFooting(left, right, c.WallMode, c.Velocity.X); footing == FootingNone {
		return
	}

	fall := c.Velocity
	c.Velocity.Y = 0
	c.GroundSpeed = c.Velocity.X
	c.SurfaceAngle = hit.SurfaceAngle()
	c.PrimaryHit = hit
	c.JustLanded = true
	c.changeState(stateGrounded)
	c.state.Update(c, in)
	if c.state != stateGrounded {
		c.JustLanded = false
		c.Velocity = fall
	}
}
