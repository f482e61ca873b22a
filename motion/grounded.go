package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/terrain"
)

func (groundedState) Update(c *Controller, in component.Input) {
	t := c.Tuning

	if in.JumpPressed && !c.JustLanded {
		c.Jump(t.JumpSpeed)
		return
	}

	if !c.JustLanded {
		c.Position = c.Position.Add(c.Velocity)
	}
	c.resolveGroundWall()

	left := c.probeFoot(FootingLeft)
	right := c.probeFoot(FootingRight)
	footing, hit := ResolveFooting(left, right, c.WallMode, c.GroundSpeed)
	if footing == FootingNone {
		c.detach(DetachNoSurface)
		return
	}

	angle := hit.SurfaceAngle()
	if !c.JustLanded && !common.AngleWithin(angle, c.SurfaceAngle, t.ContinuityThreshold) {
		c.detach(DetachContinuity)
		return
	}
	c.SurfaceAngle = angle
	c.Footing = footing

	c.applyGroundInput(in.MoveX)
	c.orient(footing, hit)

	if math.Abs(c.GroundSpeed) > t.WallModeSpeed {
		c.WallMode = NextWallMode(c.WallMode, c.SurfaceAngle, t.WallModeHysteresis)
	}
	c.Velocity = common.DirectionOf(c.SurfaceAngle).Mult(c.GroundSpeed)
	if c.JustLanded {
		// Velocity follows the surface from the next tick on.
		c.Velocity.Y = 0
	}

	if c.WallMode != WallFloor && math.Abs(c.GroundSpeed) < t.SlipSpeed {
		c.detach(DetachSlip)
	}
}

// probeFoot casts the side probe of a foot, then its tile probe.
func (c *Controller) probeFoot(f Footing) terrain.Hit {
	s := c.Tuning.Sensors
	x := f.sign() * s.FootSpread
	foot := cp.Vector{X: x, Y: -s.HalfHeight}

	side := c.local(cp.Vector{X: x, Y: -s.HalfHeight + s.SideHeight})
	if hit := c.cast(side, c.local(foot), terrain.SideBottom); hit.Valid() {
		return hit
	}
	tileFrom := c.local(cp.Vector{X: x, Y: -s.HalfHeight + s.ClimbHeight})
	tileTo := c.local(cp.Vector{X: x, Y: -s.HalfHeight - s.DropDepth})
	return c.cast(tileFrom, tileTo, terrain.SideBottom)
}

// snapFoot moves the actor along the mode's up axis so foot f rests on p.
func (c *Controller) snapFoot(f Footing, p cp.Vector) {
	s := c.Tuning.Sensors
	foot := c.local(cp.Vector{X: f.sign() * s.FootSpread, Y: -s.HalfHeight})
	up := c.WallMode.Up()
	c.Position = c.Position.Add(up.Mult(p.Sub(foot).Dot(up)))
}

// orient aligns the actor with the contact under footing and, when the
// other foot also rests on a compatible surface, with the line between both.
func (c *Controller) orient(footing Footing, hit terrain.Hit) {
	c.Rotation = c.SurfaceAngle
	c.snapFoot(footing, hit.Point)
	c.PrimaryHit = hit
	c.SecondaryHit = terrain.NoHit

	other := c.probeFoot(footing.opposite())
	if other.Valid() && common.AngleWithin(other.NormalAngle(), hit.NormalAngle(), c.Tuning.ContinuityThreshold) {
		l, r := hit.Point, other.Point
		if footing == FootingRight {
			l, r = r, l
		}
		c.SurfaceAngle = common.LineAngle(l, r)
		c.Rotation = c.SurfaceAngle
		c.snapFoot(footing, hit.Point)
		c.SecondaryHit = other
		c.hits = append(c.hits, other)
	}
	c.hits = append(c.hits, hit)
}

// applyGroundInput updates the ground speed from slope, input and friction.
func (c *Controller) applyGroundInput(moveX float64) {
	t := c.Tuning
	gs := c.GroundSpeed - t.SlopeFactor*math.Sin(mgl64.DegToRad(c.SurfaceAngle))

	dir := common.Sign(moveX)
	switch {
	case dir == 0:
		gs = common.MoveToward(gs, 0, t.Friction)
	case gs != 0 && common.Sign(gs) != dir:
		gs += moveX * t.Deceleration
		if common.Sign(gs) == dir {
			gs = dir * t.Deceleration
		}
	case math.Abs(gs) < t.TopSpeed:
		gs += moveX * t.Acceleration
		if math.Abs(gs) > t.TopSpeed {
			gs = dir * t.TopSpeed
		}
	}
	c.GroundSpeed = gs
}

// resolveGroundWall stops the actor at a wall ahead in its direction of
// travel. Hits that continue the current surface are left to the probes.
func (c *Controller) resolveGroundWall() {
	if c.GroundSpeed == 0 {
		return
	}
	s := c.Tuning.Sensors
	dir := common.Sign(c.GroundSpeed)
	side := terrain.SideRight
	if dir < 0 {
		side = terrain.SideLeft
	}
	from := c.local(cp.Vector{Y: s.WallHeight})
	to := c.local(cp.Vector{X: dir * s.HalfWidth, Y: s.WallHeight})
	hit := c.cast(from, to, side)
	if !hit.Valid() {
		return
	}
	if common.AngleWithin(hit.NormalAngle(), c.SurfaceAngle+90, c.Tuning.ContinuityThreshold) {
		return
	}
	axis := c.WallMode.ToWorld(cp.Vector{X: dir})
	c.Position = c.Position.Add(axis.Mult(hit.Point.Sub(to).Dot(axis)))
	c.GroundSpeed = 0
	c.Velocity = cp.Vector{}
	c.hits = append(c.hits, hit)
}
