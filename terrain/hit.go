package terrain

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/ecs"
)

// Source is the actor that issued a cast. Selection rules and surface
// predicates read it; the query engine never mutates it.
type Source interface {
	Entity() ecs.Entity
	Grounded() bool
	// Surfaces returns the nodes the actor currently stands on.
	Surfaces() (primary, secondary ecs.Entity)
	// PathNames lists the terrain node names the actor collides with.
	PathNames() []string
}

// Hit is the result of one terrain cast. The zero Hit means "no hit".
type Hit struct {
	Point  cp.Vector
	Normal cp.Vector
	// Alpha is the fraction of the cast travelled before the hit.
	Alpha  float64
	Side   Side
	Source Source
	// Entity is the node that owns the hit shape.
	Entity ecs.Entity
	Shape  *cp.Shape
}

// NoHit is the distinguished empty result.
var NoHit = Hit{}

// Valid reports whether h is an actual hit.
func (h Hit) Valid() bool {
	return h.Shape != nil && h.Entity.Valid()
}

// NormalAngle returns the angle of the surface normal in degrees.
func (h Hit) NormalAngle() float64 {
	return common.NormalAngle(h.Normal)
}

// SurfaceAngle returns the angle of the surface tangent: a floor is 0,
// a wall rising on the right is 90.
func (h Hit) SurfaceAngle() float64 {
	return common.PositiveAngle(h.NormalAngle() - 90)
}

// NormalSide classifies the surface normal.
func (h Hit) NormalSide() Side {
	return SideOfNormal(h.Normal)
}
