package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
)

// Transform is a node's pose relative to its parent, or to the world for
// root nodes. Rotation is in degrees, counter-clockwise.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

func (t Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

// Apply maps a point from t's local frame into its parent's frame.
func (t Transform) Apply(p cp.Vector) cp.Vector {
	return t.Position().Add(common.Rotate(p, t.Rotation))
}

// Under expresses t in the frame parent is expressed in.
func (t Transform) Under(parent Transform) Transform {
	p := parent.Apply(t.Position())
	return Transform{X: p.X, Y: p.Y, Rotation: common.PositiveAngle(t.Rotation + parent.Rotation)}
}
