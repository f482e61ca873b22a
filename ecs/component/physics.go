package component

import "github.com/jakecoffman/cp"

// ShapeKind selects the Chipmunk shape a ColliderShape becomes.
type ShapeKind string

const (
	ShapeSegment  ShapeKind = "segment"
	ShapeBox      ShapeKind = "box"
	ShapeCircle   ShapeKind = "circle"
	ShapePolyline ShapeKind = "polyline"
	ShapeArc      ShapeKind = "arc"
)

// ColliderShape describes one static shape, relative to the owning node's transform.
type ColliderShape struct {
	Kind ShapeKind
	// Points holds segment endpoints or polyline vertices.
	Points []cp.Vector
	Width  float64
	Height float64
	// Radius is the circle/arc radius, or the bevel of segments and boxes.
	Radius  float64
	OffsetX float64
	OffsetY float64
	// Arc parameters, degrees counter-clockwise from +X.
	StartAngle float64
	EndAngle   float64
	Steps      int
	// Thickness is the fat-segment radius used by polylines and arcs.
	Thickness float64
}

// Collider stores the static terrain shapes of a node and the Chipmunk
// shapes built for them.
type Collider struct {
	Shapes []ColliderShape
	Sensor bool
	Built  []*cp.Shape
}

var ColliderComponent = NewComponent[Collider]()
