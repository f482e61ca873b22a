package terrain

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/common"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
)

var ErrInvalidShape = errors.New("terrain: invalid collider shape")

const defaultArcSteps = 16

// Space owns the Chipmunk space holding every static terrain shape. Each
// shape's UserData is the ecs.Entity of the node it belongs to.
type Space struct {
	space *cp.Space

	nodes map[ecs.Entity]*nodeShapes
}

type nodeShapes struct {
	shapes    []*cp.Shape
	transform component.Transform
	seen      bool
}

func NewSpace() *Space {
	return &Space{
		space: cp.NewSpace(),
		nodes: make(map[ecs.Entity]*nodeShapes),
	}
}

func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// Update keeps the space in step with the world's colliders.
func (s *Space) Update(w *ecs.World) {
	if err := s.Sync(w); err != nil {
		log.Printf("terrain: sync: %v", err)
	}
}

// Sync adds shapes for new colliders, rebuilds colliders whose world
// transform moved and removes shapes of nodes that are gone.
func (s *Space) Sync(w *ecs.World) error {
	if s == nil || w == nil {
		return nil
	}
	if s.space == nil {
		s.space = cp.NewSpace()
	}
	for _, ns := range s.nodes {
		ns.seen = false
	}

	var errs []error
	ecs.ForEach(w, component.ColliderComponent, func(e ecs.Entity, col component.Collider) {
		t := ecs.WorldTransform(w, e)
		if ns, ok := s.nodes[e]; ok && ns.transform == t {
			ns.seen = true
			return
		}
		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent)
		shapes, err := s.AddNode(e, t, col, layer)
		if err != nil {
			errs = append(errs, err)
			return
		}
		col.Built = shapes
		if err := ecs.Add(w, e, component.ColliderComponent, col); err != nil {
			errs = append(errs, err)
		}
	})

	for e, ns := range s.nodes {
		if !ns.seen {
			s.RemoveNode(e)
		}
	}
	return errors.Join(errs...)
}

// AddNode builds the shapes of col at transform t and indexes them,
// replacing any shapes previously added for e.
func (s *Space) AddNode(e ecs.Entity, t component.Transform, col component.Collider, layer component.CollisionLayer) ([]*cp.Shape, error) {
	if s == nil {
		return nil, nil
	}
	s.RemoveNode(e)

	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: layer.CategoryBits(), Mask: layer.MaskBits()}
	var shapes []*cp.Shape
	for i, def := range col.Shapes {
		built, err := s.buildShape(t, def)
		if err != nil {
			for _, shape := range shapes {
				s.space.RemoveShape(shape)
			}
			return nil, fmt.Errorf("terrain: node %s shape %d: %w", e, i, err)
		}
		for _, shape := range built {
			shape.UserData = e
			shape.SetFilter(filter)
			shape.SetSensor(col.Sensor)
			s.space.AddShape(shape)
		}
		shapes = append(shapes, built...)
	}
	s.nodes[e] = &nodeShapes{shapes: shapes, transform: t, seen: true}
	return shapes, nil
}

// RemoveNode drops every shape belonging to e.
func (s *Space) RemoveNode(e ecs.Entity) {
	if s == nil {
		return
	}
	ns, ok := s.nodes[e]
	if !ok {
		return
	}
	for _, shape := range ns.shapes {
		s.space.RemoveShape(shape)
	}
	delete(s.nodes, e)
}

// Shapes returns the shapes currently indexed for e.
func (s *Space) Shapes(e ecs.Entity) []*cp.Shape {
	if s == nil {
		return nil
	}
	if ns, ok := s.nodes[e]; ok {
		return ns.shapes
	}
	return nil
}

// BBQuery calls fn once per shape overlapping bb whose category matches mask.
func (s *Space) BBQuery(bb cp.BB, mask uint, fn func(e ecs.Entity, shape *cp.Shape)) {
	if s == nil || s.space == nil || fn == nil {
		return
	}
	if mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: mask}
	s.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if e, ok := shape.UserData.(ecs.Entity); ok && e.Valid() {
			fn(e, shape)
		}
	}, nil)
}

func (s *Space) buildShape(t component.Transform, def component.ColliderShape) ([]*cp.Shape, error) {
	body := s.space.StaticBody
	toWorld := func(local cp.Vector) cp.Vector {
		p := common.Rotate(local.Add(cp.Vector{X: def.OffsetX, Y: def.OffsetY}), t.Rotation)
		return cp.Vector{X: t.X + p.X, Y: t.Y + p.Y}
	}

	switch def.Kind {
	case component.ShapeSegment:
		if len(def.Points) != 2 {
			return nil, fmt.Errorf("segment needs 2 points, got %d: %w", len(def.Points), ErrInvalidShape)
		}
		a, b := toWorld(def.Points[0]), toWorld(def.Points[1])
		if a.Equal(b) {
			return nil, fmt.Errorf("zero-length segment: %w", ErrInvalidShape)
		}
		return []*cp.Shape{cp.NewSegment(body, a, b, def.Radius)}, nil
	case component.ShapePolyline:
		if len(def.Points) < 2 {
			return nil, fmt.Errorf("polyline needs at least 2 points: %w", ErrInvalidShape)
		}
		pts := make([]cp.Vector, len(def.Points))
		for i, p := range def.Points {
			pts[i] = toWorld(p)
		}
		return chain(body, pts, def.Thickness), nil
	case component.ShapeBox:
		if def.Width <= 0 || def.Height <= 0 {
			return nil, fmt.Errorf("box size %gx%g: %w", def.Width, def.Height, ErrInvalidShape)
		}
		hw, hh := def.Width/2, def.Height/2
		verts := []cp.Vector{
			toWorld(cp.Vector{X: hw, Y: -hh}),
			toWorld(cp.Vector{X: hw, Y: hh}),
			toWorld(cp.Vector{X: -hw, Y: hh}),
			toWorld(cp.Vector{X: -hw, Y: -hh}),
		}
		return []*cp.Shape{cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), def.Radius)}, nil
	case component.ShapeCircle:
		if def.Radius <= 0 {
			return nil, fmt.Errorf("circle radius %g: %w", def.Radius, ErrInvalidShape)
		}
		return []*cp.Shape{cp.NewCircle(body, def.Radius, toWorld(cp.Vector{}))}, nil
	case component.ShapeArc:
		if def.Radius <= 0 || def.StartAngle == def.EndAngle {
			return nil, fmt.Errorf("arc radius %g from %g to %g: %w", def.Radius, def.StartAngle, def.EndAngle, ErrInvalidShape)
		}
		steps := def.Steps
		if steps <= 0 {
			steps = defaultArcSteps
		}
		pts := make([]cp.Vector, steps+1)
		for i := 0; i <= steps; i++ {
			deg := common.Lerp(def.StartAngle, def.EndAngle, float64(i)/float64(steps))
			pts[i] = toWorld(common.DirectionOf(deg).Mult(def.Radius))
		}
		return chain(body, pts, def.Thickness), nil
	default:
		return nil, fmt.Errorf("kind %q: %w", def.Kind, ErrInvalidShape)
	}
}

// chain joins consecutive points with segments, skipping repeated points.
func chain(body *cp.Body, pts []cp.Vector, radius float64) []*cp.Shape {
	out := make([]*cp.Shape, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a.Near(b, 1e-9) {
			continue
		}
		out = append(out, cp.NewSegment(body, a, b, math.Max(radius, 0)))
	}
	return out
}
