package level

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/config"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/levels"
	"github.com/milk9111/loopdeloop/motion"
	"github.com/milk9111/loopdeloop/script"
	"github.com/milk9111/loopdeloop/terrain"
	"github.com/milk9111/loopdeloop/trigger"
)

// Build creates a world from spec. Actors start from tuning with their
// own overrides applied.
func Build(spec *config.LevelSpec, tuning config.Tuning) (*Level, error) {
	if spec == nil {
		return nil, fmt.Errorf("level: nil spec")
	}
	l := &Level{
		Spec:   spec,
		Tuning: tuning,
		World:  ecs.NewWorld(),
		nodes:  make(map[string]ecs.Entity, len(spec.Nodes)),
		actors: make(map[string]*motion.Controller, len(spec.Actors)),
	}

	for _, n := range spec.Nodes {
		if _, dup := l.nodes[n.Name]; dup {
			return nil, fmt.Errorf("node %q: %w", n.Name, ErrDuplicateName)
		}
		e := l.World.CreateEntity()
		l.World.SetName(e, n.Name)
		l.nodes[n.Name] = e
	}
	for _, n := range spec.Nodes {
		if err := l.buildNode(n); err != nil {
			return nil, fmt.Errorf("level: node %q: %w", n.Name, err)
		}
	}
	// Objects are wired last so every platform and area they listen to exists.
	for _, n := range spec.Nodes {
		if n.Object == nil {
			continue
		}
		if err := l.buildObject(n); err != nil {
			return nil, fmt.Errorf("level: node %q: %w", n.Name, err)
		}
	}

	l.Space = terrain.NewSpace()
	if err := l.Space.Sync(l.World); err != nil {
		return nil, fmt.Errorf("level: %s: %w", spec.Name, err)
	}

	for _, a := range spec.Actors {
		if err := l.buildActor(a); err != nil {
			return nil, fmt.Errorf("level: actor %q: %w", a.Name, err)
		}
	}

	l.Sim = ecs.NewScheduler(
		newTimeline(l, spec.Inputs),
		l.Space,
		motion.NewSystem(),
		trigger.NewSystem(),
	)
	l.World.AddSystem(l.Sim)
	return l, nil
}

func (l *Level) buildNode(n config.NodeSpec) error {
	w := l.World
	e := l.nodes[n.Name]

	if n.Parent != "" {
		parent, ok := l.nodes[n.Parent]
		if !ok {
			return fmt.Errorf("parent %q: %w", n.Parent, ErrUnknownParent)
		}
		if err := w.SetParent(e, parent); err != nil {
			return err
		}
	}

	t := component.Transform{X: n.Transform.X, Y: n.Transform.Y, Rotation: n.Transform.Rotation}
	if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
		return err
	}

	if len(n.Shapes) > 0 {
		col := component.Collider{Sensor: n.Sensor || n.Area != nil}
		for i, s := range n.Shapes {
			shape, err := colliderShape(s)
			if err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
			col.Shapes = append(col.Shapes, shape)
		}
		if err := ecs.Add(w, e, component.ColliderComponent, col); err != nil {
			return err
		}
	}
	if n.Layer != nil {
		layer := component.CollisionLayer{Category: n.Layer.Category, Mask: n.Layer.Mask}
		if err := ecs.Add(w, e, component.CollisionLayerComponent, layer); err != nil {
			return err
		}
	}

	if n.Platform != nil {
		p, err := trigger.NewPlatform(w, e, n.Platform.FromChildren)
		if err != nil {
			return err
		}
		if n.Platform.OneWay {
			angle := l.Tuning.OneWayAngle
			if n.Platform.OneWayAngle > 0 {
				angle = n.Platform.OneWayAngle
			}
			p.SolidityPredicates = append(p.SolidityPredicates, trigger.OneWay(angle))
		}
		rt, err := l.loadScript(e, n.Platform.Script, script.PlatformHandlers)
		if err != nil {
			return err
		}
		script.BindPlatform(rt, p)
	}

	if n.Area != nil {
		a, err := trigger.NewArea(w, e, n.Area.FromChildren)
		if err != nil {
			return err
		}
		rt, err := l.loadScript(e, n.Area.Script, script.AreaHandlers)
		if err != nil {
			return err
		}
		script.BindArea(rt, a)
	}
	return nil
}

func (l *Level) buildObject(n config.NodeSpec) error {
	w := l.World
	e := l.nodes[n.Name]
	spec := n.Object

	o, err := trigger.NewObject(w, e, spec.FromChildren, spec.AllowReactivation)
	if err != nil {
		return err
	}
	rt, err := l.loadScript(e, spec.Script, script.ObjectHandlers)
	if err != nil {
		return err
	}
	script.BindObject(rt, o)

	activate := func(c trigger.Collision) { o.Activate(c.Actor) }
	deactivate := func(c trigger.Collision) { o.Deactivate(c.Actor) }
	switch spec.ActivateOn {
	case "":
	case "surface", "collision":
		p, ok := ecs.Get(w, e, trigger.PlatformComponent)
		if !ok {
			return fmt.Errorf("activate_on %q: %w", spec.ActivateOn, ErrMissingTrigger)
		}
		if spec.ActivateOn == "surface" {
			p.OnSurfaceEnter.Add(activate)
			p.OnSurfaceExit.Add(deactivate)
		} else {
			p.OnCollisionEnter.Add(activate)
			p.OnCollisionExit.Add(deactivate)
		}
	case "area":
		a, ok := ecs.Get(w, e, trigger.AreaComponent)
		if !ok {
			return fmt.Errorf("activate_on %q: %w", spec.ActivateOn, ErrMissingTrigger)
		}
		a.OnEnter.Add(activate)
		a.OnExit.Add(deactivate)
	default:
		return fmt.Errorf("activate_on %q: %w", spec.ActivateOn, config.ErrInvalidLevel)
	}
	return nil
}

func (l *Level) loadScript(e ecs.Entity, path string, handlers []string) (*script.Runtime, error) {
	if path == "" {
		return nil, nil
	}
	src, err := levels.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	rt, err := script.Compile(l.World, e, path, src, handlers)
	if err != nil {
		return nil, err
	}
	l.scripts = append(l.scripts, rt)
	return rt, nil
}

func (l *Level) buildActor(a config.ActorSpec) error {
	w := l.World
	if _, dup := l.nodes[a.Name]; dup {
		return ErrDuplicateName
	}
	if _, dup := l.actors[a.Name]; dup {
		return ErrDuplicateName
	}

	tuning, err := l.Tuning.Override(a.Tuning)
	if err != nil {
		return err
	}
	paths := a.Paths
	if len(paths) == 0 {
		paths = l.rootNames()
	}

	e := w.CreateEntity()
	w.SetName(e, a.Name)
	c := motion.NewController(w, l.Space, e, tuning, paths, a.Spawn.Vector())
	if err := ecs.Add(w, e, motion.ControllerComponent, c); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ActorTagComponent, component.ActorTag{}); err != nil {
		return err
	}
	if a.Player {
		if err := ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
			return err
		}
	}
	if err := ecs.Add(w, e, component.InputComponent, component.Input{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TransformComponent, c.Transform()); err != nil {
		return err
	}

	if tuning.Debug {
		log.Printf("level: actor %s at (%.1f, %.1f) paths %v", a.Name, a.Spawn.X, a.Spawn.Y, paths)
	}
	l.actors[a.Name] = c
	l.order = append(l.order, a.Name)
	return nil
}

// rootNames lists the nodes without a parent. Actors without explicit
// paths collide with every tree.
func (l *Level) rootNames() []string {
	var out []string
	for _, n := range l.Spec.Nodes {
		if n.Parent == "" {
			out = append(out, n.Name)
		}
	}
	return out
}

func colliderShape(s config.ShapeSpec) (component.ColliderShape, error) {
	out := component.ColliderShape{
		Width:      s.Width,
		Height:     s.Height,
		Radius:     s.Radius,
		OffsetX:    s.Offset.X,
		OffsetY:    s.Offset.Y,
		StartAngle: s.StartAngle,
		EndAngle:   s.EndAngle,
		Steps:      s.Steps,
		Thickness:  s.Thickness,
	}
	switch component.ShapeKind(s.Kind) {
	case component.ShapeSegment, component.ShapeBox, component.ShapeCircle, component.ShapePolyline, component.ShapeArc:
		out.Kind = component.ShapeKind(s.Kind)
	default:
		return out, fmt.Errorf("%q: %w", s.Kind, ErrUnknownShape)
	}
	for _, p := range s.Points {
		out.Points = append(out.Points, cp.Vector{X: p.X, Y: p.Y})
	}
	return out, nil
}
