package script

import (
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/motion"
	"github.com/milk9111/loopdeloop/terrain"
)

// EventData is the payload of events pushed by engine.emit.
type EventData struct {
	Node  ecs.Entity
	Actor ecs.Entity
	Value any
}

func buildEngine(rt *Runtime, actor terrain.Source) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	ctrl, _ := actor.(*motion.Controller)

	values["launch"] = &tengo.UserFunction{Name: "launch", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctrl == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		vx, okx := objectToFloat(args[0])
		vy, oky := objectToFloat(args[1])
		if !okx || !oky {
			return tengo.FalseValue, nil
		}
		ctrl.Launch(vx, vy)
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctrl == nil || len(args) < 1 || !ctrl.Grounded() {
			return tengo.FalseValue, nil
		}
		speed, ok := objectToFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		ctrl.Jump(speed)
		return tengo.TrueValue, nil
	}}

	values["detach"] = &tengo.UserFunction{Name: "detach", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctrl == nil || !ctrl.Grounded() {
			return tengo.FalseValue, nil
		}
		ctrl.Detach()
		return tengo.TrueValue, nil
	}}

	values["set_ground_speed"] = &tengo.UserFunction{Name: "set_ground_speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctrl == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		gs, ok := objectToFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		ctrl.SetGroundSpeed(gs)
		return tengo.TrueValue, nil
	}}

	values["ground_speed"] = &tengo.UserFunction{Name: "ground_speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctrl == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: ctrl.GroundSpeed}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if actor != nil && actor.Grounded() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["set_paths"] = &tengo.UserFunction{Name: "set_paths", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctrl == nil {
			return tengo.FalseValue, nil
		}
		paths := make([]string, 0, len(args))
		for _, arg := range args {
			if s := strings.TrimSpace(objectAsString(arg)); s != "" {
				paths = append(paths, s)
			}
		}
		ctrl.Paths = paths
		return tengo.TrueValue, nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.world == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		data := EventData{Node: rt.node}
		if actor != nil {
			data.Actor = actor.Entity()
		}
		if len(args) > 1 {
			data.Value = objectToAny(args[1])
		}
		rt.world.Events().Push(ecs.Event{Tick: rt.world.Tick(), Type: name, Data: data})
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		log.Printf("script: %s: %s", rt.Path, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["node"] = &tengo.UserFunction{Name: "node", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.world == nil {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: rt.world.Name(rt.node)}, nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.world == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(rt.world.Tick())}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// actorObject exposes a read-only snapshot of the actor to scripts.
func actorObject(w *ecs.World, actor terrain.Source) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	if actor == nil {
		return &tengo.ImmutableMap{Value: values}
	}
	e := actor.Entity()
	values["entity"] = &tengo.Int{Value: int64(e)}
	if w != nil {
		values["name"] = &tengo.String{Value: w.Name(e)}
	}
	values["grounded"] = tengo.FalseValue
	if actor.Grounded() {
		values["grounded"] = tengo.TrueValue
	}
	if c, ok := actor.(*motion.Controller); ok {
		values["x"] = &tengo.Float{Value: c.Position.X}
		values["y"] = &tengo.Float{Value: c.Position.Y}
		values["vx"] = &tengo.Float{Value: c.Velocity.X}
		values["vy"] = &tengo.Float{Value: c.Velocity.Y}
		values["ground_speed"] = &tengo.Float{Value: c.GroundSpeed}
		values["surface_angle"] = &tengo.Float{Value: c.SurfaceAngle}
		values["wall_mode"] = &tengo.String{Value: c.WallMode.String()}
	}
	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
