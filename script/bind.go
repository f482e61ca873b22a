package script

import "github.com/milk9111/loopdeloop/trigger"

// BindPlatform routes the platform's collision and surface events to rt.
func BindPlatform(rt *Runtime, p *trigger.Platform) {
	if rt == nil || p == nil {
		return
	}
	on := func(ev *trigger.Event[trigger.Collision], handler string) {
		if rt.Handles(handler) {
			ev.Add(func(c trigger.Collision) { rt.Call(handler, c.Actor) })
		}
	}
	on(&p.OnCollisionEnter, "on_collision_enter")
	on(&p.OnCollisionStay, "on_collision_stay")
	on(&p.OnCollisionExit, "on_collision_exit")
	on(&p.OnSurfaceEnter, "on_surface_enter")
	on(&p.OnSurfaceStay, "on_surface_stay")
	on(&p.OnSurfaceExit, "on_surface_exit")
}

func BindObject(rt *Runtime, o *trigger.Object) {
	if rt == nil || o == nil {
		return
	}
	on := func(ev *trigger.Event[trigger.Activation], handler string) {
		if rt.Handles(handler) {
			ev.Add(func(a trigger.Activation) { rt.Call(handler, a.Actor) })
		}
	}
	on(&o.OnEnter, "on_activate")
	on(&o.OnStay, "on_activate_stay")
	on(&o.OnExit, "on_deactivate")
}

func BindArea(rt *Runtime, a *trigger.Area) {
	if rt == nil || a == nil {
		return
	}
	on := func(ev *trigger.Event[trigger.Collision], handler string) {
		if rt.Handles(handler) {
			ev.Add(func(c trigger.Collision) { rt.Call(handler, c.Actor) })
		}
	}
	on(&a.OnEnter, "on_enter")
	on(&a.OnStay, "on_stay")
	on(&a.OnExit, "on_exit")
}
