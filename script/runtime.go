// Package script runs tengo handlers attached to trigger nodes.
//
// A script defines top-level functions named after the trigger events it
// cares about, each taking (engine, state, actor):
//
//	on_surface_enter := func(engine, state, actor) {
//		engine.launch(actor.vx, 12)
//	}
//
// state is a map private to the node that survives between calls.
package script

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/terrain"
)

var ErrNoHandlers = errors.New("script: no handlers defined")

// Handler names understood by each trigger kind.
var (
	PlatformHandlers = []string{
		"on_collision_enter", "on_collision_stay", "on_collision_exit",
		"on_surface_enter", "on_surface_stay", "on_surface_exit",
	}
	ObjectHandlers = []string{"on_activate", "on_activate_stay", "on_deactivate"}
	AreaHandlers   = []string{"on_enter", "on_stay", "on_exit"}
)

const dispatchCase = `
if __handler == %q {
	%s(__engine, __state, __actor)
}
`

// Runtime is one compiled script bound to one trigger node.
type Runtime struct {
	Path string

	world    *ecs.World
	node     ecs.Entity
	compiled *tengo.Compiled
	state    *tengo.Map
	handlers map[string]bool
	calls    int
}

// Compile builds a runtime for node from src. Only names from allowed that
// the script defines as globals are dispatched.
func Compile(w *ecs.World, node ecs.Entity, path string, src []byte, allowed []string) (*Runtime, error) {
	probe := tengo.NewScript(src)
	probe.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	probed, err := probe.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	if err := probed.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", path, err)
	}

	handlers := map[string]bool{}
	var dispatch strings.Builder
	for _, name := range allowed {
		if !probed.IsDefined(name) {
			continue
		}
		handlers[name] = true
		fmt.Fprintf(&dispatch, dispatchCase, name, name)
	}
	if len(handlers) == 0 {
		return nil, fmt.Errorf("script: %s: %w", path, ErrNoHandlers)
	}

	full := tengo.NewScript([]byte(string(src) + "\n" + dispatch.String()))
	_ = full.Add("__handler", "")
	_ = full.Add("__engine", map[string]any{})
	_ = full.Add("__state", map[string]any{})
	_ = full.Add("__actor", map[string]any{})
	full.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := full.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}

	return &Runtime{
		Path:     path,
		world:    w,
		node:     node,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		handlers: handlers,
	}, nil
}

// Handles reports whether the script defines handler.
func (rt *Runtime) Handles(handler string) bool {
	return rt != nil && rt.handlers[handler]
}

// Calls returns how many handler invocations completed without error.
func (rt *Runtime) Calls() int {
	if rt == nil {
		return 0
	}
	return rt.calls
}

// State returns the value stored under key in the node's script state.
func (rt *Runtime) State(key string) any {
	if rt == nil {
		return nil
	}
	return objectToAny(rt.state.Value[key])
}

// Call runs handler for actor. Script errors are logged and dropped so a
// broken handler never stops the simulation.
func (rt *Runtime) Call(handler string, actor terrain.Source) {
	if !rt.Handles(handler) {
		return
	}
	if err := rt.run(handler, actor); err != nil {
		log.Printf("script: %s %s: %v", rt.Path, handler, err)
		return
	}
	rt.calls++
}

func (rt *Runtime) run(handler string, actor terrain.Source) error {
	if err := rt.compiled.Set("__handler", handler); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", buildEngine(rt, actor)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__actor", actorObject(rt.world, actor)); err != nil {
		return err
	}
	return rt.compiled.Run()
}
