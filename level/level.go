// Package level builds a runnable world from a level file.
package level

import (
	"errors"
	"fmt"

	"github.com/milk9111/loopdeloop/config"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
	"github.com/milk9111/loopdeloop/motion"
	"github.com/milk9111/loopdeloop/script"
	"github.com/milk9111/loopdeloop/terrain"
	"github.com/milk9111/loopdeloop/trigger"
)

var (
	ErrUnknownShape   = errors.New("level: unknown shape kind")
	ErrUnknownParent  = errors.New("level: unknown parent")
	ErrDuplicateName  = errors.New("level: duplicate name")
	ErrMissingTrigger = errors.New("level: activate_on names a trigger the node lacks")
)

// Level is a built scene.
type Level struct {
	Spec   *config.LevelSpec
	Tuning config.Tuning
	World  *ecs.World
	Space  *terrain.Space
	// Sim is the per-tick simulation: input timeline, terrain sync, motion
	// and trigger updates.
	Sim *ecs.Scheduler

	nodes   map[string]ecs.Entity
	actors  map[string]*motion.Controller
	order   []string
	scripts []*script.Runtime
}

// Load reads, validates and builds the level in filename.
func Load(filename string, tuning config.Tuning) (*Level, error) {
	spec, err := config.LoadLevel(filename)
	if err != nil {
		return nil, err
	}
	return Build(spec, tuning)
}

// Node returns the entity of the named terrain node.
func (l *Level) Node(name string) (ecs.Entity, bool) {
	e, ok := l.nodes[name]
	return e, ok
}

// Actor returns the named actor's controller.
func (l *Level) Actor(name string) (*motion.Controller, bool) {
	c, ok := l.actors[name]
	return c, ok
}

// Actors returns actor names in the order the level file lists them.
func (l *Level) Actors() []string {
	return append([]string(nil), l.order...)
}

// Player returns the first actor marked as the player, or the first actor.
func (l *Level) Player() (*motion.Controller, bool) {
	for _, name := range l.order {
		c := l.actors[name]
		if ecs.Has(l.World, c.Entity(), component.PlayerTagComponent) {
			return c, true
		}
	}
	if len(l.order) > 0 {
		return l.actors[l.order[0]], true
	}
	return nil, false
}

func (l *Level) Scripts() []*script.Runtime {
	return append([]*script.Runtime(nil), l.scripts...)
}

// Platform returns the platform trigger on the named node.
func (l *Level) Platform(name string) (*trigger.Platform, bool) {
	e, ok := l.nodes[name]
	if !ok {
		return nil, false
	}
	return ecs.Get(l.World, e, trigger.PlatformComponent)
}

func (l *Level) Object(name string) (*trigger.Object, bool) {
	e, ok := l.nodes[name]
	if !ok {
		return nil, false
	}
	return ecs.Get(l.World, e, trigger.ObjectComponent)
}

func (l *Level) Area(name string) (*trigger.Area, bool) {
	e, ok := l.nodes[name]
	if !ok {
		return nil, false
	}
	return ecs.Get(l.World, e, trigger.AreaComponent)
}

// SetInput replaces an actor's input for the next tick. Timeline entries
// covering that tick take precedence.
func (l *Level) SetInput(name string, in component.Input) error {
	c, ok := l.actors[name]
	if !ok {
		return fmt.Errorf("level: unknown actor %q", name)
	}
	return ecs.Add(l.World, c.Entity(), component.InputComponent, in)
}

// Step advances the world one tick.
func (l *Level) Step() {
	l.World.Update()
}

// Run advances n ticks, or the level's tick count when n is not positive.
func (l *Level) Run(n int) {
	if n <= 0 {
		n = l.Spec.Ticks
	}
	for i := 0; i < n; i++ {
		l.Step()
	}
}
