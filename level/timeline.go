package level

import (
	"github.com/milk9111/loopdeloop/config"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
)

// timeline writes scripted input at the start of each tick. Actors with no
// entry covering the tick keep whatever input was set on them.
type timeline struct {
	level   *Level
	entries map[string][]config.InputSpec
	last    map[string]component.Input
}

func newTimeline(l *Level, inputs []config.InputSpec) *timeline {
	t := &timeline{
		level:   l,
		entries: map[string][]config.InputSpec{},
		last:    map[string]component.Input{},
	}
	for _, in := range inputs {
		t.entries[in.Actor] = append(t.entries[in.Actor], in)
	}
	return t
}

func (t *timeline) Update(w *ecs.World) {
	tick := int(w.Tick())
	for actor, entries := range t.entries {
		c, ok := t.level.actors[actor]
		if !ok {
			continue
		}
		var (
			entry   config.InputSpec
			covered bool
		)
		// Later entries win where ranges overlap.
		for _, e := range entries {
			if e.Covers(tick) {
				entry, covered = e, true
			}
		}
		if !covered {
			delete(t.last, actor)
			continue
		}
		in := t.last[actor].Next(entry.MoveX, entry.Jump)
		t.last[actor] = in
		if err := ecs.Add(w, c.Entity(), component.InputComponent, in); err != nil {
			panic("level timeline: update input: " + err.Error())
		}
	}
}
