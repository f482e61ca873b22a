package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/loopdeloop/ecs/component"
)

var ErrHierarchyCycle = errors.New("ecs: parent would create a cycle")

// node is the arena entry for one entity: its parent link and name.
type node struct {
	parent Entity
	name   string
}

func (w *World) node(e Entity) *node {
	if w == nil || !w.entities.isAlive(e) {
		return nil
	}
	return &w.nodes[e.id()-1]
}

// SetParent links child under parent. A zero parent detaches child.
func (w *World) SetParent(child, parent Entity) error {
	n := w.node(child)
	if n == nil {
		return errEntityNotAlive(child)
	}
	if parent == 0 {
		n.parent = 0
		return nil
	}
	if !w.IsAlive(parent) {
		return errEntityNotAlive(parent)
	}
	if parent == child || w.IsAncestor(child, parent) {
		return ErrHierarchyCycle
	}
	n.parent = parent
	return nil
}

// Parent returns the parent of e, if any.
func (w *World) Parent(e Entity) (Entity, bool) {
	n := w.node(e)
	if n == nil || !w.IsAlive(n.parent) {
		return 0, false
	}
	return n.parent, true
}

// Children returns the direct children of e.
func (w *World) Children(e Entity) []Entity {
	if w == nil || !w.IsAlive(e) {
		return nil
	}
	var out []Entity
	w.entities.each(func(c Entity) {
		if w.nodes[c.id()-1].parent == e {
			out = append(out, c)
		}
	})
	return out
}

func (w *World) SetName(e Entity, name string) {
	if n := w.node(e); n != nil {
		n.name = name
	}
}

func (w *World) Name(e Entity) string {
	if n := w.node(e); n != nil {
		return n.name
	}
	return ""
}

// FindByName returns the first live entity named name.
func (w *World) FindByName(name string) (Entity, bool) {
	if w == nil || name == "" {
		return 0, false
	}
	var found Entity
	w.entities.each(func(e Entity) {
		if found == 0 && w.nodes[e.id()-1].name == name {
			found = e
		}
	})
	return found, found != 0
}

// EachAncestor calls fn for every ancestor of e, nearest first, until fn
// returns false. e itself is not visited.
func (w *World) EachAncestor(e Entity, fn func(ancestor Entity) bool) {
	cur, ok := w.Parent(e)
	for ok {
		if !fn(cur) {
			return
		}
		cur, ok = w.Parent(cur)
	}
}

// IsAncestor reports whether ancestor appears in the parent chain of e.
func (w *World) IsAncestor(ancestor, e Entity) bool {
	found := false
	w.EachAncestor(e, func(a Entity) bool {
		found = a == ancestor
		return !found
	})
	return found
}

// ParentHasName reports whether e or any of its ancestors is named name.
func (w *World) ParentHasName(e Entity, name string) bool {
	if name == "" || !w.IsAlive(e) {
		return false
	}
	if w.Name(e) == name {
		return true
	}
	found := false
	w.EachAncestor(e, func(a Entity) bool {
		found = w.Name(a) == name
		return !found
	})
	return found
}

func errEntityNotAlive(e Entity) error {
	return fmt.Errorf("ecs: entity %s: %w", e, component.ErrEntityNotAlive)
}
