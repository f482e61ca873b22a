package ecs

import "github.com/milk9111/loopdeloop/ecs/component"

// WorldTransform composes e's transform with those of its ancestors.
// Nodes without a Transform contribute the identity.
func WorldTransform(w *World, e Entity) component.Transform {
	out, _ := Get(w, e, component.TransformComponent)
	w.EachAncestor(e, func(a Entity) bool {
		if parent, ok := Get(w, a, component.TransformComponent); ok {
			out = out.Under(parent)
		}
		return true
	})
	return out
}
