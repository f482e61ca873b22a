package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var lastComponentID atomic.Uint32

// Kind identifies one component store. Untyped world calls and multi-kind
// queries take a Kind; ComponentHandle is the typed form.
type Kind interface {
	ID() ComponentID
}

// ComponentHandle names the store for values of type T. Handles are created
// once per component, as package-level vars.
type ComponentHandle[T any] struct {
	id   ComponentID
	name string
}

func NewComponent[T any]() ComponentHandle[T] {
	var zero T
	return ComponentHandle[T]{
		id:   ComponentID(lastComponentID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}
}

func (h ComponentHandle[T]) ID() ComponentID { return h.id }

// Kind returns h as an untyped Kind.
func (h ComponentHandle[T]) Kind() Kind { return h }

func (h ComponentHandle[T]) Valid() bool { return h.id != 0 }

// String is the component's Go type, used in error messages.
func (h ComponentHandle[T]) String() string { return h.name }
