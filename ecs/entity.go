package ecs

import "fmt"

// Entity packs a slot id in its low half and the slot's generation in its
// high half. Slot 0 is reserved, so the zero Entity never refers to a node.
type Entity uint64

type entityID uint32
type generation uint32

const (
	slotBits = 32
	slotMask = 1<<slotBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<slotBits | Entity(id)
}

func (e Entity) id() entityID {
	return entityID(e & slotMask)
}

func (e Entity) generation() generation {
	return generation(e >> slotBits)
}

// String formats e as slot:generation.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() != 0
}
