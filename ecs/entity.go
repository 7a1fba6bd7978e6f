package ecs

import "strconv"

// Entity packs a slot index (low 32 bits) and the slot's generation (high
// 32 bits). A destroyed entity's handle stops matching once its slot is
// reused, so stale links from props fail IsAlive instead of aliasing.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID { return entityID(uint32(e)) }

func (e Entity) generation() generation { return generation(uint64(e) >> entityIDBits) }

// String formats e as slot/generation, e.g. "7/2".
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "/" + strconv.FormatUint(uint64(e.generation()), 10)
}

// IsZero reports whether e is the zero handle, which is never allocated.
func (e Entity) IsZero() bool { return e.id() == 0 }
