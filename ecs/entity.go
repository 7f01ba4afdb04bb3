package ecs

import "fmt"

// Entity packs a slot index in the low 32 bits and the slot's generation in
// the high 32 bits. A destroyed entity's handle goes stale once the slot is
// reused. The zero Entity is never issued.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders slot and generation, e.g. "3v1".
func (e Entity) String() string {
	if !e.Valid() {
		return "none"
	}
	return fmt.Sprintf("%dv%d", e.id(), e.generation())
}

func (e Entity) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e Entity) Valid() bool {
	return e.id() != 0
}
