package ecs

// EntityId identifies an entity. Ids are dense and allocated in creation order:
// the n-th entity created by a World has id n-1. Ids are never reused.
type EntityId uint32

// Index returns the slot index of the entity in every component storage.
func (e EntityId) Index() int {
	return int(e)
}
