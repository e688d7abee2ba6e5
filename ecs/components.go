package ecs

import (
	"iter"
	"reflect"
)

// AddComponent attaches component to entity, replacing any previous value of the
// same type. The storage for T is created on first use and back-filled with empty
// slots so that its length always equals the number of entities.
//
// Panics if entity was not allocated by w, or if T is currently borrowed.
func AddComponent[T any](w *World, entity EntityId, component T) {
	w.mustContain(entity)
	storage := typedStorage[T](w)
	if storage == nil {
		registerComponent[T](w.registry)
		storage = newGenericComponentStorage[T]()
		w.addStorage(storage)
	}
	storage.borrow.guardMutation("component", storage.typ)
	storage.Grow(w.numEntities)
	storage.Set(entity.Index(), component)
}

// RemoveComponent empties the entity's slot for T. Returns false if there was nothing to remove.
func RemoveComponent[T any](w *World, entity EntityId) bool {
	return w.RemoveComponentType(entity, reflect.TypeFor[T]())
}

// ComponentReader is implemented by anything that can look up a component by type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entity EntityId) *T {
	component := reader.GetComponent(entity, reflect.TypeFor[T]())
	if component == nil {
		return nil
	}
	return component.(*T)
}

// ComponentsRef is a shared borrow of every slot of one component type.
// Values reached through it must only be read.
type ComponentsRef[T any] struct {
	storage *genericComponentStorage[T]
	live    bool
}

// BorrowComponents borrows the storage for T for reading. The second result is
// false if no entity has ever received a T. Panics if T is borrowed exclusively.
func BorrowComponents[T any](w *World) (*ComponentsRef[T], bool) {
	storage := typedStorage[T](w)
	if storage == nil {
		return nil, false
	}
	storage.borrow.acquireShared("component", storage.typ)
	return &ComponentsRef[T]{storage: storage, live: true}, true
}

// Len returns the number of slots, which equals the number of entities.
func (c *ComponentsRef[T]) Len() int {
	return c.storage.Len()
}

// Get returns the entity's component, or false if its slot is empty.
func (c *ComponentsRef[T]) Get(entity EntityId) (*T, bool) {
	ref := c.storage.Ref(entity.Index())
	return ref, ref != nil
}

// All yields every occupied slot in ascending entity order.
func (c *ComponentsRef[T]) All() iter.Seq2[EntityId, *T] {
	return allSlots(c.storage)
}

// Release ends the borrow. Calling it more than once has no effect.
func (c *ComponentsRef[T]) Release() {
	if !c.live {
		return
	}
	c.live = false
	c.storage.borrow.releaseShared()
}

// ComponentsMut is an exclusive borrow of every slot of one component type.
type ComponentsMut[T any] struct {
	storage *genericComponentStorage[T]
	live    bool
}

// BorrowComponentsMut borrows the storage for T exclusively. The second result is
// false if no entity has ever received a T. Panics if T is borrowed at all.
func BorrowComponentsMut[T any](w *World) (*ComponentsMut[T], bool) {
	storage := typedStorage[T](w)
	if storage == nil {
		return nil, false
	}
	storage.borrow.acquireExclusive("component", storage.typ)
	return &ComponentsMut[T]{storage: storage, live: true}, true
}

// Len returns the number of slots, which equals the number of entities.
func (c *ComponentsMut[T]) Len() int {
	return c.storage.Len()
}

// Get returns the entity's component, or false if its slot is empty.
func (c *ComponentsMut[T]) Get(entity EntityId) (*T, bool) {
	ref := c.storage.Ref(entity.Index())
	return ref, ref != nil
}

// Set occupies the entity's slot with component.
func (c *ComponentsMut[T]) Set(entity EntityId, component T) {
	c.storage.Set(entity.Index(), component)
}

// Clear empties the entity's slot.
func (c *ComponentsMut[T]) Clear(entity EntityId) bool {
	return c.storage.Clear(entity.Index())
}

// All yields every occupied slot in ascending entity order.
func (c *ComponentsMut[T]) All() iter.Seq2[EntityId, *T] {
	return allSlots(c.storage)
}

// Release ends the borrow. Calling it more than once has no effect.
func (c *ComponentsMut[T]) Release() {
	if !c.live {
		return
	}
	c.live = false
	c.storage.borrow.releaseExclusive()
}

func allSlots[T any](storage *genericComponentStorage[T]) iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for index := range storage.Iter() {
			if !yield(EntityId(index), storage.Ref(index)) {
				return
			}
		}
	}
}
