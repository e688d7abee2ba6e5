package ecs

import (
	"iter"
	"math/bits"
	"reflect"
	"unsafe"
)

// ComponentRegistry records how to build a storage for a component type. Typed
// insertion registers implicitly; type-erased paths (World.Spawn, Commands) can
// only create storages for types found here.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers T with the world's registry so that type-erased
// insertion can create its storage. It does not create the storage itself.
func RegisterComponent[T any](w *World) {
	registerComponent[T](w.registry)
}

func registerComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return newGenericComponentStorage[T]()
	}
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

// Registered reports whether t has a storage factory.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores the components of type T in fixed-size blocks.
// Blocks are allocated individually so component pointers stay valid while the
// storage grows.
type genericComponentStorage[T any] struct {
	typ      reflect.Type
	blocks   []*[genericBlockSize]T
	filled   []uint64
	length   int
	occupied int
	borrow   borrowState
}

func newGenericComponentStorage[T any]() *genericComponentStorage[T] {
	return &genericComponentStorage[T]{typ: reflect.TypeFor[T]()}
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return cs.typ
}

// Len returns the number of slots, occupied or not.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.length
}

// Occupied returns the number of occupied slots.
func (cs *genericComponentStorage[T]) Occupied() int {
	return cs.occupied
}

// PushSlot appends one empty slot.
func (cs *genericComponentStorage[T]) PushSlot() {
	cs.Grow(cs.length + 1)
}

// Grow extends the storage with empty slots until it holds at least n slots.
func (cs *genericComponentStorage[T]) Grow(n int) {
	for len(cs.blocks)*genericBlockSize < n {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, 0)
	}
	if n > cs.length {
		cs.length = n
	}
}

// Has checks if the slot at index is occupied.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.length {
		return false
	}
	return cs.filled[index/genericBlockSize]&(1<<(index%genericBlockSize)) != 0
}

// Ref returns a pointer to the component at index, or nil if the slot is empty.
func (cs *genericComponentStorage[T]) Ref(index int) *T {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Get returns a pointer to the component at index as any, or nil if the slot is empty.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if ref := cs.Ref(index); ref != nil {
		return ref
	}
	return nil
}

func (cs *genericComponentStorage[T]) ptrAt(index int) unsafe.Pointer {
	return unsafe.Pointer(cs.Ref(index))
}

// Set occupies the slot at index with item. The slot must exist.
func (cs *genericComponentStorage[T]) Set(index int, item T) {
	if index < 0 || index >= cs.length {
		panic("ecs: component slot out of range")
	}
	blockIdx := index / genericBlockSize
	mask := uint64(1) << (index % genericBlockSize)
	if cs.filled[blockIdx]&mask == 0 {
		cs.filled[blockIdx] |= mask
		cs.occupied++
	}
	cs.blocks[blockIdx][index%genericBlockSize] = item
}

// SetAny occupies the slot at index with item, which may be a T or a *T.
// Returns false if item has a different type.
func (cs *genericComponentStorage[T]) SetAny(index int, item any) bool {
	switch v := item.(type) {
	case T:
		cs.Set(index, v)
	case *T:
		if v == nil {
			return false
		}
		cs.Set(index, *v)
	default:
		return false
	}
	return true
}

// Clear empties the slot at index and zeroes its value. Returns false if it was already empty.
func (cs *genericComponentStorage[T]) Clear(index int) bool {
	if !cs.Has(index) {
		return false
	}
	blockIdx := index / genericBlockSize
	cs.filled[blockIdx] &^= uint64(1) << (index % genericBlockSize)
	var zero T
	cs.blocks[blockIdx][index%genericBlockSize] = zero
	cs.occupied--
	return true
}

// Iter yields the indices of occupied slots in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for blockIdx, word := range cs.filled {
			for word != 0 {
				slot := bits.TrailingZeros64(word)
				word &^= uint64(1) << slot
				index := blockIdx*genericBlockSize + slot
				if index >= cs.length {
					return
				}
				if !yield(index) {
					return
				}
			}
		}
	}
}

func (cs *genericComponentStorage[T]) borrows() *borrowState {
	return &cs.borrow
}
