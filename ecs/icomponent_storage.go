package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iComponentStorage is a type-erased view of one component type's sparse slot array.
// Slot i belongs to entity i and is either occupied or empty.
type iComponentStorage interface {
	Type() reflect.Type
	Len() int
	Occupied() int
	PushSlot()
	Grow(n int)
	Has(index int) bool
	Get(index int) any
	SetAny(index int, item any) bool
	Clear(index int) bool
	Iter() iter.Seq[int]

	ptrAt(index int) unsafe.Pointer
	borrows() *borrowState
}
