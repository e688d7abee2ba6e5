package ecs

import (
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey returns an integer key that is unique per reflect.Type for the life of the process.
// The data word of a reflect.Type interface is the runtime type descriptor.
func typeKey(t reflect.Type) uintptr {
	return uintptr((*iface)(unsafe.Pointer(&t)).data)
}

// dataPointer extracts the pointer held by an interface value that wraps a pointer.
func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
