package ecs

import (
	"fmt"
	"reflect"
)

// resourceCell holds one resource value behind a pointer so that borrows can hand
// out *T without copying.
type resourceCell struct {
	typ    reflect.Type
	value  any
	borrow borrowState
}

// AddResource inserts the singleton of type T, replacing any previous value.
// Panics if a borrow of T is live.
func AddResource[T any](w *World, resource T) {
	ptr := new(T)
	*ptr = resource
	w.putResource(reflect.TypeFor[T](), ptr)
}

// AddResourceValue is the type-erased form of AddResource. The resource is keyed by
// its dynamic type; a pointer is keyed by the type it points to.
func (w *World) AddResourceValue(resource any) {
	if resource == nil {
		panic("ecs: cannot add nil resource")
	}
	value := reflect.ValueOf(resource)
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			panic("ecs: cannot add nil resource")
		}
		value = value.Elem()
	}
	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	w.putResource(value.Type(), ptr.Interface())
}

func (w *World) putResource(t reflect.Type, ptr any) {
	key := typeKey(t)
	if cell, ok := w.resources.Get(key); ok {
		cell.borrow.guardMutation("resource", t)
		cell.value = ptr
		return
	}
	w.resources.Put(key, &resourceCell{typ: t, value: ptr})
	w.resourceOrder = append(w.resourceOrder, t)
}

// HasResource reports whether a resource of type T is present.
func HasResource[T any](w *World) bool {
	return w.resources.Has(typeKey(reflect.TypeFor[T]()))
}

// RemoveResource removes and returns the resource of type T.
// Panics if a borrow of T is live.
func RemoveResource[T any](w *World) (T, bool) {
	t := reflect.TypeFor[T]()
	cell, ok := w.resources.Get(typeKey(t))
	if !ok {
		var zero T
		return zero, false
	}
	cell.borrow.guardMutation("resource", t)
	value := *cellValue[T](cell)
	w.resources.Del(typeKey(t))
	for i, typ := range w.resourceOrder {
		if typ == t {
			w.resourceOrder = append(w.resourceOrder[:i], w.resourceOrder[i+1:]...)
			break
		}
	}
	return value, true
}

// GetResourceOrInsert returns an exclusive borrow of T, inserting resource first if absent.
func GetResourceOrInsert[T any](w *World, resource T) *ResMut[T] {
	if !HasResource[T](w) {
		AddResource(w, resource)
	}
	res, _ := GetResourceMut[T](w)
	return res
}

// ResourceTypes returns the types of all resources in insertion order.
func (w *World) ResourceTypes() []reflect.Type {
	return append([]reflect.Type(nil), w.resourceOrder...)
}

func (w *World) resourceCell(t reflect.Type) *resourceCell {
	cell, _ := w.resources.Get(typeKey(t))
	return cell
}

func cellValue[T any](cell *resourceCell) *T {
	value, ok := cell.value.(*T)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %s holds unexpected value of type %T", cell.typ, cell.value))
	}
	return value
}

// Res is a shared borrow of the resource of type T. The value must only be read.
//
// As a system parameter it is resolved before each call and released after; a
// missing resource is fatal for the system.
type Res[T any] struct {
	cell  *resourceCell
	value *T
}

// GetResource borrows the resource of type T for reading. The second result is
// false if it was never inserted. Panics if T is borrowed exclusively.
func GetResource[T any](w *World) (*Res[T], bool) {
	r := &Res[T]{}
	if !r.borrow(w) {
		return nil, false
	}
	return r, true
}

func (r *Res[T]) borrow(w *World) bool {
	cell := w.resourceCell(reflect.TypeFor[T]())
	if cell == nil {
		return false
	}
	value := cellValue[T](cell)
	cell.borrow.acquireShared("resource", cell.typ)
	r.cell = cell
	r.value = value
	return true
}

// Get returns the borrowed value.
func (r *Res[T]) Get() *T {
	if r.value == nil {
		panic(fmt.Sprintf("ecs: Res[%s] used outside of its borrow", reflect.TypeFor[T]()))
	}
	return r.value
}

// Release ends the borrow. Calling it more than once has no effect.
func (r *Res[T]) Release() {
	if r.cell == nil {
		return
	}
	r.cell.borrow.releaseShared()
	r.cell = nil
	r.value = nil
}

func (r *Res[T]) acquire(ctx *paramContext) {
	if !r.borrow(ctx.world) {
		panic(&MissingResourceError{Type: reflect.TypeFor[T]()})
	}
}

func (r *Res[T]) release() {
	r.Release()
}

// ResMut is an exclusive borrow of the resource of type T.
type ResMut[T any] struct {
	cell  *resourceCell
	value *T
}

// GetResourceMut borrows the resource of type T exclusively. The second result is
// false if it was never inserted. Panics if T is borrowed at all.
func GetResourceMut[T any](w *World) (*ResMut[T], bool) {
	r := &ResMut[T]{}
	if !r.borrow(w) {
		return nil, false
	}
	return r, true
}

func (r *ResMut[T]) borrow(w *World) bool {
	cell := w.resourceCell(reflect.TypeFor[T]())
	if cell == nil {
		return false
	}
	value := cellValue[T](cell)
	cell.borrow.acquireExclusive("resource", cell.typ)
	r.cell = cell
	r.value = value
	return true
}

// Get returns the borrowed value.
func (r *ResMut[T]) Get() *T {
	if r.value == nil {
		panic(fmt.Sprintf("ecs: ResMut[%s] used outside of its borrow", reflect.TypeFor[T]()))
	}
	return r.value
}

// Release ends the borrow. Calling it more than once has no effect.
func (r *ResMut[T]) Release() {
	if r.cell == nil {
		return
	}
	r.cell.borrow.releaseExclusive()
	r.cell = nil
	r.value = nil
}

func (r *ResMut[T]) acquire(ctx *paramContext) {
	if !r.borrow(ctx.world) {
		panic(&MissingResourceError{Type: reflect.TypeFor[T]()})
	}
}

func (r *ResMut[T]) release() {
	r.Release()
}
