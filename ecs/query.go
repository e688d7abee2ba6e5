package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

// Query is a borrowed join over the component storages named by the data struct D.
// Each row is one entity that has an occupied slot in every requested storage,
// delivered as a D whose fields point at that entity's components. Rows come in
// ascending entity order.
//
// A Query holds its borrows from FetchQuery (or from the scheduler, when used as
// a system parameter) until Release. Shared fields must only be read; fields
// tagged `ecs:"mut"` may be written through.
type Query[D any] struct {
	shape   *queryShape
	columns []iComponentStorage
	held    []heldBorrow
	world   *World
	empty   bool
	live    bool
}

type heldBorrow struct {
	storage iComponentStorage
	access  Access
}

// FetchQuery borrows every storage named by D and returns the query. A component
// type that no entity has ever received makes the query empty rather than failing.
// Panics with *BorrowConflictError if a requested borrow conflicts with a live one;
// in that case nothing stays borrowed.
func FetchQuery[D any](w *World) *Query[D] {
	q := &Query[D]{}
	q.fetch(w)
	return q
}

func (q *Query[D]) fetch(w *World) {
	if q.live {
		panic(fmt.Sprintf("ecs: Query[%s] fetched twice without release", reflect.TypeFor[D]()))
	}
	q.shape = shapeOf[D]()
	q.world = w
	q.empty = false
	q.columns = q.columns[:0]
	q.held = q.held[:0]

	ok := false
	defer func() {
		if !ok {
			q.releaseHeld()
		}
	}()

	for _, field := range q.shape.fields {
		storage := w.storage(field.typ)
		if storage == nil {
			q.empty = true
			q.columns = append(q.columns, nil)
			continue
		}
		storage.borrows().acquire(field.access, "component", field.typ)
		q.held = append(q.held, heldBorrow{storage: storage, access: field.access})
		q.columns = append(q.columns, storage)
	}
	q.live = true
	ok = true
}

func (q *Query[D]) releaseHeld() {
	for i := len(q.held) - 1; i >= 0; i-- {
		q.held[i].storage.borrows().release(q.held[i].access)
	}
	q.held = q.held[:0]
}

// Release ends every borrow held by the query. Calling it more than once has no effect.
func (q *Query[D]) Release() {
	if !q.live {
		return
	}
	q.live = false
	q.releaseHeld()
}

func (q *Query[D]) acquire(ctx *paramContext) {
	q.fetch(ctx.world)
}

func (q *Query[D]) release() {
	q.Release()
}

func (q *Query[D]) mustBeLive(method string) {
	if !q.live {
		panic(fmt.Sprintf("ecs: Query[%s].%s() called outside of its borrow", reflect.TypeFor[D](), method))
	}
}

func (q *Query[D]) rows() int {
	n := q.world.numEntities
	for _, column := range q.columns {
		if column.Len() < n {
			n = column.Len()
		}
	}
	return n
}

// Iter yields (entity, row) for every entity that has all requested components.
// It re-walks the storages on each call, so iterating twice without intervening
// mutation yields the same rows.
func (q *Query[D]) Iter() iter.Seq2[EntityId, D] {
	q.mustBeLive("Iter")
	return func(yield func(EntityId, D) bool) {
		if q.empty || !q.live {
			return
		}
		var result D
		resultPtr := unsafe.Pointer(&result)
		n := q.rows()
		for index := 0; index < n; index++ {
			if !q.shape.fill(resultPtr, q.columns, index) {
				continue
			}
			if !yield(EntityId(index), result) {
				return
			}
		}
	}
}

// Values yields the rows without entity ids.
func (q *Query[D]) Values() iter.Seq[D] {
	q.mustBeLive("Values")
	return func(yield func(D) bool) {
		for _, row := range q.Iter() {
			if !yield(row) {
				return
			}
		}
	}
}

// Get returns the row for entity, or false if it lacks any requested component.
func (q *Query[D]) Get(entity EntityId) (D, bool) {
	q.mustBeLive("Get")
	var result D
	if q.empty || entity.Index() >= q.rows() {
		return result, false
	}
	if !q.shape.fill(unsafe.Pointer(&result), q.columns, entity.Index()) {
		var zero D
		return zero, false
	}
	return result, true
}

// First returns the row with the lowest entity id.
func (q *Query[D]) First() (EntityId, D, bool) {
	for entity, row := range q.Iter() {
		return entity, row, true
	}
	var zero D
	return 0, zero, false
}

// Count returns the number of rows.
func (q *Query[D]) Count() int {
	count := 0
	for range q.Iter() {
		count++
	}
	return count
}

// IsEmpty reports whether the query has no rows.
func (q *Query[D]) IsEmpty() bool {
	_, _, ok := q.First()
	return !ok
}
