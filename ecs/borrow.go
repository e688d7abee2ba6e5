package ecs

import "reflect"

// borrowState tracks the live borrows of one storage or resource.
// It is either free, shared by n readers, or held by a single writer.
type borrowState struct {
	shared    int
	exclusive bool
}

func (b *borrowState) acquire(access Access, kind string, t reflect.Type) {
	if access == AccessExclusive {
		b.acquireExclusive(kind, t)
		return
	}
	b.acquireShared(kind, t)
}

func (b *borrowState) release(access Access) {
	if access == AccessExclusive {
		b.releaseExclusive()
		return
	}
	b.releaseShared()
}

func (b *borrowState) acquireShared(kind string, t reflect.Type) {
	if b.exclusive {
		panic(&BorrowConflictError{
			Kind:      kind,
			Type:      t,
			Requested: AccessShared,
			Held:      AccessExclusive,
			Holders:   1,
		})
	}
	b.shared++
}

func (b *borrowState) acquireExclusive(kind string, t reflect.Type) {
	if b.exclusive {
		panic(&BorrowConflictError{
			Kind:      kind,
			Type:      t,
			Requested: AccessExclusive,
			Held:      AccessExclusive,
			Holders:   1,
		})
	}
	if b.shared > 0 {
		panic(&BorrowConflictError{
			Kind:      kind,
			Type:      t,
			Requested: AccessExclusive,
			Held:      AccessShared,
			Holders:   b.shared,
		})
	}
	b.exclusive = true
}

func (b *borrowState) releaseShared() {
	if b.shared == 0 {
		panic("ecs: released a shared borrow that was not held")
	}
	b.shared--
}

func (b *borrowState) releaseExclusive() {
	if !b.exclusive {
		panic("ecs: released an exclusive borrow that was not held")
	}
	b.exclusive = false
}

// free reports whether no borrow is live.
func (b *borrowState) free() bool {
	return !b.exclusive && b.shared == 0
}

// guardMutation panics if the guarded data cannot be structurally modified right now.
// Structural changes need the same rights as an exclusive borrow, but only for the
// duration of the call.
func (b *borrowState) guardMutation(kind string, t reflect.Type) {
	b.acquireExclusive(kind, t)
	b.exclusive = false
}
