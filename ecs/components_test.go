package ecs_test

import (
	"testing"

	"github.com/plus3/carnot/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnPositions(w *ecs.World, xs ...float32) {
	for _, x := range xs {
		e := w.NewEntity()
		ecs.AddComponent(w, e, Position{X: x})
	}
}

func requireConflict(t *testing.T, fn func()) *ecs.BorrowConflictError {
	t.Helper()
	var conflict *ecs.BorrowConflictError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a borrow conflict")
			var ok bool
			conflict, ok = r.(*ecs.BorrowConflictError)
			require.True(t, ok, "unexpected panic value %v", r)
		}()
		fn()
	}()
	return conflict
}

func TestBorrowExclusivity(t *testing.T) {
	t.Run("exclusive while shared", func(t *testing.T) {
		w := ecs.NewWorld()
		spawnPositions(w, 1)

		ref, ok := ecs.BorrowComponents[Position](w)
		require.True(t, ok)

		conflict := requireConflict(t, func() { ecs.BorrowComponentsMut[Position](w) })
		assert.Equal(t, ecs.AccessExclusive, conflict.Requested)
		assert.Equal(t, ecs.AccessShared, conflict.Held)
		assert.Equal(t, 1, conflict.Holders)
		assert.Equal(t, "component", conflict.Kind)
		assert.Contains(t, conflict.Error(), "Position")

		ref.Release()
		mut, ok := ecs.BorrowComponentsMut[Position](w)
		require.True(t, ok)
		mut.Release()
	})

	t.Run("exclusive while exclusive", func(t *testing.T) {
		w := ecs.NewWorld()
		spawnPositions(w, 1)

		mut, _ := ecs.BorrowComponentsMut[Position](w)
		defer mut.Release()

		conflict := requireConflict(t, func() { ecs.BorrowComponentsMut[Position](w) })
		assert.Equal(t, ecs.AccessExclusive, conflict.Held)
		requireConflict(t, func() { ecs.BorrowComponents[Position](w) })
	})

	t.Run("shared borrows coexist", func(t *testing.T) {
		w := ecs.NewWorld()
		spawnPositions(w, 1)

		a, _ := ecs.BorrowComponents[Position](w)
		b, _ := ecs.BorrowComponents[Position](w)
		conflict := requireConflict(t, func() { ecs.BorrowComponentsMut[Position](w) })
		assert.Equal(t, 2, conflict.Holders)

		a.Release()
		a.Release()
		requireConflict(t, func() { ecs.BorrowComponentsMut[Position](w) })
		b.Release()

		mut, _ := ecs.BorrowComponentsMut[Position](w)
		mut.Release()
	})

	t.Run("other types are independent", func(t *testing.T) {
		w := ecs.NewWorld()
		e := w.NewEntity()
		ecs.AddComponent(w, e, Position{})
		ecs.AddComponent(w, e, Velocity{})

		p, _ := ecs.BorrowComponentsMut[Position](w)
		defer p.Release()
		v, ok := ecs.BorrowComponentsMut[Velocity](w)
		require.True(t, ok)
		v.Release()
	})
}

func TestBorrowComponents(t *testing.T) {
	w := ecs.NewWorld()
	spawnPositions(w, 1, 2)
	w.NewEntity()
	spawnPositions(w, 4)

	_, ok := ecs.BorrowComponents[Velocity](w)
	assert.False(t, ok)

	ref, ok := ecs.BorrowComponents[Position](w)
	require.True(t, ok)
	assert.Equal(t, 4, ref.Len())

	var got []float32
	var ids []ecs.EntityId
	for e, pos := range ref.All() {
		ids = append(ids, e)
		got = append(got, pos.X)
	}
	assert.Equal(t, []ecs.EntityId{0, 1, 3}, ids)
	assert.Equal(t, []float32{1, 2, 4}, got)

	_, ok = ref.Get(2)
	assert.False(t, ok)
	_, ok = ref.Get(100)
	assert.False(t, ok)
	ref.Release()

	mut, _ := ecs.BorrowComponentsMut[Position](w)
	mut.Set(2, Position{X: 3})
	pos, ok := mut.Get(0)
	require.True(t, ok)
	pos.X = 10
	assert.True(t, mut.Clear(1))
	assert.False(t, mut.Clear(1))
	mut.Release()

	assert.Equal(t, float32(10), ecs.ReadComponent[Position](w, 0).X)
	assert.Nil(t, ecs.ReadComponent[Position](w, 1))
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](w, 2).X)
}
