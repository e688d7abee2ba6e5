package ecs_test

import (
	"testing"

	"github.com/plus3/carnot/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceReplace(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddResource(w, Counter(1))
	ecs.AddResource(w, Counter(2))

	assert.Len(t, w.ResourceTypes(), 1)
	res, ok := ecs.GetResource[Counter](w)
	require.True(t, ok)
	assert.Equal(t, Counter(2), *res.Get())
	res.Release()
}

func TestResourceScenario(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddResource(w, Counter(0))

	counter, ok := ecs.GetResourceMut[Counter](w)
	require.True(t, ok)
	*counter.Get()++
	assert.Equal(t, Counter(1), *counter.Get())
	counter.Release()

	ecs.AddResource(w, Counter(100))

	res, ok := ecs.GetResource[Counter](w)
	require.True(t, ok)
	assert.Equal(t, Counter(100), *res.Get())
	res.Release()
}

func TestMissingResource(t *testing.T) {
	w := ecs.NewWorld()

	res, ok := ecs.GetResource[Counter](w)
	assert.False(t, ok)
	assert.Nil(t, res)

	mut, ok := ecs.GetResourceMut[Counter](w)
	assert.False(t, ok)
	assert.Nil(t, mut)
	assert.False(t, ecs.HasResource[Counter](w))
}

func TestResourceBorrows(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddResource(w, Gravity{Y: -9.8})

	a, _ := ecs.GetResource[Gravity](w)
	b, ok := ecs.GetResource[Gravity](w)
	require.True(t, ok)
	assert.Same(t, a.Get(), b.Get())

	conflict := requireConflict(t, func() { ecs.GetResourceMut[Gravity](w) })
	assert.Equal(t, "resource", conflict.Kind)
	assert.Equal(t, 2, conflict.Holders)

	requireConflict(t, func() { ecs.AddResource(w, Gravity{}) })
	requireConflict(t, func() { ecs.RemoveResource[Gravity](w) })

	a.Release()
	b.Release()
	assert.Panics(t, func() { a.Get() })

	mut, ok := ecs.GetResourceMut[Gravity](w)
	require.True(t, ok)
	requireConflict(t, func() { ecs.GetResource[Gravity](w) })
	mut.Get().Y = -1
	mut.Release()
	mut.Release()

	res, _ := ecs.GetResource[Gravity](w)
	assert.Equal(t, float32(-1), res.Get().Y)
	res.Release()
}

func TestRemoveResource(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddResource(w, Counter(3))
	ecs.AddResource(w, Gravity{Y: 1})

	value, ok := ecs.RemoveResource[Counter](w)
	assert.True(t, ok)
	assert.Equal(t, Counter(3), value)
	assert.False(t, ecs.HasResource[Counter](w))
	assert.Len(t, w.ResourceTypes(), 1)

	_, ok = ecs.RemoveResource[Counter](w)
	assert.False(t, ok)
}

func TestAddResourceValue(t *testing.T) {
	w := ecs.NewWorld()
	w.AddResourceValue(Counter(5))
	w.AddResourceValue(&Gravity{Y: 2})

	counter, ok := ecs.GetResource[Counter](w)
	require.True(t, ok)
	assert.Equal(t, Counter(5), *counter.Get())
	counter.Release()

	gravity, ok := ecs.GetResource[Gravity](w)
	require.True(t, ok)
	assert.Equal(t, float32(2), gravity.Get().Y)
	gravity.Release()

	assert.False(t, ecs.HasResource[*Gravity](w))
	assert.Panics(t, func() { w.AddResourceValue(nil) })
}

func TestGetResourceOrInsert(t *testing.T) {
	w := ecs.NewWorld()

	log := ecs.GetResourceOrInsert(w, Log{Entries: []string{"first"}})
	log.Get().Entries = append(log.Get().Entries, "second")
	log.Release()

	log = ecs.GetResourceOrInsert(w, Log{Entries: []string{"ignored"}})
	assert.Equal(t, []string{"first", "second"}, log.Get().Entries)
	log.Release()
}
