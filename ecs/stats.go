package ecs

import (
	"reflect"

	"github.com/google/uuid"
)

// WorldStats is a snapshot of what a World currently holds.
type WorldStats struct {
	WorldID       uuid.UUID
	EntityCount   int
	Components    []ComponentStats
	ResourceCount int
	ResourceTypes []reflect.Type
}

// ComponentStats describes one component storage.
type ComponentStats struct {
	Type     reflect.Type
	Len      int
	Occupied int
}

// CollectStats gathers entity, storage and resource counts. Storages are listed in
// creation order.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		WorldID:       w.id,
		EntityCount:   w.numEntities,
		ResourceTypes: w.ResourceTypes(),
	}
	stats.ResourceCount = len(stats.ResourceTypes)

	for _, storage := range w.storageOrder {
		stats.Components = append(stats.Components, ComponentStats{
			Type:     storage.Type(),
			Len:      storage.Len(),
			Occupied: storage.Occupied(),
		})
	}
	return stats
}
