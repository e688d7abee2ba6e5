package ecs

import (
	"errors"
	"reflect"
)

// Commands buffers structural changes requested while systems hold borrows. The
// Scheduler flushes the buffer after every stage, once all borrows are released.
type Commands struct {
	spawns    []spawnCommand
	adds      []addComponentCommand
	removes   []removeComponentCommand
	resources []any
	defers    []func(*World)
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function to run with exclusive World access.
func (c *Commands) Defer(fn func(w *World)) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// InsertResource queues a resource insertion. The resource replaces any existing
// resource of the same type.
func (c *Commands) InsertResource(resource any) {
	c.resources = append(c.resources, resource)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.adds) + len(c.removes) + len(c.resources) + len(c.defers)
}

// Flush applies all queued operations to world in the order removes, adds, spawns,
// resources, defers, then resets the buffer. Operations that fail are skipped and
// reported together in the returned error. The buffer is reset even when an
// operation panics.
func (c *Commands) Flush(world *World) error {
	defer c.Reset()
	var errs []error

	for _, cmd := range c.removes {
		world.RemoveComponentType(cmd.entity, cmd.compType)
	}

	for _, cmd := range c.adds {
		if err := world.AddComponentValue(cmd.entity, cmd.component); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.spawns {
		if _, err := world.Spawn(cmd.components...); err != nil {
			errs = append(errs, err)
		}
	}

	for _, resource := range c.resources {
		world.AddResourceValue(resource)
	}

	for _, fn := range c.defers {
		fn(world)
	}

	return errors.Join(errs...)
}

// Reset drops every queued operation.
func (c *Commands) Reset() {
	clear(c.spawns)
	clear(c.adds)
	clear(c.resources)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.resources = c.resources[:0]
	c.defers = c.defers[:0]
}
