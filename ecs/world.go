package ecs

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
)

// World is the aggregation root of the ECS. It owns the entity counter, one sparse
// storage per component type and the resource store. Systems and queries only
// borrow from it for the duration of a call.
//
// A World is not safe for concurrent use.
type World struct {
	id          uuid.UUID
	numEntities int
	registry    *ComponentRegistry

	storages     *intmap.Map[uintptr, iComponentStorage]
	storageOrder []iComponentStorage

	resources     *intmap.Map[uintptr, *resourceCell]
	resourceOrder []reflect.Type
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithRegistry makes the world use a shared component registry.
func WithRegistry(registry *ComponentRegistry) WorldOption {
	return func(w *World) {
		w.registry = registry
	}
}

// WithID overrides the randomly generated world id.
func WithID(id uuid.UUID) WorldOption {
	return func(w *World) {
		w.id = id
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		id:        uuid.New(),
		registry:  NewComponentRegistry(),
		storages:  intmap.New[uintptr, iComponentStorage](32),
		resources: intmap.New[uintptr, *resourceCell](16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID returns the unique id of this world instance.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Registry returns the component registry used by type-erased insertion.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// NumEntities returns the number of entities created so far.
func (w *World) NumEntities() int {
	return w.numEntities
}

// Contains reports whether the entity was allocated by this world.
func (w *World) Contains(entity EntityId) bool {
	return entity.Index() < w.numEntities
}

// NewEntity allocates the next entity id and widens every existing storage by one
// empty slot. Panics if any storage is borrowed.
func (w *World) NewEntity() EntityId {
	for _, storage := range w.storageOrder {
		storage.borrows().guardMutation("component", storage.Type())
	}
	entity := EntityId(w.numEntities)
	w.numEntities++
	for _, storage := range w.storageOrder {
		storage.PushSlot()
	}
	return entity
}

// Spawn creates a new entity holding the given components. Each component may be a
// value or a pointer to a value; its type must already have a storage or be
// registered. On error no entity is created.
func (w *World) Spawn(components ...any) (EntityId, error) {
	for _, component := range components {
		if err := w.checkStorable(component); err != nil {
			return 0, err
		}
	}

	entity := w.NewEntity()
	for _, component := range components {
		storage, err := w.erasedStorage(component)
		if err != nil {
			panic(err)
		}
		if !storage.SetAny(entity.Index(), component) {
			panic(fmt.Sprintf("ecs: storage for %s rejected value of type %T", storage.Type(), component))
		}
	}
	return entity, nil
}

// AddComponentValue is the type-erased form of AddComponent.
func (w *World) AddComponentValue(entity EntityId, component any) error {
	if !w.Contains(entity) {
		return fmt.Errorf("%w: %d", ErrNoSuchEntity, entity)
	}
	storage, err := w.erasedStorage(component)
	if err != nil {
		return err
	}
	storage.borrows().guardMutation("component", storage.Type())
	storage.Grow(w.numEntities)
	if !storage.SetAny(entity.Index(), component) {
		panic(fmt.Sprintf("ecs: storage for %s rejected value of type %T", storage.Type(), component))
	}
	return nil
}

// RemoveComponentType empties the entity's slot for the given component type.
// Returns false if the entity had no such component.
func (w *World) RemoveComponentType(entity EntityId, componentType reflect.Type) bool {
	storage := w.storage(componentType)
	if storage == nil || !storage.Has(entity.Index()) {
		return false
	}
	storage.borrows().guardMutation("component", componentType)
	return storage.Clear(entity.Index())
}

// GetComponent returns a pointer to the entity's component of the given type, or
// nil if it has none. The pointer is only valid for reading outside of systems
// that hold an exclusive borrow of the type.
func (w *World) GetComponent(entity EntityId, componentType reflect.Type) any {
	storage := w.storage(componentType)
	if storage == nil {
		return nil
	}
	return storage.Get(entity.Index())
}

// HasComponent checks if an entity has a specific component type.
func (w *World) HasComponent(entity EntityId, componentType reflect.Type) bool {
	storage := w.storage(componentType)
	return storage != nil && storage.Has(entity.Index())
}

// ComponentTypes returns the component types that have a storage, in creation order.
func (w *World) ComponentTypes() []reflect.Type {
	types := make([]reflect.Type, len(w.storageOrder))
	for i, storage := range w.storageOrder {
		types[i] = storage.Type()
	}
	return types
}

func (w *World) storage(t reflect.Type) iComponentStorage {
	storage, _ := w.storages.Get(typeKey(t))
	return storage
}

// addStorage installs a storage for its type, back-filled to the current entity count.
func (w *World) addStorage(storage iComponentStorage) {
	storage.Grow(w.numEntities)
	w.storages.Put(typeKey(storage.Type()), storage)
	w.storageOrder = append(w.storageOrder, storage)
}

func erasedType(component any) (reflect.Type, error) {
	if component == nil {
		return nil, fmt.Errorf("ecs: nil component")
	}
	componentType := reflect.TypeOf(component)
	if componentType.Kind() == reflect.Pointer {
		componentType = componentType.Elem()
	}
	return componentType, nil
}

// checkStorable reports whether erasedStorage would succeed without creating anything.
func (w *World) checkStorable(component any) error {
	componentType, err := erasedType(component)
	if err != nil {
		return err
	}
	if w.storage(componentType) == nil && !w.registry.Registered(componentType) {
		return fmt.Errorf("%w: %s", ErrUnregisteredComponent, componentType)
	}
	return nil
}

// erasedStorage finds or creates the storage for the dynamic type of component.
func (w *World) erasedStorage(component any) (iComponentStorage, error) {
	componentType, err := erasedType(component)
	if err != nil {
		return nil, err
	}
	if storage := w.storage(componentType); storage != nil {
		return storage, nil
	}
	factory := w.registry.getFactory(componentType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredComponent, componentType)
	}
	storage := factory()
	w.addStorage(storage)
	return storage, nil
}

// typedStorage finds the storage for T. A stored storage of another concrete type
// means the registry is inconsistent, which is an internal bug.
func typedStorage[T any](w *World) *genericComponentStorage[T] {
	storage := w.storage(reflect.TypeFor[T]())
	if storage == nil {
		return nil
	}
	typed, ok := storage.(*genericComponentStorage[T])
	if !ok {
		panic(fmt.Sprintf("ecs: storage for %s has unexpected concrete type %T", reflect.TypeFor[T](), storage))
	}
	return typed
}

func (w *World) mustContain(entity EntityId) {
	if !w.Contains(entity) {
		panic(fmt.Sprintf("ecs: entity %d does not exist (world has %d entities)", entity, w.numEntities))
	}
}
