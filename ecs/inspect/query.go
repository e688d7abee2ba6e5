package inspect

import (
	"reflect"

	"github.com/plus3/carnot/ecs"
)

// Match returns the entities that have every one of the given component types,
// the same rows a query over those types would visit. It reads through the
// type-erased World API and takes no borrows.
func Match(w *ecs.World, types ...reflect.Type) []ecs.EntityId {
	if len(types) == 0 {
		return nil
	}
	var matched []ecs.EntityId
	for i := 0; i < w.NumEntities(); i++ {
		entity := ecs.EntityId(i)
		all := true
		for _, t := range types {
			if !w.HasComponent(entity, t) {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, entity)
		}
	}
	return matched
}

// MatchNames is Match with component types given by name. Names that have no
// storage in w are returned as missing, and the match is then empty.
func MatchNames(w *ecs.World, names ...string) (matched []ecs.EntityId, missing []string) {
	types := make([]reflect.Type, 0, len(names))
	for _, name := range names {
		t, ok := TypeByName(w, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		types = append(types, t)
	}
	if len(missing) > 0 {
		return nil, missing
	}
	return Match(w, types...), nil
}
