// Package inspect renders a text view of a World for debugging: an entity
// browser, a component inspector, an ad-hoc query matcher and frame statistics.
package inspect

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/plus3/carnot/ecs"
)

// EntityInfo summarizes one entity for the browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
	ComponentCount int
}

// SortColumn selects the browser's sort key.
type SortColumn int

const (
	SortByID SortColumn = iota
	SortByComponents
	SortByCount
)

// Browser lists entities with their component types, filtered and paged.
type Browser struct {
	// Filter keeps entities whose id or component type names contain it, case-insensitively.
	Filter     string
	SortColumn SortColumn
	Descending bool
	PageSize   int
	Page       int
}

// NewBrowser creates a browser showing pageSize entities per page.
func NewBrowser(pageSize int) *Browser {
	return &Browser{PageSize: pageSize}
}

// Entities returns every entity in w that passes the filter, sorted.
func (b *Browser) Entities(w *ecs.World) []EntityInfo {
	types := w.ComponentTypes()
	entities := make([]EntityInfo, 0, w.NumEntities())

	for i := 0; i < w.NumEntities(); i++ {
		id := ecs.EntityId(i)
		info := EntityInfo{ID: id}
		for _, t := range types {
			if w.HasComponent(id, t) {
				info.ComponentTypes = append(info.ComponentTypes, t.String())
			}
		}
		info.ComponentCount = len(info.ComponentTypes)
		if b.matches(info) {
			entities = append(entities, info)
		}
	}

	b.sortEntities(entities)
	return entities
}

func (b *Browser) matches(entity EntityInfo) bool {
	if b.Filter == "" {
		return true
	}
	filterLower := strings.ToLower(b.Filter)
	idStr := fmt.Sprintf("%d", entity.ID)
	componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))
	return strings.Contains(idStr, filterLower) || strings.Contains(componentsStr, filterLower)
}

func (b *Browser) sortEntities(entities []EntityInfo) {
	less := func(a, c EntityInfo) bool {
		switch b.SortColumn {
		case SortByComponents:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(c.ComponentTypes, ",")
		case SortByCount:
			return a.ComponentCount < c.ComponentCount
		default:
			return a.ID < c.ID
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		if b.Descending {
			return less(entities[j], entities[i])
		}
		return less(entities[i], entities[j])
	})
}

// Pages returns the number of pages for n entities.
func (b *Browser) Pages(n int) int {
	if b.PageSize <= 0 || n == 0 {
		return 1
	}
	return (n + b.PageSize - 1) / b.PageSize
}

// Write renders the current page as a table.
func (b *Browser) Write(out io.Writer, w *ecs.World) error {
	entities := b.Entities(w)

	start, end := 0, len(entities)
	if b.PageSize > 0 {
		start = min(b.Page*b.PageSize, len(entities))
		end = min(start+b.PageSize, len(entities))
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tCOUNT\tCOMPONENTS")
	for _, entity := range entities[start:end] {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", entity.ID, entity.ComponentCount, strings.Join(entity.ComponentTypes, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if b.PageSize > 0 && len(entities) > b.PageSize {
		_, err := fmt.Fprintf(out, "Page %d / %d (%d entities)\n", b.Page+1, b.Pages(len(entities)), len(entities))
		return err
	}
	_, err := fmt.Fprintf(out, "Total: %d entities\n", len(entities))
	return err
}

// TypeByName finds a component type with a storage in w by its String() form.
func TypeByName(w *ecs.World, name string) (reflect.Type, bool) {
	for _, t := range w.ComponentTypes() {
		if t.String() == name {
			return t, true
		}
	}
	return nil, false
}
