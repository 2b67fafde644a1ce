package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// ClassMap translates human-readable class names into label ids. It is
// immutable once built.
type ClassMap struct {
	ids map[string]int
}

// NewClassMap copies table into a ClassMap. Names must be non-empty and ids
// non-negative.
func NewClassMap(table map[string]int) (ClassMap, error) {
	if len(table) == 0 {
		return ClassMap{}, fmt.Errorf("class map: no classes defined")
	}
	ids := make(map[string]int, len(table))
	for name, id := range table {
		if strings.TrimSpace(name) == "" {
			return ClassMap{}, fmt.Errorf("class map: empty class name")
		}
		if id < 0 {
			return ClassMap{}, fmt.Errorf("class map: class %q has negative id %d", name, id)
		}
		ids[name] = id
	}
	return ClassMap{ids: ids}, nil
}

// Lookup returns the id for name. Matching is exact.
func (m ClassMap) Lookup(name string) (int, bool) {
	id, ok := m.ids[name]
	return id, ok
}

// Len reports the number of class names.
func (m ClassMap) Len() int {
	return len(m.ids)
}

// Names returns the class names ordered by id, then name.
func (m ClassMap) Names() []string {
	names := make([]string, 0, len(m.ids))
	for name := range m.ids {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := m.ids[names[i]], m.ids[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}
