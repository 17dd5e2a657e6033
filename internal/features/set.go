package features

import (
	"encoding/json"
	"sort"
)

// Set is a deduplicated collection of lowercase terms.
type Set map[string]struct{}

// NewSet builds a set from the given items, skipping empty strings.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether item is in the set.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of items.
func (s Set) Len() int { return len(s) }

// Sorted returns the items in ascending order. It never returns nil.
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Intersect returns items present in both sets.
func (s Set) Intersect(other Set) Set {
	result := make(Set)
	for item := range s {
		if other.Has(item) {
			result[item] = struct{}{}
		}
	}
	return result
}

// Difference returns items of s that are not in other.
func (s Set) Difference(other Set) Set {
	result := make(Set)
	for item := range s {
		if !other.Has(item) {
			result[item] = struct{}{}
		}
	}
	return result
}

// MarshalJSON renders the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON reads a JSON array of strings.
func (s *Set) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}
