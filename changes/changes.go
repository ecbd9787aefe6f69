/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package changes

import (
	"fmt"
	"sort"
	"strings"
)

// Changes is an immutable, non-empty set of collection identifiers affected
// by a mutation. Two Changes combine by set union.
type Changes struct {
	collections map[string]struct{}
}

// New creates a Changes set from the given collection identifiers.
// Empty identifiers are rejected, and the resulting set must be non-empty.
func New(collections ...string) (Changes, error) {
	set := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		if c == "" {
			return Changes{}, fmt.Errorf("changes: collection identifier must be non-empty")
		}
		set[c] = struct{}{}
	}
	if len(set) == 0 {
		return Changes{}, fmt.Errorf("changes: at least one collection is required")
	}
	return Changes{collections: set}, nil
}

// MustNew is like New but panics on invalid input. Intended for static sets.
func MustNew(collections ...string) Changes {
	c, err := New(collections...)
	if err != nil {
		panic(err)
	}
	return c
}

// Union returns a new Changes containing the collections of both sets.
func (c Changes) Union(other Changes) Changes {
	merged := make(map[string]struct{}, len(c.collections)+len(other.collections))
	for k := range c.collections {
		merged[k] = struct{}{}
	}
	for k := range other.collections {
		merged[k] = struct{}{}
	}
	return Changes{collections: merged}
}

// Contains reports whether the set includes the given collection.
func (c Changes) Contains(collection string) bool {
	_, ok := c.collections[collection]
	return ok
}

// Intersects reports whether the set shares at least one collection with
// the given identifiers.
func (c Changes) Intersects(collections map[string]struct{}) bool {
	// Iterate over the smaller side.
	if len(c.collections) <= len(collections) {
		for k := range c.collections {
			if _, ok := collections[k]; ok {
				return true
			}
		}
		return false
	}
	for k := range collections {
		if _, ok := c.collections[k]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of collections in the set.
func (c Changes) Len() int {
	return len(c.collections)
}

// Slice returns the collections in sorted order.
func (c Changes) Slice() []string {
	out := make([]string, 0, len(c.collections))
	for k := range c.collections {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether two Changes contain the same collections.
func (c Changes) Equal(other Changes) bool {
	if len(c.collections) != len(other.collections) {
		return false
	}
	for k := range c.collections {
		if _, ok := other.collections[k]; !ok {
			return false
		}
	}
	return true
}

func (c Changes) String() string {
	return "changes{" + strings.Join(c.Slice(), ", ") + "}"
}
