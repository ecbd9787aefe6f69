/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"

	"github.com/suparena/storekit/resolvers"
)

// Registry maps domain types to their resolver triples. Lookup is by exact
// runtime type only: registering a mapping for an interface or embedded
// type never matches a concrete type. Callers needing polymorphic mapping
// must register each concrete type.
type Registry struct {
	mu       sync.RWMutex
	mappings map[reflect.Type]any
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		mappings: make(map[reflect.Type]any),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register associates type T with the given mapping, overwriting any
// previous mapping for that exact type.
func Register[T any](r *Registry, m resolvers.TypeMapping[T]) {
	t := typeOf[T]()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappings[t] = m
}

// Lookup retrieves the mapping for type T. Absence is not an error at this
// level; it is surfaced only when an operation requires a mapping and none
// was supplied explicitly.
func Lookup[T any](r *Registry) (resolvers.TypeMapping[T], bool) {
	t := typeOf[T]()

	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mappings[t]
	if !ok {
		return resolvers.TypeMapping[T]{}, false
	}
	return m.(resolvers.TypeMapping[T]), true
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappings)
}

// TypeNames returns the names of all registered types, primarily for
// diagnostics.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.mappings))
	for t := range r.mappings {
		names = append(names, t.String())
	}
	return names
}
