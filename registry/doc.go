/*
Package registry manages the association between domain types and their
resolver triples.

The registry is keyed by exact reflect.Type: no supertype or interface
fallback is ever attempted. It is read-mostly and thread-safe; lookups may
run concurrently with occasional registration.

	reg := registry.New()
	registry.Register(reg, userMapping)

	if m, ok := registry.Lookup[User](reg); ok {
	    // m.PutResolver(), m.GetResolver(), m.DeleteResolver()
	}

Registration typically happens once during initialization. Registering the
same type twice overwrites the previous mapping.
*/
package registry
