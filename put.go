/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import (
	"context"

	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/resolvers"
)

// Put starts a Put operation builder for type T. Put inserts or updates
// objects; the decision between the two belongs to the PutResolver.
func Put[T any](s *Store) *PutBuilder[T] {
	return &PutBuilder[T]{store: s}
}

// PutBuilder is the incomplete phase of a Put: it only accepts the
// operation's subject. Prepare is reachable only from the complete phase.
type PutBuilder[T any] struct {
	store *Store
}

// Object selects a single object as the subject.
func (b *PutBuilder[T]) Object(object T) *PutObjectBuilder[T] {
	return &PutObjectBuilder[T]{store: b.store, object: object}
}

// Objects selects a homogeneous collection of objects as the subject.
func (b *PutBuilder[T]) Objects(objects []T) *PutCollectionBuilder[T] {
	return &PutCollectionBuilder[T]{store: b.store, objects: objects}
}

// PutObjectBuilder is the complete phase of a single-object Put.
type PutObjectBuilder[T any] struct {
	store    *Store
	object   T
	resolver resolvers.PutResolver[T]
}

// WithResolver overrides the resolver looked up in the registry.
func (b *PutObjectBuilder[T]) WithResolver(r resolvers.PutResolver[T]) *PutObjectBuilder[T] {
	b.resolver = r
	return b
}

// Prepare resolves the put resolver and returns the immutable operation.
// Missing a resolver, both explicit and registered, is a configuration
// error.
func (b *PutObjectBuilder[T]) Prepare() (*PreparedPutObject[T], error) {
	r, err := resolvePut(b.store, b.resolver)
	if err != nil {
		return nil, err
	}
	return &PreparedPutObject[T]{store: b.store, object: b.object, resolver: r}, nil
}

// PreparedPutObject is an immutable, reusable Put of one object. Each
// execution is independent and performs the full operation again.
type PreparedPutObject[T any] struct {
	store    *Store
	object   T
	resolver resolvers.PutResolver[T]
}

// ExecuteBlocking performs the put on the calling goroutine. Never call it
// from a latency-sensitive event loop; the backend call blocks on storage
// I/O. On a successful mutation the affected set is published to the bus
// before returning.
func (p *PreparedPutObject[T]) ExecuteBlocking(ctx context.Context) (resolvers.PutResult, error) {
	res, err := p.resolver.PerformPut(ctx, p.store.backend, p.object)
	if err != nil {
		return resolvers.PutResult{}, err
	}
	if res.Mutated() {
		if len(res.AffectedCollections()) == 0 {
			return resolvers.PutResult{}, errors.NewResolverContractError("put", "mutation reported with empty affected set")
		}
		if err := p.store.publishAffected("put", res.AffectedCollections()); err != nil {
			return resolvers.PutResult{}, err
		}
	}
	return res, nil
}

// ExecuteAsync performs the put on a background goroutine and delivers the
// single result. The returned channel is cold work: each call re-executes
// the full operation.
func (p *PreparedPutObject[T]) ExecuteAsync(ctx context.Context) <-chan AsyncResult[resolvers.PutResult] {
	return executeAsync(ctx, p.ExecuteBlocking)
}

// PutCollectionBuilder is the complete phase of a collection Put.
type PutCollectionBuilder[T any] struct {
	store    *Store
	objects  []T
	resolver resolvers.PutResolver[T]
	atomic   bool
}

// WithResolver overrides the resolver looked up in the registry.
func (b *PutCollectionBuilder[T]) WithResolver(r resolvers.PutResolver[T]) *PutCollectionBuilder[T] {
	b.resolver = r
	return b
}

// Atomic makes the whole collection one unit of work: every item runs in a
// single backend transaction and any item's failure discards the effects
// of all prior items.
func (b *PutCollectionBuilder[T]) Atomic(atomic bool) *PutCollectionBuilder[T] {
	b.atomic = atomic
	return b
}

// Prepare resolves the put resolver and returns the immutable operation.
func (b *PutCollectionBuilder[T]) Prepare() (*PreparedPutCollection[T], error) {
	r, err := resolvePut(b.store, b.resolver)
	if err != nil {
		return nil, err
	}
	objects := make([]T, len(b.objects))
	copy(objects, b.objects)
	return &PreparedPutCollection[T]{
		store:    b.store,
		objects:  objects,
		resolver: r,
		atomic:   b.atomic,
	}, nil
}

// PreparedPutCollection is an immutable, reusable Put of a collection.
type PreparedPutCollection[T any] struct {
	store    *Store
	objects  []T
	resolver resolvers.PutResolver[T]
	atomic   bool
}

// ExecuteBlocking performs the puts on the calling goroutine.
//
// In atomic mode all items run inside one transaction; on any failure the
// transaction is rolled back, nothing is published, and the error is
// returned. In non-atomic mode items execute independently; if an item
// fails, the changes accumulated from already-committed items are still
// published before the error is returned, since those mutations happened.
func (p *PreparedPutCollection[T]) ExecuteBlocking(ctx context.Context) (resolvers.PutResults, error) {
	if p.atomic {
		return p.executeAtomic(ctx)
	}
	return p.executeIndependent(ctx)
}

// ExecuteAsync performs the puts on a background goroutine and delivers
// the single aggregate result. Each call re-executes the full operation.
func (p *PreparedPutCollection[T]) ExecuteAsync(ctx context.Context) <-chan AsyncResult[resolvers.PutResults] {
	return executeAsync(ctx, p.ExecuteBlocking)
}

func (p *PreparedPutCollection[T]) executeAtomic(ctx context.Context) (resolvers.PutResults, error) {
	tx, err := p.store.backend.Begin(ctx)
	if err != nil {
		return resolvers.PutResults{}, err
	}

	results := make([]resolvers.PutResult, 0, len(p.objects))
	for _, object := range p.objects {
		res, err := p.resolver.PerformPut(ctx, tx, object)
		if err != nil {
			_ = tx.Rollback()
			return resolvers.PutResults{}, err
		}
		if res.Mutated() && len(res.AffectedCollections()) == 0 {
			_ = tx.Rollback()
			return resolvers.PutResults{}, errors.NewResolverContractError("put", "mutation reported with empty affected set")
		}
		results = append(results, res)
	}

	if err := tx.Commit(); err != nil {
		return resolvers.PutResults{}, err
	}

	aggregate := resolvers.NewPutResults(results)
	if affected := mutatedCollections(results); len(affected) > 0 {
		if err := p.store.publishAffected("put", affected); err != nil {
			return resolvers.PutResults{}, err
		}
	}
	return aggregate, nil
}

func (p *PreparedPutCollection[T]) executeIndependent(ctx context.Context) (resolvers.PutResults, error) {
	results := make([]resolvers.PutResult, 0, len(p.objects))
	for _, object := range p.objects {
		res, err := p.resolver.PerformPut(ctx, p.store.backend, object)
		if err != nil {
			// Prior items are already committed: their changes must reach
			// the bus even though the batch failed.
			if affected := mutatedCollections(results); len(affected) > 0 {
				_ = p.store.publishAffected("put", affected)
			}
			return resolvers.PutResults{}, err
		}
		if res.Mutated() && len(res.AffectedCollections()) == 0 {
			if affected := mutatedCollections(results); len(affected) > 0 {
				_ = p.store.publishAffected("put", affected)
			}
			return resolvers.PutResults{}, errors.NewResolverContractError("put", "mutation reported with empty affected set")
		}
		results = append(results, res)
	}

	aggregate := resolvers.NewPutResults(results)
	if affected := mutatedCollections(results); len(affected) > 0 {
		if err := p.store.publishAffected("put", affected); err != nil {
			return resolvers.PutResults{}, err
		}
	}
	return aggregate, nil
}

// mutatedCollections returns the union of affected collections of the
// results that actually mutated the store, preserving first-seen order.
func mutatedCollections(results []resolvers.PutResult) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, res := range results {
		if !res.Mutated() {
			continue
		}
		for _, c := range res.AffectedCollections() {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
