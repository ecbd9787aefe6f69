/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import (
	"context"

	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/queries"
	"github.com/suparena/storekit/resolvers"
)

// Delete starts a Delete operation builder for type T. For deleting by a
// plain query without a domain type, see Store.DeleteByQuery.
func Delete[T any](s *Store) *DeleteBuilder[T] {
	return &DeleteBuilder[T]{store: s}
}

// DeleteBuilder is the incomplete phase of a Delete: it only accepts the
// operation's subject.
type DeleteBuilder[T any] struct {
	store *Store
}

// Object selects a single object as the subject.
func (b *DeleteBuilder[T]) Object(object T) *DeleteObjectBuilder[T] {
	return &DeleteObjectBuilder[T]{store: b.store, object: object}
}

// Objects selects a homogeneous collection of objects as the subject.
func (b *DeleteBuilder[T]) Objects(objects []T) *DeleteCollectionBuilder[T] {
	return &DeleteCollectionBuilder[T]{store: b.store, objects: objects}
}

// DeleteObjectBuilder is the complete phase of a single-object Delete.
type DeleteObjectBuilder[T any] struct {
	store    *Store
	object   T
	resolver resolvers.DeleteResolver[T]
}

// WithResolver overrides the resolver looked up in the registry.
func (b *DeleteObjectBuilder[T]) WithResolver(r resolvers.DeleteResolver[T]) *DeleteObjectBuilder[T] {
	b.resolver = r
	return b
}

// Prepare resolves the delete resolver and returns the immutable operation.
func (b *DeleteObjectBuilder[T]) Prepare() (*PreparedDeleteObject[T], error) {
	r, err := resolveDelete(b.store, b.resolver)
	if err != nil {
		return nil, err
	}
	return &PreparedDeleteObject[T]{store: b.store, object: b.object, resolver: r}, nil
}

// PreparedDeleteObject is an immutable, reusable Delete of one object.
type PreparedDeleteObject[T any] struct {
	store    *Store
	object   T
	resolver resolvers.DeleteResolver[T]
}

// ExecuteBlocking performs the delete on the calling goroutine. When at
// least one row was removed the affected set is published to the bus;
// deleting zero rows publishes nothing.
func (p *PreparedDeleteObject[T]) ExecuteBlocking(ctx context.Context) (resolvers.DeleteResult, error) {
	res, err := p.resolver.PerformDelete(ctx, p.store.backend, p.object)
	if err != nil {
		return resolvers.DeleteResult{}, err
	}
	if res.RowsDeleted() > 0 {
		if len(res.AffectedCollections()) == 0 {
			return resolvers.DeleteResult{}, errors.NewResolverContractError("delete", "rows deleted with empty affected set")
		}
		if err := p.store.publishAffected("delete", res.AffectedCollections()); err != nil {
			return resolvers.DeleteResult{}, err
		}
	}
	return res, nil
}

// ExecuteAsync performs the delete on a background goroutine and delivers
// the single result. Each call re-executes the full operation.
func (p *PreparedDeleteObject[T]) ExecuteAsync(ctx context.Context) <-chan AsyncResult[resolvers.DeleteResult] {
	return executeAsync(ctx, p.ExecuteBlocking)
}

// DeleteCollectionBuilder is the complete phase of a collection Delete.
type DeleteCollectionBuilder[T any] struct {
	store    *Store
	objects  []T
	resolver resolvers.DeleteResolver[T]
}

// WithResolver overrides the resolver looked up in the registry.
func (b *DeleteCollectionBuilder[T]) WithResolver(r resolvers.DeleteResolver[T]) *DeleteCollectionBuilder[T] {
	b.resolver = r
	return b
}

// Prepare resolves the delete resolver and returns the immutable operation.
func (b *DeleteCollectionBuilder[T]) Prepare() (*PreparedDeleteCollection[T], error) {
	r, err := resolveDelete(b.store, b.resolver)
	if err != nil {
		return nil, err
	}
	objects := make([]T, len(b.objects))
	copy(objects, b.objects)
	return &PreparedDeleteCollection[T]{store: b.store, objects: objects, resolver: r}, nil
}

// PreparedDeleteCollection is an immutable, reusable Delete of a collection.
// Items execute independently; there is no atomic mode for deletes.
type PreparedDeleteCollection[T any] struct {
	store    *Store
	objects  []T
	resolver resolvers.DeleteResolver[T]
}

// ExecuteBlocking performs the deletes on the calling goroutine. If an item
// fails, the changes accumulated from already-deleted items are still
// published before the error is returned.
func (p *PreparedDeleteCollection[T]) ExecuteBlocking(ctx context.Context) (resolvers.DeleteResults, error) {
	results := make([]resolvers.DeleteResult, 0, len(p.objects))
	for _, object := range p.objects {
		res, err := p.resolver.PerformDelete(ctx, p.store.backend, object)
		if err != nil {
			if affected := deletedCollections(results); len(affected) > 0 {
				_ = p.store.publishAffected("delete", affected)
			}
			return resolvers.DeleteResults{}, err
		}
		if res.RowsDeleted() > 0 && len(res.AffectedCollections()) == 0 {
			if affected := deletedCollections(results); len(affected) > 0 {
				_ = p.store.publishAffected("delete", affected)
			}
			return resolvers.DeleteResults{}, errors.NewResolverContractError("delete", "rows deleted with empty affected set")
		}
		results = append(results, res)
	}

	aggregate := resolvers.NewDeleteResults(results)
	if affected := deletedCollections(results); len(affected) > 0 {
		if err := p.store.publishAffected("delete", affected); err != nil {
			return resolvers.DeleteResults{}, err
		}
	}
	return aggregate, nil
}

// ExecuteAsync performs the deletes on a background goroutine and delivers
// the single aggregate result. Each call re-executes the full operation.
func (p *PreparedDeleteCollection[T]) ExecuteAsync(ctx context.Context) <-chan AsyncResult[resolvers.DeleteResults] {
	return executeAsync(ctx, p.ExecuteBlocking)
}

// deletedCollections returns the union of affected collections of the
// results that removed at least one row, preserving first-seen order.
func deletedCollections(results []resolvers.DeleteResult) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, res := range results {
		if res.RowsDeleted() == 0 {
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

// DeleteByQuery starts a Delete of whatever rows match the query, without
// involving a domain type or resolver. The subject is already supplied, so
// the returned builder is the complete phase.
func (s *Store) DeleteByQuery(q queries.DeleteQuery) *DeleteQueryBuilder {
	return &DeleteQueryBuilder{store: s, query: q}
}

// DeleteQueryBuilder is the complete phase of a by-query Delete.
type DeleteQueryBuilder struct {
	store *Store
	query queries.DeleteQuery
}

// Prepare validates the query and returns the immutable operation.
func (b *DeleteQueryBuilder) Prepare() (*PreparedDeleteByQuery, error) {
	if err := b.query.Validate(); err != nil {
		return nil, err
	}
	return &PreparedDeleteByQuery{store: b.store, query: b.query}, nil
}

// PreparedDeleteByQuery is an immutable, reusable Delete of query matches.
type PreparedDeleteByQuery struct {
	store *Store
	query queries.DeleteQuery
}

// ExecuteBlocking performs the delete on the calling goroutine. The result
// always names the query's collection as affected; the bus is notified
// only when at least one row was removed.
func (p *PreparedDeleteByQuery) ExecuteBlocking(ctx context.Context) (resolvers.DeleteResult, error) {
	n, err := p.store.backend.Delete(ctx, p.query)
	if err != nil {
		return resolvers.DeleteResult{}, err
	}
	if n > 0 {
		if err := p.store.publishAffected("delete", []string{p.query.Collection}); err != nil {
			return resolvers.DeleteResult{}, err
		}
	}
	return resolvers.NewDeleteResult(n, p.query.Collection), nil
}

// ExecuteAsync performs the delete on a background goroutine and delivers
// the single result. Each call re-executes the full operation.
func (p *PreparedDeleteByQuery) ExecuteAsync(ctx context.Context) <-chan AsyncResult[resolvers.DeleteResult] {
	return executeAsync(ctx, p.ExecuteBlocking)
}
