/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolvers

import (
	"context"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/queries"
)

// PutResolver maps a domain object to its storage row representation and
// performs the put. The insert-or-update decision is entirely the
// resolver's: the execution core never infers it.
type PutResolver[T any] interface {
	// PerformPut stores the object through ops and reports what happened.
	// ops may be a live transaction when the operation runs atomically.
	PerformPut(ctx context.Context, ops backend.Ops, object T) (PutResult, error)
}

// GetResolver maps storage rows back into domain objects.
type GetResolver[T any] interface {
	// PerformGet runs the query and returns the raw row sequence.
	// Most implementations embed BaseGetResolver to get the default.
	PerformGet(ctx context.Context, ops backend.Ops, q queries.Query) (backend.Rows, error)

	// MapRow converts the current row into a domain object.
	MapRow(row backend.RowScanner) (T, error)
}

// DeleteResolver maps a domain object to a delete and executes it.
type DeleteResolver[T any] interface {
	// PerformDelete removes the object through ops and reports what happened.
	PerformDelete(ctx context.Context, ops backend.Ops, object T) (DeleteResult, error)
}

// BaseGetResolver provides the default PerformGet, which simply delegates
// the query to the backend. Embed it and implement MapRow:
//
//	type userGetResolver struct {
//	    resolvers.BaseGetResolver
//	}
type BaseGetResolver struct{}

// PerformGet delegates to ops.Query.
func (BaseGetResolver) PerformGet(ctx context.Context, ops backend.Ops, q queries.Query) (backend.Rows, error) {
	return ops.Query(ctx, q)
}

// DeleteByQueryResolver adapts a object-to-DeleteQuery mapping function
// into a DeleteResolver. The delete affects exactly the query's collection.
type DeleteByQueryResolver[T any] struct {
	// MapToDeleteQuery produces the DeleteQuery for an object. Required.
	MapToDeleteQuery func(object T) queries.DeleteQuery
}

// PerformDelete executes the mapped DeleteQuery through ops.
func (r DeleteByQueryResolver[T]) PerformDelete(ctx context.Context, ops backend.Ops, object T) (DeleteResult, error) {
	if r.MapToDeleteQuery == nil {
		return DeleteResult{}, errors.NewConfigurationError("delete", "DeleteByQueryResolver requires MapToDeleteQuery")
	}
	q := r.MapToDeleteQuery(object)
	if err := q.Validate(); err != nil {
		return DeleteResult{}, err
	}
	n, err := ops.Delete(ctx, q)
	if err != nil {
		return DeleteResult{}, err
	}
	return NewDeleteResult(n, q.Collection), nil
}

// TypeMapping is the immutable {put, get, delete} resolver triple for one
// domain type.
type TypeMapping[T any] struct {
	put    PutResolver[T]
	get    GetResolver[T]
	delete DeleteResolver[T]
}

// NewTypeMapping creates a TypeMapping. All three resolvers are required.
func NewTypeMapping[T any](put PutResolver[T], get GetResolver[T], del DeleteResolver[T]) (TypeMapping[T], error) {
	if put == nil {
		return TypeMapping[T]{}, errors.NewConfigurationError("type mapping", "put resolver is required")
	}
	if get == nil {
		return TypeMapping[T]{}, errors.NewConfigurationError("type mapping", "get resolver is required")
	}
	if del == nil {
		return TypeMapping[T]{}, errors.NewConfigurationError("type mapping", "delete resolver is required")
	}
	return TypeMapping[T]{put: put, get: get, delete: del}, nil
}

// PutResolver returns the put resolver of the triple.
func (m TypeMapping[T]) PutResolver() PutResolver[T] { return m.put }

// GetResolver returns the get resolver of the triple.
func (m TypeMapping[T]) GetResolver() GetResolver[T] { return m.get }

// DeleteResolver returns the delete resolver of the triple.
func (m TypeMapping[T]) DeleteResolver() DeleteResolver[T] { return m.delete }

// IsZero reports whether the mapping is the unusable zero value.
func (m TypeMapping[T]) IsZero() bool {
	return m.put == nil && m.get == nil && m.delete == nil
}
