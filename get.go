/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import (
	"context"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/queries"
	"github.com/suparena/storekit/resolvers"
)

// defaultStreamBuffer is the channel buffer of a Get stream.
const defaultStreamBuffer = 100

// Get starts a Get operation builder for type T.
func Get[T any](s *Store) *GetBuilder[T] {
	return &GetBuilder[T]{store: s}
}

// GetBuilder is the incomplete phase of a Get: it only accepts the query.
type GetBuilder[T any] struct {
	store *Store
}

// WithQuery selects the query describing the read.
func (b *GetBuilder[T]) WithQuery(q queries.Query) *GetQueryBuilder[T] {
	return &GetQueryBuilder[T]{store: b.store, query: q}
}

// GetQueryBuilder is the complete phase of a Get.
type GetQueryBuilder[T any] struct {
	store    *Store
	query    queries.Query
	resolver resolvers.GetResolver[T]
}

// WithResolver overrides the resolver looked up in the registry.
func (b *GetQueryBuilder[T]) WithResolver(r resolvers.GetResolver[T]) *GetQueryBuilder[T] {
	b.resolver = r
	return b
}

// Prepare validates the query, resolves the get resolver and returns the
// immutable operation.
func (b *GetQueryBuilder[T]) Prepare() (*PreparedGet[T], error) {
	if err := b.query.Validate(); err != nil {
		return nil, err
	}
	r, err := resolveGet(b.store, b.resolver)
	if err != nil {
		return nil, err
	}
	return &PreparedGet[T]{store: b.store, query: b.query, resolver: r}, nil
}

// PreparedGet is an immutable, reusable read. Each execution runs the query
// again and yields a fresh sequence; nothing is cached across executions.
// Get operations never publish Changes.
type PreparedGet[T any] struct {
	store    *Store
	query    queries.Query
	resolver resolvers.GetResolver[T]
}

// ExecuteBlocking runs the query on the calling goroutine and returns a
// lazy iterator over mapped objects. Rows are fetched and mapped one at a
// time as the caller advances; the caller must Close the iterator.
func (p *PreparedGet[T]) ExecuteBlocking(ctx context.Context) (*Iterator[T], error) {
	rows, err := p.resolver.PerformGet(ctx, p.store.backend, p.query)
	if err != nil {
		return nil, err
	}
	return &Iterator[T]{rows: rows, mapRow: p.resolver.MapRow}, nil
}

// AllBlocking runs the query and eagerly materializes every mapped object.
func (p *PreparedGet[T]) AllBlocking(ctx context.Context) ([]T, error) {
	it, err := p.ExecuteBlocking(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []T
	for it.Next() {
		out = append(out, it.Object())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuteAsync runs the query on a background goroutine and streams mapped
// objects over a channel. The stream is cold: each call re-executes the
// query from scratch. The channel is closed when the sequence ends, an
// error is emitted, or ctx is cancelled.
func (p *PreparedGet[T]) ExecuteAsync(ctx context.Context, opts ...StreamOption) <-chan StreamResult[T] {
	options := defaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	ch := make(chan StreamResult[T], options.bufferSize)
	go p.streamWorker(ctx, ch)
	return ch
}

func (p *PreparedGet[T]) streamWorker(ctx context.Context, ch chan<- StreamResult[T]) {
	defer close(ch)

	it, err := p.ExecuteBlocking(ctx)
	if err != nil {
		select {
		case ch <- StreamResult[T]{Err: err}:
		case <-ctx.Done():
		}
		return
	}
	defer it.Close()

	for it.Next() {
		select {
		case ch <- StreamResult[T]{Item: it.Object()}:
		case <-ctx.Done():
			return
		}
	}
	if err := it.Err(); err != nil {
		select {
		case ch <- StreamResult[T]{Err: err}:
		case <-ctx.Done():
		}
	}
}

// StreamResult is a single element of a Get stream: a mapped object or the
// error that ended the stream.
type StreamResult[T any] struct {
	Item T
	Err  error
}

// StreamOptions configures streaming behavior.
type StreamOptions struct {
	bufferSize int
}

// StreamOption is a functional option for configuring streaming.
type StreamOption func(*StreamOptions)

func defaultStreamOptions() StreamOptions {
	return StreamOptions{bufferSize: defaultStreamBuffer}
}

// WithStreamBuffer sets the stream channel buffer size.
func WithStreamBuffer(size int) StreamOption {
	return func(o *StreamOptions) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// Iterator is a lazy sequence of mapped domain objects backed by an open
// row sequence. It follows the database/sql iteration contract:
//
//	it, err := prepared.ExecuteBlocking(ctx)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//	    obj := it.Object()
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[T any] struct {
	rows   backend.Rows
	mapRow func(backend.RowScanner) (T, error)

	current T
	err     error
	done    bool
}

// Next advances to the next object, mapping it from the underlying row.
// It returns false when the sequence is exhausted or a row or mapping
// error occurred; check Err afterwards.
func (it *Iterator[T]) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if !it.rows.Next() {
		it.done = true
		it.err = it.rows.Err()
		return false
	}
	obj, err := it.mapRow(it.rows)
	if err != nil {
		it.done = true
		it.err = err
		return false
	}
	it.current = obj
	return true
}

// Object returns the object produced by the last successful Next.
func (it *Iterator[T]) Object() T { return it.current }

// Err returns the error that ended iteration early, if any.
func (it *Iterator[T]) Err() error { return it.err }

// Close releases the underlying row sequence.
func (it *Iterator[T]) Close() error { return it.rows.Close() }
