/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import (
	"context"

	"github.com/suparena/storekit/queries"
)

// ExecRaw starts a raw-execution builder. Raw execution runs a
// backend-native statement and publishes the statement's declared
// affected set verbatim, since effects of an opaque statement cannot be
// inferred.
func (s *Store) ExecRaw() *ExecRawBuilder {
	return &ExecRawBuilder{store: s}
}

// ExecRawBuilder is the incomplete phase of a raw execution: it only
// accepts the statement.
type ExecRawBuilder struct {
	store *Store
}

// WithQuery selects the raw statement to execute.
func (b *ExecRawBuilder) WithQuery(q queries.RawQuery) *ExecRawCompleteBuilder {
	return &ExecRawCompleteBuilder{store: b.store, query: q}
}

// ExecRawCompleteBuilder is the complete phase of a raw execution.
type ExecRawCompleteBuilder struct {
	store *Store
	query queries.RawQuery
}

// Prepare validates the statement and returns the immutable operation.
func (b *ExecRawCompleteBuilder) Prepare() (*PreparedExecRaw, error) {
	if err := b.query.Validate(); err != nil {
		return nil, err
	}
	return &PreparedExecRaw{store: b.store, query: b.query}, nil
}

// PreparedExecRaw is an immutable, reusable raw execution.
type PreparedExecRaw struct {
	store *Store
	query queries.RawQuery
}

// ExecuteBlocking runs the statement on the calling goroutine. On success
// the declared affected set, if non-empty, is published verbatim whether
// or not the statement actually touched those collections: the declaration
// is authoritative.
func (p *PreparedExecRaw) ExecuteBlocking(ctx context.Context) error {
	if err := p.store.backend.ExecRaw(ctx, p.query); err != nil {
		return err
	}
	if len(p.query.AffectedCollections) > 0 {
		return p.store.publishAffected("exec raw", p.query.AffectedCollections)
	}
	return nil
}

// ExecuteAsync runs the statement on a background goroutine and delivers
// the single outcome (nil on success) before closing the channel. Each
// call re-executes the statement.
func (p *PreparedExecRaw) ExecuteAsync(ctx context.Context) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- p.ExecuteBlocking(ctx)
	}()
	return ch
}
