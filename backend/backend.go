/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package backend

import (
	"context"

	"github.com/suparena/storekit/queries"
)

// RowData is the storage row representation of a domain object, mapping
// column names to values.
type RowData map[string]any

// RowScanner reads column values out of the current row.
type RowScanner interface {
	// Scan copies the columns of the current row into the values pointed at
	// by dest, in projection order.
	Scan(dest ...any) error

	// Columns returns the column names of the result set.
	Columns() ([]string, error)
}

// Rows is a lazy, forward-only sequence of rows produced by a query.
// It follows the database/sql iteration contract: callers loop on Next,
// check Err after the loop and must Close when done.
type Rows interface {
	RowScanner

	// Next advances to the next row, returning false when the sequence is
	// exhausted or an error occurred.
	Next() bool

	// Err returns the error, if any, that ended iteration early.
	Err() error

	// Close releases the resources held by the sequence.
	Close() error
}

// Ops is the operation set shared by a backend and its transactions.
// Resolvers receive an Ops so the same resolver code runs inside and
// outside a transactional scope.
type Ops interface {
	// ExecRaw executes a backend-native statement.
	ExecRaw(ctx context.Context, q queries.RawQuery) error

	// Query runs a read and returns a lazy row sequence.
	Query(ctx context.Context, q queries.Query) (Rows, error)

	// Insert stores a new row and returns its generated identifier.
	Insert(ctx context.Context, q queries.InsertQuery, data RowData) (int64, error)

	// Update modifies matching rows and returns the number of rows affected.
	Update(ctx context.Context, q queries.UpdateQuery, data RowData) (int64, error)

	// Delete removes matching rows and returns the number of rows deleted.
	Delete(ctx context.Context, q queries.DeleteQuery) (int64, error)
}

// Tx is a transactional scope over a backend. All operations performed
// through it become visible atomically on Commit and leave no trace after
// Rollback.
type Tx interface {
	Ops

	Commit() error
	Rollback() error
}

// Backend is the storage engine contract the operation core consumes.
// Implementations must tolerate concurrent calls; whatever serialization
// the engine itself performs is the only mutual ordering guarantee.
type Backend interface {
	Ops

	// Begin opens a transactional scope.
	Begin(ctx context.Context) (Tx, error)

	// Close releases the underlying engine handle.
	Close() error
}
