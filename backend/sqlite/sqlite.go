/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/queries"
)

// Backend implements backend.Backend on a SQLite database using the pure
// Go modernc.org/sqlite driver.
type Backend struct {
	db     *sql.DB
	logger *slog.Logger
}

// execer is the operation surface shared by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type openOptions struct {
	logger      *slog.Logger
	busyTimeout time.Duration
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

// WithLogger sets the backend logger.
func WithLogger(l *slog.Logger) OpenOption {
	return func(o *openOptions) { o.logger = l }
}

// WithBusyTimeout sets the SQLite busy timeout.
func WithBusyTimeout(d time.Duration) OpenOption {
	return func(o *openOptions) { o.busyTimeout = d }
}

// Open opens or creates a SQLite database at the given path and returns a
// Backend over it. The path can be ":memory:" for an in-memory database.
// Parent directories are created if needed. WAL mode and foreign keys are
// enabled.
func Open(path string, opts ...OpenOption) (*Backend, error) {
	options := openOptions{busyTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger.With("component", "sqlite-backend")

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		fmt.Sprintf("PRAGMA busy_timeout=%d", options.busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}

	logger.Debug("sqlite backend opened", "path", path)
	return &Backend{db: db, logger: logger}, nil
}

// ExecRaw executes a backend-native SQL statement.
func (b *Backend) ExecRaw(ctx context.Context, q queries.RawQuery) error {
	return execRaw(ctx, b.db, q)
}

// Query runs a SELECT assembled from q and returns the lazy row sequence.
func (b *Backend) Query(ctx context.Context, q queries.Query) (backend.Rows, error) {
	return query(ctx, b.db, q)
}

// Insert stores a new row and returns the generated rowid.
func (b *Backend) Insert(ctx context.Context, q queries.InsertQuery, data backend.RowData) (int64, error) {
	return insert(ctx, b.db, q, data)
}

// Update modifies matching rows and returns the affected-row count.
func (b *Backend) Update(ctx context.Context, q queries.UpdateQuery, data backend.RowData) (int64, error) {
	return update(ctx, b.db, q, data)
}

// Delete removes matching rows and returns the deleted-row count.
func (b *Backend) Delete(ctx context.Context, q queries.DeleteQuery) (int64, error) {
	return del(ctx, b.db, q)
}

// Begin opens a transactional scope.
func (b *Backend) Begin(ctx context.Context) (backend.Tx, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewBackendError("begin", err)
	}
	return &sqliteTx{tx: tx}, nil
}

// Close closes the database handle.
func (b *Backend) Close() error {
	return b.db.Close()
}

// DB exposes the raw database handle for schema setup and diagnostics.
func (b *Backend) DB() *sql.DB {
	return b.db
}

// sqliteTx implements backend.Tx over *sql.Tx.
type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) ExecRaw(ctx context.Context, q queries.RawQuery) error {
	return execRaw(ctx, t.tx, q)
}

func (t *sqliteTx) Query(ctx context.Context, q queries.Query) (backend.Rows, error) {
	return query(ctx, t.tx, q)
}

func (t *sqliteTx) Insert(ctx context.Context, q queries.InsertQuery, data backend.RowData) (int64, error) {
	return insert(ctx, t.tx, q, data)
}

func (t *sqliteTx) Update(ctx context.Context, q queries.UpdateQuery, data backend.RowData) (int64, error) {
	return update(ctx, t.tx, q, data)
}

func (t *sqliteTx) Delete(ctx context.Context, q queries.DeleteQuery) (int64, error) {
	return del(ctx, t.tx, q)
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return errors.NewBackendError("commit", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		return errors.NewBackendError("rollback", err)
	}
	return nil
}

// Shared operation implementations over the execer surface, so a Backend
// and a live transaction run identical code.

func execRaw(ctx context.Context, e execer, q queries.RawQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, err := e.ExecContext(ctx, q.Statement, q.Args...); err != nil {
		return errors.NewBackendError("exec raw", err)
	}
	return nil
}

func query(ctx context.Context, e execer, q queries.Query) (backend.Rows, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	stmt, args := buildSelect(q)
	rows, err := e.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.NewBackendError("query", err)
	}
	return rows, nil
}

func insert(ctx context.Context, e execer, q queries.InsertQuery, data backend.RowData) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, errors.NewConfigurationError("insert", "row data must be non-empty")
	}
	stmt, args := buildInsert(q, data)
	res, err := e.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, errors.NewBackendError("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.NewBackendError("insert", err)
	}
	return id, nil
}

func update(ctx context.Context, e execer, q queries.UpdateQuery, data backend.RowData) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, errors.NewConfigurationError("update", "row data must be non-empty")
	}
	stmt, args := buildUpdate(q, data)
	res, err := e.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, errors.NewBackendError("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewBackendError("update", err)
	}
	return n, nil
}

func del(ctx context.Context, e execer, q queries.DeleteQuery) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	stmt, args := buildDelete(q)
	res, err := e.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, errors.NewBackendError("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewBackendError("delete", err)
	}
	return n, nil
}
