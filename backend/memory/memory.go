/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-memory backend.Backend for tests and
// ephemeral stores.
//
// Rows live in copy-on-write B-trees keyed by generated rowid, one per
// collection. WHERE support is limited to conjunctions of equality tests
// ("col = ?" joined by AND); raw statements are accepted but not
// interpreted. Transactions operate on a copy of the tree set and swap it
// in on Commit, so rollback leaves no partial mutation visible.
//
// The With*Error builders inject failures for exercising error paths.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"context"

	"github.com/tidwall/btree"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/queries"
)

// Backend implements backend.Backend in process memory.
type Backend struct {
	mu     sync.RWMutex
	tables map[string]*table

	execErr   error
	queryErr  error
	insertErr error
	updateErr error
	deleteErr error
}

type table struct {
	rows   *btree.Map[int64, backend.RowData]
	nextID int64
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{tables: make(map[string]*table)}
}

// WithExecError makes ExecRaw return err.
func (b *Backend) WithExecError(err error) *Backend {
	b.execErr = err
	return b
}

// WithQueryError makes Query return err.
func (b *Backend) WithQueryError(err error) *Backend {
	b.queryErr = err
	return b
}

// WithInsertError makes Insert return err.
func (b *Backend) WithInsertError(err error) *Backend {
	b.insertErr = err
	return b
}

// WithUpdateError makes Update return err.
func (b *Backend) WithUpdateError(err error) *Backend {
	b.updateErr = err
	return b
}

// WithDeleteError makes Delete return err.
func (b *Backend) WithDeleteError(err error) *Backend {
	b.deleteErr = err
	return b
}

// ExecRaw accepts the statement without interpreting it. The memory
// backend has no statement engine; the method exists so raw-execution
// notification paths can be exercised against it.
func (b *Backend) ExecRaw(ctx context.Context, q queries.RawQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if b.execErr != nil {
		return errors.NewBackendError("exec raw", b.execErr)
	}
	return nil
}

// Query returns the matching rows as a lazy sequence.
func (b *Backend) Query(ctx context.Context, q queries.Query) (backend.Rows, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if b.queryErr != nil {
		return nil, errors.NewBackendError("query", b.queryErr)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return queryTables(b.tables, q)
}

// Insert stores a new row and returns its generated identifier.
func (b *Backend) Insert(ctx context.Context, q queries.InsertQuery, data backend.RowData) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if b.insertErr != nil {
		return 0, errors.NewBackendError("insert", b.insertErr)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return insertInto(b.tables, q, data)
}

// Update modifies matching rows and returns the affected-row count.
func (b *Backend) Update(ctx context.Context, q queries.UpdateQuery, data backend.RowData) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if b.updateErr != nil {
		return 0, errors.NewBackendError("update", b.updateErr)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return updateIn(b.tables, q, data)
}

// Delete removes matching rows and returns the deleted-row count.
func (b *Backend) Delete(ctx context.Context, q queries.DeleteQuery) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if b.deleteErr != nil {
		return 0, errors.NewBackendError("delete", b.deleteErr)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return deleteFrom(b.tables, q)
}

// Begin opens a transactional scope over a copy-on-write snapshot of the
// table set. Commit swaps the snapshot in; Rollback discards it.
func (b *Backend) Begin(ctx context.Context) (backend.Tx, error) {
	b.mu.RLock()
	snapshot := make(map[string]*table, len(b.tables))
	for name, t := range b.tables {
		snapshot[name] = &table{rows: t.rows.Copy(), nextID: t.nextID}
	}
	b.mu.RUnlock()

	return &memTx{backend: b, tables: snapshot}, nil
}

// Close releases the table set.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tables = make(map[string]*table)
	return nil
}

// memTx applies operations to a snapshot until Commit.
type memTx struct {
	backend *Backend
	tables  map[string]*table
	done    bool
}

func (t *memTx) ExecRaw(ctx context.Context, q queries.RawQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if t.backend.execErr != nil {
		return errors.NewBackendError("exec raw", t.backend.execErr)
	}
	return nil
}

func (t *memTx) Query(ctx context.Context, q queries.Query) (backend.Rows, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if t.backend.queryErr != nil {
		return nil, errors.NewBackendError("query", t.backend.queryErr)
	}
	return queryTables(t.tables, q)
}

func (t *memTx) Insert(ctx context.Context, q queries.InsertQuery, data backend.RowData) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if t.backend.insertErr != nil {
		return 0, errors.NewBackendError("insert", t.backend.insertErr)
	}
	return insertInto(t.tables, q, data)
}

func (t *memTx) Update(ctx context.Context, q queries.UpdateQuery, data backend.RowData) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if t.backend.updateErr != nil {
		return 0, errors.NewBackendError("update", t.backend.updateErr)
	}
	return updateIn(t.tables, q, data)
}

func (t *memTx) Delete(ctx context.Context, q queries.DeleteQuery) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	if t.backend.deleteErr != nil {
		return 0, errors.NewBackendError("delete", t.backend.deleteErr)
	}
	return deleteFrom(t.tables, q)
}

func (t *memTx) Commit() error {
	if t.done {
		return errors.NewBackendError("commit", fmt.Errorf("transaction already finished"))
	}
	t.done = true

	t.backend.mu.Lock()
	t.backend.tables = t.tables
	t.backend.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.tables = nil
	return nil
}

// Shared table operations. Callers hold whatever synchronization the table
// set requires.

func insertInto(tables map[string]*table, q queries.InsertQuery, data backend.RowData) (int64, error) {
	t, ok := tables[q.Collection]
	if !ok {
		t = &table{rows: btree.NewMap[int64, backend.RowData](0)}
		tables[q.Collection] = t
	}
	t.nextID++
	row := make(backend.RowData, len(data)+1)
	for k, v := range data {
		row[k] = v
	}
	row["rowid"] = t.nextID
	t.rows.Set(t.nextID, row)
	return t.nextID, nil
}

func updateIn(tables map[string]*table, q queries.UpdateQuery, data backend.RowData) (int64, error) {
	t, ok := tables[q.Collection]
	if !ok {
		return 0, nil
	}
	match, err := compileWhere(q.Where, q.WhereArgs)
	if err != nil {
		return 0, err
	}

	var n int64
	var ids []int64
	t.rows.Scan(func(id int64, row backend.RowData) bool {
		if match(row) {
			ids = append(ids, id)
		}
		return true
	})
	for _, id := range ids {
		row, _ := t.rows.Get(id)
		updated := make(backend.RowData, len(row))
		for k, v := range row {
			updated[k] = v
		}
		for k, v := range data {
			updated[k] = v
		}
		t.rows.Set(id, updated)
		n++
	}
	return n, nil
}

func deleteFrom(tables map[string]*table, q queries.DeleteQuery) (int64, error) {
	t, ok := tables[q.Collection]
	if !ok {
		return 0, nil
	}
	match, err := compileWhere(q.Where, q.WhereArgs)
	if err != nil {
		return 0, err
	}

	var ids []int64
	t.rows.Scan(func(id int64, row backend.RowData) bool {
		if match(row) {
			ids = append(ids, id)
		}
		return true
	})
	for _, id := range ids {
		t.rows.Delete(id)
	}
	return int64(len(ids)), nil
}

func queryTables(tables map[string]*table, q queries.Query) (backend.Rows, error) {
	match, err := compileWhere(q.Where, q.WhereArgs)
	if err != nil {
		return nil, err
	}

	t, ok := tables[q.Collection]
	var rows []backend.RowData
	if ok {
		t.rows.Scan(func(id int64, row backend.RowData) bool {
			if match(row) {
				rows = append(rows, row)
			}
			return true
		})
	}

	if q.OrderBy != "" {
		if err := orderRows(rows, q.OrderBy); err != nil {
			return nil, err
		}
	}
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	columns := q.Columns
	if len(columns) == 0 {
		columns = collectColumns(rows)
	}
	return newRows(columns, rows), nil
}

// compileWhere turns a conjunction of equality tests ("a = ? AND b = ?")
// into a row predicate. An empty clause matches every row.
func compileWhere(where string, args []any) (func(backend.RowData) bool, error) {
	if where == "" {
		return func(backend.RowData) bool { return true }, nil
	}

	parts := strings.Split(where, " AND ")
	if len(parts) != len(args) {
		return nil, errors.NewBackendError("where", fmt.Errorf("clause %q wants %d args, got %d", where, len(parts), len(args)))
	}

	type cond struct {
		column string
		value  any
	}
	conds := make([]cond, 0, len(parts))
	for i, part := range parts {
		column, ok := strings.CutSuffix(strings.TrimSpace(part), "= ?")
		if !ok {
			return nil, errors.NewBackendError("where", fmt.Errorf("unsupported clause %q: only equality conjunctions are supported", where))
		}
		conds = append(conds, cond{column: strings.TrimSpace(column), value: args[i]})
	}

	return func(row backend.RowData) bool {
		for _, c := range conds {
			v, ok := row[c.column]
			if !ok || !looseEqual(v, c.value) {
				return false
			}
		}
		return true
	}, nil
}

// looseEqual compares values the way SQLite affinity would for the common
// scalar types, so int and int64 arguments match stored values.
func looseEqual(a, b any) bool {
	if a == b {
		return true
	}
	ai, aok := asInt64(a)
	bi, bok := asInt64(b)
	if aok && bok {
		return ai == bi
	}
	af, aok := asFloat64(a)
	bf, bok := asFloat64(b)
	if aok && bok {
		return af == bf
	}
	return false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// orderRows sorts rows by a single "column [DESC]" expression.
func orderRows(rows []backend.RowData, orderBy string) error {
	fields := strings.Fields(orderBy)
	if len(fields) == 0 || len(fields) > 2 {
		return errors.NewBackendError("order by", fmt.Errorf("unsupported expression %q", orderBy))
	}
	column := fields[0]
	desc := len(fields) == 2 && strings.EqualFold(fields[1], "DESC")

	sort.SliceStable(rows, func(i, j int) bool {
		less := lessValue(rows[i][column], rows[j][column])
		if desc {
			return !less && !looseEqual(rows[i][column], rows[j][column])
		}
		return less
	})
	return nil
}

func lessValue(a, b any) bool {
	if ai, ok := asInt64(a); ok {
		if bi, ok := asInt64(b); ok {
			return ai < bi
		}
	}
	if af, ok := asFloat64(a); ok {
		if bf, ok := asFloat64(b); ok {
			return af < bf
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	return false
}

func collectColumns(rows []backend.RowData) []string {
	seen := make(map[string]struct{})
	var columns []string
	for _, row := range rows {
		for col := range row {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}
	sort.Strings(columns)
	return columns
}
