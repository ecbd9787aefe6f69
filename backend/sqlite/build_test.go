/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/queries"
)

func TestBuildSelect(t *testing.T) {
	stmt, args := buildSelect(queries.Query{Collection: "users"})
	assert.Equal(t, "SELECT * FROM users", stmt)
	assert.Empty(t, args)

	stmt, args = buildSelect(queries.Query{
		Collection: "users",
		Distinct:   true,
		Columns:    []string{"rowid", "handle"},
		Where:      "email = ?",
		WhereArgs:  []any{"box@example.com"},
		GroupBy:    "handle",
		Having:     "COUNT(*) > 1",
		OrderBy:    "rowid DESC",
		Limit:      5,
	})
	assert.Equal(t,
		"SELECT DISTINCT rowid, handle FROM users WHERE email = ? GROUP BY handle HAVING COUNT(*) > 1 ORDER BY rowid DESC LIMIT 5",
		stmt)
	assert.Equal(t, []any{"box@example.com"}, args)
}

func TestBuildInsertIsDeterministic(t *testing.T) {
	stmt, args := buildInsert(
		queries.InsertQuery{Collection: "users"},
		backend.RowData{"handle": "box", "email": "box@example.com"},
	)
	// Columns come out sorted regardless of map iteration order.
	assert.Equal(t, "INSERT INTO users (email, handle) VALUES (?, ?)", stmt)
	assert.Equal(t, []any{"box@example.com", "box"}, args)
}

func TestBuildUpdate(t *testing.T) {
	stmt, args := buildUpdate(
		queries.UpdateQuery{Collection: "users", Where: "rowid = ?", WhereArgs: []any{int64(7)}},
		backend.RowData{"handle": "box", "email": "new@example.com"},
	)
	assert.Equal(t, "UPDATE users SET email = ?, handle = ? WHERE rowid = ?", stmt)
	assert.Equal(t, []any{"new@example.com", "box", int64(7)}, args)

	stmt, args = buildUpdate(
		queries.UpdateQuery{Collection: "users"},
		backend.RowData{"handle": "box"},
	)
	assert.Equal(t, "UPDATE users SET handle = ?", stmt)
	assert.Equal(t, []any{"box"}, args)
}

func TestBuildDelete(t *testing.T) {
	stmt, args := buildDelete(queries.DeleteQuery{Collection: "users", Where: "rowid = ?", WhereArgs: []any{int64(5)}})
	assert.Equal(t, "DELETE FROM users WHERE rowid = ?", stmt)
	assert.Equal(t, []any{int64(5)}, args)

	stmt, args = buildDelete(queries.DeleteQuery{Collection: "users"})
	assert.Equal(t, "DELETE FROM users", stmt)
	assert.Empty(t, args)
}
