/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/queries"
)

func insertUser(t *testing.T, ops backend.Ops, handle, email string) int64 {
	t.Helper()
	id, err := ops.Insert(context.Background(), queries.InsertQuery{Collection: "users"}, backend.RowData{
		"handle": handle,
		"email":  email,
	})
	require.NoError(t, err)
	return id
}

func queryHandles(t *testing.T, ops backend.Ops, q queries.Query) []string {
	t.Helper()
	q.Columns = []string{"handle"}
	rows, err := ops.Query(context.Background(), q)
	require.NoError(t, err)
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var h string
		require.NoError(t, rows.Scan(&h))
		handles = append(handles, h)
	}
	require.NoError(t, rows.Err())
	return handles
}

func TestInsertGeneratesSequentialIDs(t *testing.T) {
	b := New()
	defer b.Close()

	id1 := insertUser(t, b, "alice", "alice@example.com")
	id2 := insertUser(t, b, "bob", "bob@example.com")

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func TestQueryFiltersByEqualityConjunction(t *testing.T) {
	b := New()
	defer b.Close()

	insertUser(t, b, "alice", "alice@example.com")
	insertUser(t, b, "bob", "bob@example.com")
	insertUser(t, b, "bob", "other@example.com")

	handles := queryHandles(t, b, queries.Query{
		Collection: "users",
		Where:      "handle = ? AND email = ?",
		WhereArgs:  []any{"bob", "bob@example.com"},
	})
	assert.Equal(t, []string{"bob"}, handles)
}

func TestQueryByRowid(t *testing.T) {
	b := New()
	defer b.Close()

	insertUser(t, b, "alice", "alice@example.com")
	id := insertUser(t, b, "bob", "bob@example.com")

	// int argument must match the stored int64 rowid
	handles := queryHandles(t, b, queries.Query{
		Collection: "users",
		Where:      "rowid = ?",
		WhereArgs:  []any{int(id)},
	})
	assert.Equal(t, []string{"bob"}, handles)
}

func TestQueryOrderAndLimit(t *testing.T) {
	b := New()
	defer b.Close()

	insertUser(t, b, "alice", "a@example.com")
	insertUser(t, b, "carol", "c@example.com")
	insertUser(t, b, "bob", "b@example.com")

	handles := queryHandles(t, b, queries.Query{
		Collection: "users",
		OrderBy:    "handle DESC",
		Limit:      2,
	})
	assert.Equal(t, []string{"carol", "bob"}, handles)
}

func TestQueryUnknownCollectionIsEmpty(t *testing.T) {
	b := New()
	defer b.Close()

	handles := queryHandles(t, b, queries.Query{Collection: "nothing"})
	assert.Empty(t, handles)
}

func TestQueryRejectsUnsupportedWhere(t *testing.T) {
	b := New()
	defer b.Close()
	insertUser(t, b, "alice", "a@example.com")

	_, err := b.Query(context.Background(), queries.Query{
		Collection: "users",
		Where:      "rowid > ?",
		WhereArgs:  []any{int64(0)},
	})
	assert.True(t, errors.IsBackend(err))
}

func TestUpdateModifiesMatchingRows(t *testing.T) {
	b := New()
	defer b.Close()

	id := insertUser(t, b, "alice", "old@example.com")
	insertUser(t, b, "bob", "bob@example.com")

	n, err := b.Update(context.Background(), queries.UpdateQuery{
		Collection: "users",
		Where:      "rowid = ?",
		WhereArgs:  []any{id},
	}, backend.RowData{"email": "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	handles := queryHandles(t, b, queries.Query{
		Collection: "users",
		Where:      "email = ?",
		WhereArgs:  []any{"new@example.com"},
	})
	assert.Equal(t, []string{"alice"}, handles)
}

func TestUpdateWithoutMatchReturnsZero(t *testing.T) {
	b := New()
	defer b.Close()
	insertUser(t, b, "alice", "a@example.com")

	n, err := b.Update(context.Background(), queries.UpdateQuery{
		Collection: "users",
		Where:      "handle = ?",
		WhereArgs:  []any{"nobody"},
	}, backend.RowData{"email": "x@example.com"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteRemovesMatchingRows(t *testing.T) {
	b := New()
	defer b.Close()

	insertUser(t, b, "alice", "a@example.com")
	insertUser(t, b, "bob", "b@example.com")

	n, err := b.Delete(context.Background(), queries.DeleteQuery{
		Collection: "users",
		Where:      "handle = ?",
		WhereArgs:  []any{"alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	handles := queryHandles(t, b, queries.Query{Collection: "users"})
	assert.Equal(t, []string{"bob"}, handles)
}

func TestExecRawIsAcceptedWithoutInterpretation(t *testing.T) {
	b := New()
	defer b.Close()

	err := b.ExecRaw(context.Background(), queries.RawQuery{Statement: "VACUUM"})
	assert.NoError(t, err)
}

func TestTxCommitPublishesSnapshot(t *testing.T) {
	b := New()
	defer b.Close()
	insertUser(t, b, "alice", "a@example.com")

	tx, err := b.Begin(context.Background())
	require.NoError(t, err)

	insertUser(t, tx, "bob", "b@example.com")

	// Uncommitted work stays invisible outside the transaction.
	assert.Len(t, queryHandles(t, b, queries.Query{Collection: "users"}), 1)

	require.NoError(t, tx.Commit())
	assert.Len(t, queryHandles(t, b, queries.Query{Collection: "users"}), 2)
}

func TestTxRollbackDiscardsSnapshot(t *testing.T) {
	b := New()
	defer b.Close()
	insertUser(t, b, "alice", "a@example.com")

	tx, err := b.Begin(context.Background())
	require.NoError(t, err)

	insertUser(t, tx, "bob", "b@example.com")
	_, err = tx.Delete(context.Background(), queries.DeleteQuery{Collection: "users"})
	require.NoError(t, err)

	require.NoError(t, tx.Rollback())
	assert.Equal(t, []string{"alice"}, queryHandles(t, b, queries.Query{Collection: "users"}))
}

func TestTxCommitTwiceFails(t *testing.T) {
	b := New()
	defer b.Close()

	tx, err := b.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, tx.Commit())
	assert.True(t, errors.IsBackend(tx.Commit()))
	assert.NoError(t, tx.Rollback())
}

func TestErrorInjection(t *testing.T) {
	boom := fmt.Errorf("boom")
	ctx := context.Background()

	b := New().
		WithExecError(boom).
		WithQueryError(boom).
		WithInsertError(boom).
		WithUpdateError(boom).
		WithDeleteError(boom)
	defer b.Close()

	assert.True(t, errors.IsBackend(b.ExecRaw(ctx, queries.RawQuery{Statement: "VACUUM"})))

	_, err := b.Query(ctx, queries.Query{Collection: "users"})
	assert.True(t, errors.IsBackend(err))

	_, err = b.Insert(ctx, queries.InsertQuery{Collection: "users"}, backend.RowData{"handle": "x"})
	assert.True(t, errors.IsBackend(err))

	_, err = b.Update(ctx, queries.UpdateQuery{Collection: "users"}, backend.RowData{"handle": "x"})
	assert.True(t, errors.IsBackend(err))

	_, err = b.Delete(ctx, queries.DeleteQuery{Collection: "users"})
	assert.True(t, errors.IsBackend(err))
}
