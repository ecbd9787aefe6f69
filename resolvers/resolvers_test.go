/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolvers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/backend/memory"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/queries"
	"github.com/suparena/storekit/resolvers"
)

type note struct {
	ID   int64
	Body string
}

type notePut struct{}

func (notePut) PerformPut(ctx context.Context, ops backend.Ops, n note) (resolvers.PutResult, error) {
	id, err := ops.Insert(ctx, queries.InsertQuery{Collection: "notes"}, backend.RowData{"body": n.Body})
	if err != nil {
		return resolvers.PutResult{}, err
	}
	return resolvers.NewInsertResult(id, "notes"), nil
}

type noteGet struct {
	resolvers.BaseGetResolver
}

func (noteGet) MapRow(row backend.RowScanner) (note, error) {
	var n note
	if err := row.Scan(&n.ID, &n.Body); err != nil {
		return note{}, err
	}
	return n, nil
}

func noteDelete() resolvers.DeleteByQueryResolver[note] {
	return resolvers.DeleteByQueryResolver[note]{
		MapToDeleteQuery: func(n note) queries.DeleteQuery {
			return queries.DeleteQuery{
				Collection: "notes",
				Where:      "rowid = ?",
				WhereArgs:  []any{n.ID},
			}
		},
	}
}

func TestNewTypeMappingRequiresAllResolvers(t *testing.T) {
	_, err := resolvers.NewTypeMapping[note](nil, noteGet{}, noteDelete())
	assert.True(t, errors.IsConfiguration(err))

	_, err = resolvers.NewTypeMapping[note](notePut{}, nil, noteDelete())
	assert.True(t, errors.IsConfiguration(err))

	_, err = resolvers.NewTypeMapping[note](notePut{}, noteGet{}, nil)
	assert.True(t, errors.IsConfiguration(err))

	m, err := resolvers.NewTypeMapping[note](notePut{}, noteGet{}, noteDelete())
	require.NoError(t, err)
	assert.False(t, m.IsZero())
	assert.NotNil(t, m.PutResolver())
	assert.NotNil(t, m.GetResolver())
	assert.NotNil(t, m.DeleteResolver())
}

func TestDeleteByQueryResolver(t *testing.T) {
	b := memory.New()
	defer b.Close()
	ctx := context.Background()

	res, err := notePut{}.PerformPut(ctx, b, note{Body: "remember"})
	require.NoError(t, err)

	del, err := noteDelete().PerformDelete(ctx, b, note{ID: res.InsertedID()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.RowsDeleted())
	assert.Equal(t, []string{"notes"}, del.AffectedCollections())

	// A second delete of the same object matches nothing.
	del, err = noteDelete().PerformDelete(ctx, b, note{ID: res.InsertedID()})
	require.NoError(t, err)
	assert.Zero(t, del.RowsDeleted())
}

func TestDeleteByQueryResolverRequiresMapping(t *testing.T) {
	b := memory.New()
	defer b.Close()

	_, err := resolvers.DeleteByQueryResolver[note]{}.PerformDelete(context.Background(), b, note{ID: 1})
	assert.True(t, errors.IsConfiguration(err))
}

func TestPutResultsAggregation(t *testing.T) {
	results := resolvers.NewPutResults([]resolvers.PutResult{
		resolvers.NewInsertResult(1, "notes"),
		resolvers.NewUpdateResult(2, "notes", "archive"),
		resolvers.NewUpdateResult(0, "notes"),
	})

	assert.Equal(t, 1, results.NumInserts())
	assert.Equal(t, 1, results.NumUpdates())
	assert.Equal(t, []string{"notes", "archive"}, results.AffectedCollections())
	assert.Len(t, results.Results(), 3)
}

func TestPutResultSemantics(t *testing.T) {
	ins := resolvers.NewInsertResult(7, "notes")
	assert.True(t, ins.WasInserted())
	assert.False(t, ins.WasUpdated())
	assert.True(t, ins.Mutated())
	assert.Equal(t, int64(7), ins.InsertedID())

	upd := resolvers.NewUpdateResult(3, "notes")
	assert.False(t, upd.WasInserted())
	assert.True(t, upd.WasUpdated())
	assert.True(t, upd.Mutated())
	assert.Equal(t, int64(3), upd.RowsUpdated())

	noop := resolvers.NewUpdateResult(0, "notes")
	assert.False(t, noop.Mutated())
}

func TestDeleteResultsAggregation(t *testing.T) {
	results := resolvers.NewDeleteResults([]resolvers.DeleteResult{
		resolvers.NewDeleteResult(1, "notes"),
		resolvers.NewDeleteResult(2, "archive"),
		resolvers.NewDeleteResult(0, "notes"),
	})

	assert.Equal(t, int64(3), results.RowsDeleted())
	assert.Equal(t, []string{"notes", "archive"}, results.AffectedCollections())
}
