/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suparena/storekit/errors"
)

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{
			name:  "minimal valid",
			query: Query{Collection: "users"},
		},
		{
			name: "full valid",
			query: Query{
				Collection: "users",
				Distinct:   true,
				Columns:    []string{"rowid", "handle"},
				Where:      "handle = ?",
				WhereArgs:  []any{"box"},
				OrderBy:    "rowid DESC",
				Limit:      10,
			},
		},
		{
			name:    "empty collection",
			query:   Query{Where: "id = ?", WhereArgs: []any{1}},
			wantErr: true,
		},
		{
			name:    "args without where",
			query:   Query{Collection: "users", WhereArgs: []any{1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsConfiguration(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRawQueryValidate(t *testing.T) {
	assert.NoError(t, RawQuery{Statement: "VACUUM"}.Validate())
	assert.NoError(t, RawQuery{
		Statement:           "UPDATE a SET x = 1",
		AffectedCollections: []string{"a", "b"},
	}.Validate())

	err := RawQuery{}.Validate()
	assert.True(t, errors.IsConfiguration(err))

	err = RawQuery{Statement: "VACUUM", AffectedCollections: []string{""}}.Validate()
	assert.True(t, errors.IsConfiguration(err))
}

func TestInsertQueryValidate(t *testing.T) {
	assert.NoError(t, InsertQuery{Collection: "users"}.Validate())
	assert.True(t, errors.IsConfiguration(InsertQuery{}.Validate()))
}

func TestUpdateQueryValidate(t *testing.T) {
	assert.NoError(t, UpdateQuery{Collection: "users", Where: "id = ?", WhereArgs: []any{1}}.Validate())
	assert.NoError(t, UpdateQuery{Collection: "users"}.Validate())
	assert.True(t, errors.IsConfiguration(UpdateQuery{Where: "id = ?"}.Validate()))
	assert.True(t, errors.IsConfiguration(UpdateQuery{Collection: "users", WhereArgs: []any{1}}.Validate()))
}

func TestDeleteQueryValidate(t *testing.T) {
	assert.NoError(t, DeleteQuery{Collection: "users", Where: "id = ?", WhereArgs: []any{5}}.Validate())
	assert.NoError(t, DeleteQuery{Collection: "users"}.Validate())
	assert.True(t, errors.IsConfiguration(DeleteQuery{}.Validate()))
}
