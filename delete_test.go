/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storekit/changes"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/queries"
	"github.com/suparena/storekit/testmodels"
)

func TestDeleteObjectPublishes(t *testing.T) {
	s, _ := newTestStore(t)
	inserted := putUser(t, s, testmodels.User{Handle: "alice"})

	sub, err := s.ObserveChanges("users")
	require.NoError(t, err)
	defer sub.Close()

	prepared, err := Delete[testmodels.User](s).
		Object(testmodels.User{ID: inserted.InsertedID(), Handle: "alice"}).
		Prepare()
	require.NoError(t, err)

	res, err := prepared.ExecuteBlocking(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsDeleted())
	assert.Equal(t, []string{"users"}, res.AffectedCollections())

	got := receiveChanges(t, sub)
	assert.True(t, got.Equal(changes.MustNew("users")))
	assert.Empty(t, listUsers(t, s))
}

func TestDeleteObjectZeroRowsPublishesNothing(t *testing.T) {
	s, _ := newTestStore(t)

	sub, err := s.ObserveChanges("users")
	require.NoError(t, err)
	defer sub.Close()

	prepared, err := Delete[testmodels.User](s).
		Object(testmodels.User{ID: 999, Handle: "ghost"}).
		Prepare()
	require.NoError(t, err)

	res, err := prepared.ExecuteBlocking(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.RowsDeleted())
	assertNoChanges(t, sub)
}

func TestDeleteObjectContractViolation(t *testing.T) {
	s, _ := newTestStore(t)

	sub, err := s.ObserveChanges("users")
	require.NoError(t, err)
	defer sub.Close()

	prepared, err := Delete[testmodels.User](s).
		Object(testmodels.User{ID: 1}).
		WithResolver(badDeleteResolver{}).
		Prepare()
	require.NoError(t, err)

	_, err = prepared.ExecuteBlocking(context.Background())
	assert.True(t, errors.IsResolverContract(err))
	assertNoChanges(t, sub)
}

func TestDeleteCollectionPublishesOnce(t *testing.T) {
	s, _ := newTestStore(t)
	first := putUser(t, s, testmodels.User{Handle: "alice"})
	second := putUser(t, s, testmodels.User{Handle: "bob"})

	sub, err := s.ObserveChanges("users")
	require.NoError(t, err)
	defer sub.Close()

	prepared, err := Delete[testmodels.User](s).
		Objects([]testmodels.User{
			{ID: first.InsertedID()},
			{ID: second.InsertedID()},
		}).
		Prepare()
	require.NoError(t, err)

	results, err := prepared.ExecuteBlocking(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), results.RowsDeleted())

	receiveChanges(t, sub)
	assertNoChanges(t, sub)
	assert.Empty(t, listUsers(t, s))
}

func TestDeleteCollectionMidFailurePublishesAccumulated(t *testing.T) {
	s, _ := newTestStore(t)
	first := putUser(t, s, testmodels.User{Handle: "alice"})
	second := putUser(t, s, testmodels.User{Handle: "bob"})

	sub, err := s.ObserveChanges("users")
	require.NoError(t, err)
	defer sub.Close()

	prepared, err := Delete[testmodels.User](s).
		Objects([]testmodels.User{
			{ID: first.InsertedID(), Handle: "alice"},
			{ID: second.InsertedID(), Handle: "boom"},
		}).
		WithResolver(userDeleteResolver{failOn: "boom"}).
		Prepare()
	require.NoError(t, err)

	_, err = prepared.ExecuteBlocking(context.Background())
	require.Error(t, err)

	// The first delete already happened, so its change is published and
	// only the second row survives.
	got := receiveChanges(t, sub)
	assert.True(t, got.Equal(changes.MustNew("users")))

	users := listUsers(t, s)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Handle)
}

func TestDeleteByQueryPublishesWhenRowsMatch(t *testing.T) {
	s, _ := newTestStore(t)
	putUser(t, s, testmodels.User{Handle: "alice", Email: "spam@example.com"})
	putUser(t, s, testmodels.User{Handle: "bob", Email: "spam@example.com"})
	putUser(t, s, testmodels.User{Handle: "carol", Email: "ok@example.com"})

	sub, err := s.ObserveChanges("users")
	require.NoError(t, err)
	defer sub.Close()

	prepared, err := s.DeleteByQuery(queries.DeleteQuery{
		Collection: "users",
		Where:      "email = ?",
		WhereArgs:  []any{"spam@example.com"},
	}).Prepare()
	require.NoError(t, err)

	res, err := prepared.ExecuteBlocking(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.RowsDeleted())
	assert.Equal(t, []string{"users"}, res.AffectedCollections())

	receiveChanges(t, sub)

	users := listUsers(t, s)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Handle)
}

func TestDeleteByQueryZeroMatchesPublishesNothing(t *testing.T) {
	s, _ := newTestStore(t)
	putUser(t, s, testmodels.User{Handle: "alice"})

	sub, err := s.ObserveChanges("users")
	require.NoError(t, err)
	defer sub.Close()

	prepared, err := s.DeleteByQuery(queries.DeleteQuery{
		Collection: "users",
		Where:      "handle = ?",
		WhereArgs:  []any{"nobody"},
	}).Prepare()
	require.NoError(t, err)

	res, err := prepared.ExecuteBlocking(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.RowsDeleted())

	// The result still names the target collection even when nothing
	// matched; only the notification is suppressed.
	assert.Equal(t, []string{"users"}, res.AffectedCollections())
	assertNoChanges(t, sub)
}

func TestDeleteByQueryPrepareValidates(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.DeleteByQuery(queries.DeleteQuery{}).Prepare()
	assert.True(t, errors.IsConfiguration(err))
}

func TestDeleteByQueryExecuteAsync(t *testing.T) {
	s, _ := newTestStore(t)
	putUser(t, s, testmodels.User{Handle: "alice"})

	prepared, err := s.DeleteByQuery(queries.DeleteQuery{
		Collection: "users",
		Where:      "handle = ?",
		WhereArgs:  []any{"alice"},
	}).Prepare()
	require.NoError(t, err)

	out := <-prepared.ExecuteAsync(context.Background())
	require.NoError(t, out.Err)
	assert.Equal(t, int64(1), out.Result.RowsDeleted())
}
