/*
Package storekit provides a typed, resolver-driven access layer over a
local structured data store, with change notifications for interested
subscribers.

Operations are expressed through staged builders that yield immutable,
reusable prepared operations. A prepared operation executes either
blocking on the caller's goroutine or asynchronously as a cold unit of
work, and on a successful mutation publishes the set of affected
collections to the store's notification bus.

The translation between domain objects and storage rows is delegated to
pluggable resolvers, registered per exact type or supplied explicitly per
operation.

Basic Usage:

	be, _ := sqlite.Open("app.db")
	store, _ := storekit.New(be)
	defer store.Close()

	storekit.RegisterTypeMapping(store, userMapping)

	sub, _ := store.ObserveChanges("users")
	defer sub.Close()

	prepared, _ := storekit.Put[User](store).Object(user).Prepare()
	res, err := prepared.ExecuteBlocking(ctx)

	// sub.Events() now delivers changes{users}

For more information, see the documentation at https://github.com/suparena/storekit
*/
package storekit
