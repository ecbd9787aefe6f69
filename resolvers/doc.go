/*
Package resolvers defines the pluggable strategies that translate between
domain objects and their storage representation.

A TypeMapping[T] bundles the three resolvers of a type:

	mapping, err := resolvers.NewTypeMapping[User](
	    userPutResolver{},
	    userGetResolver{},
	    resolvers.DeleteByQueryResolver[User]{
	        MapToDeleteQuery: func(u User) queries.DeleteQuery {
	            return queries.DeleteQuery{Collection: "users", Where: "id = ?", WhereArgs: []any{u.ID}}
	        },
	    },
	)

PutResolver owns the insert-or-update decision: it looks up whatever it
considers an existing match and reports the outcome as a PutResult. A
reported mutation with an empty affected-collection set is a contract
violation surfaced by the execution core.

GetResolver maps rows lazily; MapRow is invoked once per row as the caller
iterates, never eagerly. BaseGetResolver supplies the default PerformGet
for implementations that only customize mapping.
*/
package resolvers
