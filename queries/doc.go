/*
Package queries defines the immutable value types that describe requests
against the store.

Query describes a read: collection, projection, filter expression with
positional arguments, grouping, ordering and limit. InsertQuery, UpdateQuery
and DeleteQuery describe targeted single-collection mutations. RawQuery
carries an opaque backend-native statement plus an explicitly declared set
of affected collections; that declared set is authoritative and is never
inferred from the statement text.

Every type exposes Validate(), which operation builders call at prepare
time. The only hard invariant is a non-empty collection identifier
(statement, for RawQuery).

	q := queries.Query{
	    Collection: "users",
	    Where:      "email = ?",
	    WhereArgs:  []any{"box@example.com"},
	    OrderBy:    "id",
	}
*/
package queries
