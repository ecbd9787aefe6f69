/*
Package backend defines the storage engine contract consumed by the
operation core.

The main interface is Backend, which provides raw execution, query,
insert, update and delete primitives plus transactional scopes:

	type Backend interface {
	    Ops
	    Begin(ctx context.Context) (Tx, error)
	    Close() error
	}

Ops is the operation subset shared between a Backend and a Tx, so resolver
code is agnostic to whether it runs inside a transaction.

Implementations:
  - sqlite: relational implementation over database/sql with modernc.org/sqlite
  - memory: in-memory implementation for tests and ephemeral stores

The row representation and persisted schema are the implementation's
concern; the core only moves RowData maps and Rows sequences across this
boundary.
*/
package backend
