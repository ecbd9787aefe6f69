/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package queries

import (
	"github.com/suparena/storekit/errors"
)

// Query describes a read against a single collection.
//
// Query values are treated as immutable descriptors: builders copy them at
// prepare time and never modify them afterwards.
type Query struct {
	// Collection is the table or content collection to read from. Required.
	Collection string
	// Distinct requests duplicate-free rows.
	Distinct bool
	// Columns is the projection. Empty means all columns.
	Columns []string
	// Where is an optional filter expression with ? placeholders.
	Where string
	// WhereArgs are the positional arguments for Where.
	WhereArgs []any
	// GroupBy is an optional grouping expression.
	GroupBy string
	// Having is an optional filter applied after grouping.
	Having string
	// OrderBy is an optional ordering expression.
	OrderBy string
	// Limit caps the number of returned rows. Zero means no limit.
	Limit int
}

// Validate checks the Query invariants.
func (q Query) Validate() error {
	if q.Collection == "" {
		return errors.NewConfigurationError("query", "collection must be non-empty")
	}
	if q.Where == "" && len(q.WhereArgs) > 0 {
		return errors.NewConfigurationError("query", "where args supplied without a where clause")
	}
	return nil
}

// RawQuery describes an opaque backend-native statement together with the
// set of collections it affects. The declared affected set is authoritative:
// the system never infers it from the statement text.
type RawQuery struct {
	// Statement is the backend-native statement. Required.
	Statement string
	// Args are the positional arguments for Statement.
	Args []any
	// AffectedCollections is the caller-declared set of collections the
	// statement mutates. It is published verbatim after execution.
	AffectedCollections []string
}

// Validate checks the RawQuery invariants.
func (q RawQuery) Validate() error {
	if q.Statement == "" {
		return errors.NewConfigurationError("raw query", "statement must be non-empty")
	}
	for _, c := range q.AffectedCollections {
		if c == "" {
			return errors.NewConfigurationError("raw query", "affected collection identifiers must be non-empty")
		}
	}
	return nil
}

// InsertQuery describes an insert into a single collection.
type InsertQuery struct {
	// Collection is the target table or content collection. Required.
	Collection string
}

// Validate checks the InsertQuery invariants.
func (q InsertQuery) Validate() error {
	if q.Collection == "" {
		return errors.NewConfigurationError("insert query", "collection must be non-empty")
	}
	return nil
}

// UpdateQuery describes an update of rows in a single collection.
type UpdateQuery struct {
	// Collection is the target table or content collection. Required.
	Collection string
	// Where is an optional filter expression with ? placeholders.
	// Empty means all rows.
	Where string
	// WhereArgs are the positional arguments for Where.
	WhereArgs []any
}

// Validate checks the UpdateQuery invariants.
func (q UpdateQuery) Validate() error {
	if q.Collection == "" {
		return errors.NewConfigurationError("update query", "collection must be non-empty")
	}
	if q.Where == "" && len(q.WhereArgs) > 0 {
		return errors.NewConfigurationError("update query", "where args supplied without a where clause")
	}
	return nil
}

// DeleteQuery describes a delete of rows from a single collection.
type DeleteQuery struct {
	// Collection is the target table or content collection. Required.
	Collection string
	// Where is an optional filter expression with ? placeholders.
	// Empty means all rows.
	Where string
	// WhereArgs are the positional arguments for Where.
	WhereArgs []any
}

// Validate checks the DeleteQuery invariants.
func (q DeleteQuery) Validate() error {
	if q.Collection == "" {
		return errors.NewConfigurationError("delete query", "collection must be non-empty")
	}
	if q.Where == "" && len(q.WhereArgs) > 0 {
		return errors.NewConfigurationError("delete query", "where args supplied without a where clause")
	}
	return nil
}
