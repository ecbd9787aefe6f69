/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolvers

// PutResult reports the outcome of a put: either an insert with its
// generated identifier or an update with its affected-row count, plus the
// set of collections the put touched.
type PutResult struct {
	inserted    bool
	insertedID  int64
	rowsUpdated int64
	affected    []string
}

// NewInsertResult creates a PutResult for an insert.
func NewInsertResult(insertedID int64, affectedCollections ...string) PutResult {
	return PutResult{
		inserted:   true,
		insertedID: insertedID,
		affected:   affectedCollections,
	}
}

// NewUpdateResult creates a PutResult for an update of rowsUpdated rows.
func NewUpdateResult(rowsUpdated int64, affectedCollections ...string) PutResult {
	return PutResult{
		rowsUpdated: rowsUpdated,
		affected:    affectedCollections,
	}
}

// WasInserted reports whether the put inserted a new row.
func (r PutResult) WasInserted() bool { return r.inserted }

// WasUpdated reports whether the put updated at least one existing row.
func (r PutResult) WasUpdated() bool { return !r.inserted && r.rowsUpdated > 0 }

// Mutated reports whether the put changed the store at all.
func (r PutResult) Mutated() bool { return r.inserted || r.rowsUpdated > 0 }

// InsertedID returns the generated identifier of an insert, or zero.
func (r PutResult) InsertedID() int64 { return r.insertedID }

// RowsUpdated returns the number of rows changed by an update, or zero.
func (r PutResult) RowsUpdated() int64 { return r.rowsUpdated }

// AffectedCollections returns the collections the put touched.
func (r PutResult) AffectedCollections() []string { return r.affected }

// PutResults aggregates the outcomes of a collection put.
type PutResults struct {
	results []PutResult
}

// NewPutResults creates a PutResults from per-object outcomes in input order.
func NewPutResults(results []PutResult) PutResults {
	return PutResults{results: results}
}

// Results returns the per-object outcomes in input order.
func (r PutResults) Results() []PutResult { return r.results }

// NumInserts returns the number of objects that were inserted.
func (r PutResults) NumInserts() int {
	n := 0
	for _, res := range r.results {
		if res.WasInserted() {
			n++
		}
	}
	return n
}

// NumUpdates returns the number of objects that updated existing rows.
func (r PutResults) NumUpdates() int {
	n := 0
	for _, res := range r.results {
		if res.WasUpdated() {
			n++
		}
	}
	return n
}

// AffectedCollections returns the union of all affected collections,
// preserving first-seen order.
func (r PutResults) AffectedCollections() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, res := range r.results {
		for _, c := range res.affected {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// DeleteResult reports the outcome of deleting one object or query match.
type DeleteResult struct {
	rowsDeleted int64
	affected    []string
}

// NewDeleteResult creates a DeleteResult.
func NewDeleteResult(rowsDeleted int64, affectedCollections ...string) DeleteResult {
	return DeleteResult{rowsDeleted: rowsDeleted, affected: affectedCollections}
}

// RowsDeleted returns the number of rows removed.
func (r DeleteResult) RowsDeleted() int64 { return r.rowsDeleted }

// AffectedCollections returns the collections the delete touched.
func (r DeleteResult) AffectedCollections() []string { return r.affected }

// DeleteResults aggregates the outcomes of a collection delete.
type DeleteResults struct {
	results []DeleteResult
}

// NewDeleteResults creates a DeleteResults from per-object outcomes in
// input order.
func NewDeleteResults(results []DeleteResult) DeleteResults {
	return DeleteResults{results: results}
}

// Results returns the per-object outcomes in input order.
func (r DeleteResults) Results() []DeleteResult { return r.results }

// RowsDeleted returns the total number of rows removed.
func (r DeleteResults) RowsDeleted() int64 {
	var n int64
	for _, res := range r.results {
		n += res.rowsDeleted
	}
	return n
}

// AffectedCollections returns the union of all affected collections,
// preserving first-seen order.
func (r DeleteResults) AffectedCollections() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, res := range r.results {
		for _, c := range res.affected {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
