/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"sort"
	"strconv"
	"strings"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/queries"
)

// buildSelect assembles the SELECT statement and its arguments for q.
func buildSelect(q queries.Query) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if len(q.Columns) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(q.Columns, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(q.Collection)

	if q.Where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where)
	}
	if q.GroupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(q.GroupBy)
	}
	if q.Having != "" {
		sb.WriteString(" HAVING ")
		sb.WriteString(q.Having)
	}
	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.OrderBy)
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(q.Limit))
	}
	return sb.String(), q.WhereArgs
}

// buildInsert assembles the INSERT statement for the row data. Columns are
// emitted in sorted order so statements are deterministic.
func buildInsert(q queries.InsertQuery, data backend.RowData) (string, []any) {
	columns := sortedColumns(data)

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(q.Collection)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES (")

	args := make([]any, 0, len(columns))
	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		args = append(args, data[col])
	}
	sb.WriteString(")")
	return sb.String(), args
}

// buildUpdate assembles the UPDATE statement for the row data. Columns are
// emitted in sorted order so statements are deterministic.
func buildUpdate(q queries.UpdateQuery, data backend.RowData) (string, []any) {
	columns := sortedColumns(data)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(q.Collection)
	sb.WriteString(" SET ")

	args := make([]any, 0, len(columns)+len(q.WhereArgs))
	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col)
		sb.WriteString(" = ?")
		args = append(args, data[col])
	}
	if q.Where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where)
		args = append(args, q.WhereArgs...)
	}
	return sb.String(), args
}

// buildDelete assembles the DELETE statement for q.
func buildDelete(q queries.DeleteQuery) (string, []any) {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(q.Collection)
	if q.Where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.Where)
	}
	return sb.String(), q.WhereArgs
}

func sortedColumns(data backend.RowData) []string {
	columns := make([]string, 0, len(data))
	for col := range data {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
