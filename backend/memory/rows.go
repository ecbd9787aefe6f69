/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"fmt"

	"github.com/suparena/storekit/backend"
)

// memRows implements backend.Rows over a materialized result set.
type memRows struct {
	columns []string
	rows    []backend.RowData
	idx     int
	closed  bool
}

func newRows(columns []string, rows []backend.RowData) *memRows {
	return &memRows{columns: columns, rows: rows, idx: -1}
}

func (r *memRows) Next() bool {
	if r.closed || r.idx+1 >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *memRows) Scan(dest ...any) error {
	if r.closed {
		return fmt.Errorf("memory rows: scan after close")
	}
	if r.idx < 0 || r.idx >= len(r.rows) {
		return fmt.Errorf("memory rows: scan without next")
	}
	if len(dest) != len(r.columns) {
		return fmt.Errorf("memory rows: expected %d destinations, got %d", len(r.columns), len(dest))
	}
	row := r.rows[r.idx]
	for i, col := range r.columns {
		if err := assign(dest[i], row[col]); err != nil {
			return fmt.Errorf("memory rows: column %q: %w", col, err)
		}
	}
	return nil
}

func (r *memRows) Columns() ([]string, error) {
	cols := make([]string, len(r.columns))
	copy(cols, r.columns)
	return cols, nil
}

func (r *memRows) Err() error { return nil }

func (r *memRows) Close() error {
	r.closed = true
	return nil
}

// assign copies value into the destination pointer with the scalar
// conversions database/sql performs for the common types.
func assign(dest, value any) error {
	switch d := dest.(type) {
	case *any:
		*d = value
		return nil
	case *string:
		if s, ok := value.(string); ok {
			*d = s
			return nil
		}
	case *int64:
		if i, ok := asInt64(value); ok {
			*d = i
			return nil
		}
	case *int:
		if i, ok := asInt64(value); ok {
			*d = int(i)
			return nil
		}
	case *float64:
		if f, ok := asFloat64(value); ok {
			*d = f
			return nil
		}
	case *bool:
		switch v := value.(type) {
		case bool:
			*d = v
			return nil
		case int64:
			*d = v != 0
			return nil
		}
	case *[]byte:
		if b, ok := value.([]byte); ok {
			*d = append([]byte(nil), b...)
			return nil
		}
	default:
		return fmt.Errorf("unsupported destination type %T", dest)
	}
	return fmt.Errorf("cannot assign %T to %T", value, dest)
}
