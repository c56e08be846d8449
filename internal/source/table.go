package source

// Table is an in-memory row set with named columns. Rows may be ragged;
// Cell returns Missing for any column a row does not cover.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// Empty returns a zero-row table with the given column schema.
func Empty(columns ...string) Table {
	return Table{Columns: columns}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, column name). Absent columns and short
// rows both yield the missing cell, so callers never distinguish "column
// not in the file" from "value not in the row".
func (t Table) Cell(row int, column string) Cell {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return Missing()
	}
	cells := t.Rows[row]
	if idx >= len(cells) {
		return Missing()
	}
	return cells[idx]
}
