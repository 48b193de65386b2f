// Package table provides the ordered, named-column container the
// normalization pipeline operates on. Cells are loosely typed: strings and
// numbers on the way in; quantities, timestamps, and sky regions on the way
// out. A nil cell or the empty string marks a missing value.
package table

import (
	"fmt"
	"sort"

	"heliocat/units"
)

// Column is an ordered sequence of cells plus an optional representative
// display unit. The display unit is a column-level convenience; per-cell
// units may differ from it.
type Column struct {
	Name  string
	Unit  *units.Unit
	Cells []any
}

// Table is an ordered collection of equal-length named columns.
type Table struct {
	cols  []*Column
	index map[string]int
}

// New creates an empty table.
func New() *Table {
	return &Table{index: map[string]int{}}
}

// FromRows assembles a table from raw row mappings. Columns are the union of
// keys across all rows in sorted name order (row mappings carry no usable
// order of their own); a key absent from a row yields a nil cell for that
// row.
func FromRows(rows []map[string]any) *Table {
	t := New()
	if len(rows) == 0 {
		return t
	}
	union := map[string]bool{}
	for _, row := range rows {
		for key := range row {
			union[key] = true
		}
	}
	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		t.index[key] = len(t.cols)
		t.cols = append(t.cols, &Column{Name: key, Cells: make([]any, len(rows))})
	}
	for i, row := range rows {
		for key, val := range row {
			t.cols[t.index[key]].Cells[i] = val
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// ColNames returns the column names in table order.
func (t *Table) ColNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.cols[i]
}

// Columns returns the columns in table order.
func (t *Table) Columns() []*Column { return t.cols }

// SetCells swaps a fully built cell buffer into the named column. The buffer
// must match the table's row count; rewrites are staged in a separate buffer
// precisely so the swap happens after the full scan.
func (t *Table) SetCells(name string, cells []any) error {
	c := t.Column(name)
	if c == nil {
		return fmt.Errorf("no column %q", name)
	}
	if len(cells) != t.Len() {
		return fmt.Errorf("column %q: %d cells for %d rows", name, len(cells), t.Len())
	}
	c.Cells = cells
	return nil
}

// Delete removes the named column, preserving the order of the rest. Missing
// columns are ignored.
func (t *Table) Delete(name string) {
	i, ok := t.index[name]
	if !ok {
		return
	}
	t.cols = append(t.cols[:i], t.cols[i+1:]...)
	delete(t.index, name)
	for j := i; j < len(t.cols); j++ {
		t.index[t.cols[j].Name] = j
	}
}

// Row returns a view over one row.
func (t *Table) Row(i int) Row { return Row{t: t, idx: i} }

// Row is an indexed view over one table row.
type Row struct {
	t   *Table
	idx int
}

// Index returns the row's position in the table.
func (r Row) Index() int { return r.idx }

// Get returns the cell for the named column, or nil when the column is
// absent.
func (r Row) Get(name string) any {
	c := r.t.Column(name)
	if c == nil {
		return nil
	}
	return c.Cells[r.idx]
}

// GetDefault returns the cell for the named column, or def when the column
// is absent or the cell is empty.
func (r Row) GetDefault(name string, def any) any {
	v := r.Get(name)
	if IsEmpty(v) {
		return def
	}
	return v
}

// IsEmpty reports whether a cell holds the empty-value marker: nil or the
// empty string.
func IsEmpty(cell any) bool {
	if cell == nil {
		return true
	}
	s, ok := cell.(string)
	return ok && s == ""
}
