package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	rows := []map[string]any{
		{"b": "1", "a": 2.0},
		{"a": 3.0, "c": "x"},
	}
	tbl := FromRows(rows)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"a", "b", "c"}, tbl.ColNames())
	assert.Equal(t, []any{2.0, 3.0}, tbl.Column("a").Cells)
	// Keys absent from a row become nil cells.
	assert.Equal(t, []any{"1", nil}, tbl.Column("b").Cells)
	assert.Equal(t, []any{nil, "x"}, tbl.Column("c").Cells)
}

func TestFromRowsEmpty(t *testing.T) {
	tbl := FromRows(nil)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 0, tbl.NumCols())
}

func TestSetCells(t *testing.T) {
	tbl := FromRows([]map[string]any{{"a": "1"}, {"a": "2"}})

	require.NoError(t, tbl.SetCells("a", []any{"x", "y"}))
	assert.Equal(t, []any{"x", "y"}, tbl.Column("a").Cells)

	assert.Error(t, tbl.SetCells("a", []any{"too short"}))
	assert.Error(t, tbl.SetCells("missing", []any{"x", "y"}))
}

func TestDelete(t *testing.T) {
	tbl := FromRows([]map[string]any{{"a": 1.0, "b": 2.0, "c": 3.0}})

	tbl.Delete("b")
	assert.Equal(t, []string{"a", "c"}, tbl.ColNames())
	assert.True(t, tbl.Has("c"))
	assert.Equal(t, []any{3.0}, tbl.Column("c").Cells)

	// Deleting a missing column is a no-op.
	tbl.Delete("b")
	assert.Equal(t, 2, tbl.NumCols())
}

func TestRowAccessors(t *testing.T) {
	tbl := FromRows([]map[string]any{
		{"a": "one", "b": ""},
		{"a": "two"},
	})

	row := tbl.Row(0)
	assert.Equal(t, 0, row.Index())
	assert.Equal(t, "one", row.Get("a"))
	assert.Nil(t, row.Get("missing"))
	assert.Equal(t, "fallback", row.GetDefault("b", "fallback"))
	assert.Equal(t, "fallback", tbl.Row(1).GetDefault("b", "fallback"))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.False(t, IsEmpty("0"))
	assert.False(t, IsEmpty(0.0))
}
