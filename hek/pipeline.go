package hek

import (
	"sort"
	"strconv"
	"strings"

	"heliocat/table"
	"heliocat/units"
)

// BuildTable converts merged raw rows into a fully annotated table: base
// table, timestamp normalization, generic unit annotation, then coordinate
// and chaincode annotation. An empty input yields an empty table, never an
// error.
func BuildTable(rows []map[string]any) (*table.Table, error) {
	t := table.FromRows(rows)
	if t.Len() == 0 {
		return t, nil
	}
	if err := normalizeTimes(t); err != nil {
		return nil, err
	}

	// Alias and custom-unit scoping is re-established per call so parallel
	// builds cannot contaminate each other.
	uc := units.NewContext()

	unitDescs, err := UnitDescriptors()
	if err != nil {
		return nil, err
	}
	if err := annotate(t, unitDescs, false, uc); err != nil {
		return nil, err
	}

	coordDescs, err := CoordDescriptors()
	if err != nil {
		return nil, err
	}
	if err := annotate(t, coordDescs, true, uc); err != nil {
		return nil, err
	}
	return t, nil
}

// Dedupe removes structurally identical rows, keeping the first occurrence
// and preserving order. Two rows are identical when their frozen forms
// match; key order never matters.
func Dedupe(rows []map[string]any) []map[string]any {
	seen := map[string]bool{}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		key := freeze(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

// freeze renders a value into a canonical comparable form: map keys sorted,
// sequence order preserved, scalars tagged by type so "1" and 1 never
// collide.
func freeze(v any) string {
	var b strings.Builder
	freezeInto(&b, v)
	return b.String()
}

func freezeInto(b *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		b.WriteString("z")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("m{")
		for _, k := range keys {
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			freezeInto(b, val[k])
			b.WriteByte(',')
		}
		b.WriteByte('}')
	case []any:
		b.WriteString("l[")
		for _, elem := range val {
			freezeInto(b, elem)
			b.WriteByte(',')
		}
		b.WriteByte(']')
	case string:
		b.WriteByte('s')
		b.WriteString(strconv.Quote(val))
	case float64:
		b.WriteByte('n')
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case bool:
		b.WriteByte('b')
		b.WriteString(strconv.FormatBool(val))
	default:
		b.WriteByte('v')
		b.WriteString(strconv.Quote(cellString(val)))
	}
}
