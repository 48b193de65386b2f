package hek

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"heliocat/domain"
	"heliocat/region"
	"heliocat/table"
	"heliocat/units"
)

// timeColumns are the known time columns of the event schema.
var timeColumns = []string{"event_endtime", "event_starttime", "event_peaktime"}

var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// TimeLayout is the display layout for normalized timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// normalizeTimes rewrites each known time column into parsed timestamps when
// the column is fully populated. A single empty-string cell leaves the whole
// column as raw strings; masked (nil) cells do not block parsing and pass
// through unchanged.
func normalizeTimes(t *table.Table) error {
	for _, name := range timeColumns {
		col := t.Column(name)
		if col == nil {
			continue
		}
		blocked := false
		for _, cell := range col.Cells {
			if s, ok := cell.(string); ok && s == "" {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		buf := make([]any, len(col.Cells))
		for idx, cell := range col.Cells {
			if cell == nil {
				continue
			}
			ts, err := parseEventTime(cell)
			if err != nil {
				return fmt.Errorf("column %s row %d: %w", name, idx, err)
			}
			buf[idx] = ts
		}
		if err := t.SetCells(name, buf); err != nil {
			return err
		}
	}
	return nil
}

// parseEventTime parses a raw time cell. An already-parsed timestamp is
// returned as-is, which makes normalization idempotent.
func parseEventTime(cell any) (time.Time, error) {
	switch v := cell.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse time %q", v)
	default:
		return time.Time{}, fmt.Errorf("cannot parse time from %T value", cell)
	}
}

// annotate walks the descriptors and rewrites each matching column into
// unit-bearing (or polygon) cells, resolving the unit per row from the
// column's unit indicator. Unit-indicator columns are dropped at the end.
func annotate(t *table.Table, descs []Descriptor, isCoord bool, uc *units.Context) error {
	for _, d := range descs {
		if d.Kind == KindUnitIndicator || d.Kind == KindPlain {
			continue
		}
		if !t.Has(d.Name) {
			continue
		}

		indicator := t.Column(indicatorColumn(d, isCoord))
		if indicator == nil {
			// No unit source in this result set; the column stays raw.
			continue
		}

		if d.Kind != KindChaincode {
			if err := setDisplayUnit(t, d, indicator, uc); err != nil {
				return err
			}
		}

		col := t.Column(d.Name)
		buf := make([]any, t.Len())
		for idx, cell := range col.Cells {
			if table.IsEmpty(cell) {
				buf[idx] = cell
				continue
			}
			rawUnit := cellString(indicator.Cells[idx])
			if rawUnit == "" && d.Kind != KindChaincode {
				// No usable indicator on this row; leave the cell
				// unresolved rather than failing. Chaincodes still parse:
				// their axis units come from the frame, and the one frame
				// that reads the label (icrs) fails cleanly on an empty one.
				buf[idx] = cell
				continue
			}
			out, err := annotateCell(d, cell, rawUnit, uc)
			if err != nil {
				return atRow(err, idx)
			}
			buf[idx] = out
		}
		if err := t.SetCells(d.Name, buf); err != nil {
			return err
		}
	}

	for _, d := range descs {
		if d.Kind == KindUnitIndicator {
			t.Delete(d.Name)
		}
	}
	return nil
}

func annotateCell(d Descriptor, cell any, rawUnit string, uc *units.Context) (any, error) {
	if d.Kind == KindChaincode {
		return region.ParseChaincode(cellString(cell), d.Frame, rawUnit, uc)
	}
	var (
		u   units.Unit
		err error
	)
	if d.Kind == KindCoord {
		u, err = uc.ResolveCoord(rawUnit, d.Axis)
	} else {
		u, err = uc.Resolve(rawUnit)
	}
	if err != nil {
		return nil, err
	}
	v, err := cellFloat(cell)
	if err != nil {
		return nil, domain.ErrUnitConversion(rawUnit, "cannot apply unit %s to %v: %v", rawUnit, cell, err)
	}
	return units.NewQuantity(v, u), nil
}

// setDisplayUnit resolves a representative unit for the whole column from
// the first row whose indicator cell is non-empty and whose column unit is
// already set. This mirrors the catalog's historical behavior: it is a
// display convenience and is silently lossy when per-row units differ.
func setDisplayUnit(t *table.Table, d Descriptor, indicator *table.Column, uc *units.Context) error {
	col := t.Column(d.Name)
	for idx := 0; idx < t.Len(); idx++ {
		rawUnit := cellString(indicator.Cells[idx])
		if rawUnit == "" || col.Unit == nil {
			continue
		}
		var (
			u   units.Unit
			err error
		)
		if d.Kind == KindCoord {
			u, err = uc.ResolveCoord(rawUnit, d.Axis)
		} else {
			u, err = uc.Resolve(rawUnit)
		}
		if err != nil {
			return atRow(err, idx)
		}
		col.Unit = &u
		break
	}
	return nil
}

func indicatorColumn(d Descriptor, isCoord bool) string {
	if isCoord && d.Kind != KindChaincode {
		return coordUnitColumn
	}
	return d.UnitProp
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func cellFloat(cell any) (float64, error) {
	switch v := cell.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("non-numeric %T value", cell)
	}
}

// atRow stamps the row index onto a typed annotation error.
func atRow(err error, idx int) error {
	var parse *domain.UnitParseError
	if errors.As(err, &parse) && parse.Row < 0 {
		parse.Row = idx
	}
	var conv *domain.UnitConversionError
	if errors.As(err, &conv) && conv.Row < 0 {
		conv.Row = idx
	}
	var chain *domain.MalformedChaincodeError
	if errors.As(err, &chain) && chain.Row < 0 {
		chain.Row = idx
	}
	return err
}
