package hek

import (
	"fmt"
	"time"

	"heliocat/hek/attrs"
	"heliocat/table"
)

// EventTime derives a time-range predicate from a result row, suitable for
// follow-up queries against observation archives.
func EventTime(r table.Row) (attrs.Time, error) {
	start, err := rowTime(r, "event_starttime")
	if err != nil {
		return attrs.Time{}, err
	}
	end, err := rowTime(r, "event_endtime")
	if err != nil {
		return attrs.Time{}, err
	}
	return attrs.Time{Start: start, End: end}, nil
}

// EventInstrument derives an instrument equality predicate from a result
// row. Rows observed by the catalog itself carry no usable instrument.
func EventInstrument(r table.Row) (attrs.Param, error) {
	instrument := cellString(r.Get("obs_instrument"))
	if instrument == "" || instrument == "HEK" {
		return attrs.Param{}, fmt.Errorf("row %d contains no instrument", r.Index())
	}
	return attrs.Field("obs_instrument").Equals(instrument), nil
}

func rowTime(r table.Row, name string) (time.Time, error) {
	cell := r.Get(name)
	if table.IsEmpty(cell) {
		return time.Time{}, fmt.Errorf("row %d has no %s", r.Index(), name)
	}
	ts, err := parseEventTime(cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("row %d: %w", r.Index(), err)
	}
	return ts, nil
}
