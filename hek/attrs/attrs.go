// Package attrs implements the composable predicate expressions used to
// build event-catalog queries. Compiling an expression yields one or more
// flat query-parameter mappings; disjunctions multiply the mappings and the
// client merges and deduplicates the fetched results.
package attrs

import (
	"fmt"
	"strconv"
	"time"
)

// Comparison operators accepted by the catalog.
const (
	OpEq    = "="
	OpNotEq = "!="
	OpLt    = "<"
	OpGt    = ">"
	OpLtEq  = "<="
	OpGtEq  = ">="
	OpLike  = "like"
)

// TimeFormat is how instants are rendered into query parameters.
const TimeFormat = "2006-01-02T15:04:05"

// Attr is one node of a query expression.
type Attr interface {
	isAttr()
}

// Time restricts results to events overlapping [Start, End].
type Time struct {
	Start time.Time
	End   time.Time
}

func (Time) isAttr() {}

// EventType filters on the two-letter event code; a comma-joined list means
// any of the codes.
type EventType struct {
	Codes string
}

func (EventType) isAttr() {}

// Or of event types folds into a single comma-joined filter rather than
// fanning out into separate queries.
func (e EventType) Or(o EventType) EventType {
	return EventType{Codes: e.Codes + "," + o.Codes}
}

// Param is a single field comparison.
type Param struct {
	Name  string
	Op    string
	Value string
}

func (Param) isAttr() {}

// Field names an event property for comparison filters.
type Field string

func (f Field) compare(op string, value any) Param {
	return Param{Name: string(f), Op: op, Value: renderValue(value)}
}

// Equals builds an equality filter.
func (f Field) Equals(value any) Param { return f.compare(OpEq, value) }

// NotEquals builds an inequality filter.
func (f Field) NotEquals(value any) Param { return f.compare(OpNotEq, value) }

// Lt builds a less-than filter.
func (f Field) Lt(value any) Param { return f.compare(OpLt, value) }

// Gt builds a greater-than filter.
func (f Field) Gt(value any) Param { return f.compare(OpGt, value) }

// LtEq builds a less-than-or-equal filter.
func (f Field) LtEq(value any) Param { return f.compare(OpLtEq, value) }

// GtEq builds a greater-than-or-equal filter.
func (f Field) GtEq(value any) Param { return f.compare(OpGtEq, value) }

// Like builds a pattern-match filter.
func (f Field) Like(value any) Param { return f.compare(OpLike, value) }

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// And is the conjunction of sub-expressions.
type And struct {
	Elems []Attr
}

func (And) isAttr() {}

// Or is the disjunction of sub-expressions. Each alternative becomes its own
// query; results are merged and deduplicated downstream.
type Or struct {
	Elems []Attr
}

func (Or) isAttr() {}

// Compile flattens an expression (top-level arguments are ANDed) into one
// query-parameter mapping per disjunctive alternative. Comparison parameters
// are numbered param0/operator0/value0 onward in expression order. Combining
// two event-type filters in one conjunction is an error.
func Compile(query ...Attr) ([]map[string]string, error) {
	alternatives, err := expand(And{Elems: query})
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, 0, len(alternatives))
	for _, leaves := range alternatives {
		params := map[string]string{}
		nparams := 0
		eventTypeSet := false
		for _, leaf := range leaves {
			switch a := leaf.(type) {
			case Time:
				params["event_starttime"] = a.Start.Format(TimeFormat)
				params["event_endtime"] = a.End.Format(TimeFormat)
			case EventType:
				if eventTypeSet {
					return nil, fmt.Errorf("only one event-type filter is allowed per conjunction")
				}
				eventTypeSet = true
				params["event_type"] = a.Codes
			case Param:
				n := strconv.Itoa(nparams)
				params["param"+n] = a.Name
				params["operator"+n] = a.Op
				params["value"+n] = a.Value
				nparams++
			default:
				return nil, fmt.Errorf("unsupported attribute %T", leaf)
			}
		}
		out = append(out, params)
	}
	return out, nil
}

// expand rewrites an expression into disjunctive normal form: a list of
// alternatives, each a flat list of leaf attributes.
func expand(a Attr) ([][]Attr, error) {
	switch node := a.(type) {
	case And:
		alts := [][]Attr{{}}
		for _, elem := range node.Elems {
			sub, err := expand(elem)
			if err != nil {
				return nil, err
			}
			var next [][]Attr
			for _, left := range alts {
				for _, right := range sub {
					merged := make([]Attr, 0, len(left)+len(right))
					merged = append(merged, left...)
					merged = append(merged, right...)
					next = append(next, merged)
				}
			}
			alts = next
		}
		return alts, nil
	case Or:
		if folded, ok := foldEventTypes(node); ok {
			return [][]Attr{{folded}}, nil
		}
		var alts [][]Attr
		for _, elem := range node.Elems {
			sub, err := expand(elem)
			if err != nil {
				return nil, err
			}
			alts = append(alts, sub...)
		}
		return alts, nil
	default:
		return [][]Attr{{a}}, nil
	}
}

// foldEventTypes collapses a disjunction made solely of event types into a
// single comma-joined filter.
func foldEventTypes(node Or) (EventType, bool) {
	if len(node.Elems) == 0 {
		return EventType{}, false
	}
	var folded EventType
	for i, elem := range node.Elems {
		et, ok := elem.(EventType)
		if !ok {
			return EventType{}, false
		}
		if i == 0 {
			folded = et
		} else {
			folded = folded.Or(et)
		}
	}
	return folded, true
}
