// Package domain defines the error types surfaced across the catalog client
// boundary.
package domain

import "fmt"

// UnitParseError indicates a raw unit label matched no alias, custom
// definition, or standard unit expression.
type UnitParseError struct {
	Raw string
	Row int // row index when raised during column annotation, -1 otherwise
}

func (e *UnitParseError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("cannot parse unit %q (row %d)", e.Raw, e.Row)
	}
	return fmt.Sprintf("cannot parse unit %q", e.Raw)
}

// UnitConversionError indicates a resolved unit is dimensionally incompatible
// with the value it was applied to.
type UnitConversionError struct {
	Raw     string
	Row     int
	Message string
}

func (e *UnitConversionError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s (row %d)", e.Message, e.Row)
	}
	return e.Message
}

// MalformedChaincodeError indicates a chaincode string without the expected
// "((" and "))" vertex-list delimiters.
type MalformedChaincodeError struct {
	Raw string
	Row int
}

func (e *MalformedChaincodeError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("malformed chaincode %q (row %d)", e.Raw, e.Row)
	}
	return fmt.Sprintf("malformed chaincode %q", e.Raw)
}

// ErrUnitParse creates a UnitParseError for the given raw label.
func ErrUnitParse(raw string) *UnitParseError {
	return &UnitParseError{Raw: raw, Row: -1}
}

// ErrUnitConversion creates a UnitConversionError with a formatted message.
func ErrUnitConversion(raw, format string, args ...any) *UnitConversionError {
	return &UnitConversionError{Raw: raw, Row: -1, Message: fmt.Sprintf(format, args...)}
}

// ErrMalformedChaincode creates a MalformedChaincodeError for the given value.
func ErrMalformedChaincode(raw string) *MalformedChaincodeError {
	return &MalformedChaincodeError{Raw: raw, Row: -1}
}
