package units

import (
	"fmt"
	"math"

	"heliocat/domain"
)

// Quantity is a numeric value carrying a resolved unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity attaches a unit to a value.
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// SI returns the value expressed in SI base units.
func (q Quantity) SI() float64 {
	return q.Value * q.Unit.Scale
}

// To converts the quantity into the target unit. It fails with a
// UnitConversionError when the dimensions differ.
func (q Quantity) To(target Unit) (Quantity, error) {
	if !q.Unit.Compatible(target) {
		return Quantity{}, domain.ErrUnitConversion(target.Name,
			"cannot convert %s [%s] to %s [%s]", q.Unit.Name, q.Unit.Dim, target.Name, target.Dim)
	}
	return Quantity{Value: q.SI() / target.Scale, Unit: target}, nil
}

// Equal reports whether two quantities represent the same physical value,
// regardless of the units they are expressed in.
func (q Quantity) Equal(o Quantity) bool {
	if q.Unit.Dim != o.Unit.Dim {
		return false
	}
	a, b := q.SI(), o.SI()
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func (q Quantity) String() string {
	return fmt.Sprintf("%v %s", q.Value, q.Unit.Name)
}
