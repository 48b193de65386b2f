package units

import (
	"fmt"
	"strings"
)

// Dim is a vector of base-dimension exponents. Angle and solid angle are
// tracked as dimensions of their own so that arcsec or steradian never
// silently cancel against dimensionless values.
type Dim struct {
	Length     int8
	Mass       int8
	Time       int8
	Current    int8
	Temp       int8
	Angle      int8
	SolidAngle int8
}

// Mul returns the dimension of a product of two units.
func (d Dim) Mul(o Dim) Dim {
	return Dim{
		Length:     d.Length + o.Length,
		Mass:       d.Mass + o.Mass,
		Time:       d.Time + o.Time,
		Current:    d.Current + o.Current,
		Temp:       d.Temp + o.Temp,
		Angle:      d.Angle + o.Angle,
		SolidAngle: d.SolidAngle + o.SolidAngle,
	}
}

// Div returns the dimension of a quotient of two units.
func (d Dim) Div(o Dim) Dim {
	return d.Mul(o.Pow(-1))
}

// Pow returns the dimension raised to an integer power.
func (d Dim) Pow(n int) Dim {
	m := int8(n)
	return Dim{
		Length:     d.Length * m,
		Mass:       d.Mass * m,
		Time:       d.Time * m,
		Current:    d.Current * m,
		Temp:       d.Temp * m,
		Angle:      d.Angle * m,
		SolidAngle: d.SolidAngle * m,
	}
}

// IsZero reports whether the dimension is dimensionless.
func (d Dim) IsZero() bool {
	return d == Dim{}
}

func (d Dim) String() string {
	var b strings.Builder
	part := func(sym string, exp int8) {
		if exp == 0 {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if exp == 1 {
			b.WriteString(sym)
			return
		}
		fmt.Fprintf(&b, "%s%d", sym, exp)
	}
	part("L", d.Length)
	part("M", d.Mass)
	part("T", d.Time)
	part("I", d.Current)
	part("K", d.Temp)
	part("A", d.Angle)
	part("SR", d.SolidAngle)
	if b.Len() == 0 {
		return "1"
	}
	return b.String()
}
