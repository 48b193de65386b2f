package units

import (
	"fmt"
	"math"
)

// Unit is a canonical physical unit: a scale factor to SI base units plus a
// dimension vector. Units are plain values; composing them never mutates
// shared state.
type Unit struct {
	Name  string  // label as resolved, e.g. "arcsec" or "erg/cm^2"
	Scale float64 // factor converting one of this unit to SI base units
	Dim   Dim
}

// Mul returns the product of two units.
func (u Unit) Mul(o Unit) Unit {
	return Unit{Name: u.Name + " " + o.Name, Scale: u.Scale * o.Scale, Dim: u.Dim.Mul(o.Dim)}
}

// Div returns the quotient of two units.
func (u Unit) Div(o Unit) Unit {
	return Unit{Name: u.Name + " / " + o.Name, Scale: u.Scale / o.Scale, Dim: u.Dim.Div(o.Dim)}
}

// Pow returns the unit raised to an integer power.
func (u Unit) Pow(n int) Unit {
	return Unit{Name: u.Name, Scale: math.Pow(u.Scale, float64(n)), Dim: u.Dim.Pow(n)}
}

// Equal reports whether two units have the same dimension and the same scale
// within a relative tolerance.
func (u Unit) Equal(o Unit) bool {
	if u.Dim != o.Dim {
		return false
	}
	if u.Scale == o.Scale {
		return true
	}
	diff := math.Abs(u.Scale - o.Scale)
	return diff <= 1e-9*math.Max(math.Abs(u.Scale), math.Abs(o.Scale))
}

func (u Unit) String() string { return u.Name }

// Compatible reports whether a quantity in this unit can be converted to the
// other unit.
func (u Unit) Compatible(o Unit) bool { return u.Dim == o.Dim }

var (
	dimLength     = Dim{Length: 1}
	dimMass       = Dim{Mass: 1}
	dimTime       = Dim{Time: 1}
	dimCurrent    = Dim{Current: 1}
	dimTemp       = Dim{Temp: 1}
	dimAngle      = Dim{Angle: 1}
	dimSolidAngle = Dim{SolidAngle: 1}
	dimFreq       = Dim{Time: -1}
	dimArea       = Dim{Length: 2}
	dimVolume     = Dim{Length: 3}
	dimEnergy     = Dim{Mass: 1, Length: 2, Time: -2}
	dimPower      = Dim{Mass: 1, Length: 2, Time: -3}
	dimMagFlux    = Dim{Mass: 1, Length: 2, Time: -2, Current: -1}
	dimMagDensity = Dim{Mass: 1, Time: -2, Current: -1}
)

func def(name string, scale float64, dim Dim) Unit {
	return Unit{Name: name, Scale: scale, Dim: dim}
}

// baseUnits is the fixed catalog of recognized unit symbols. SI base is
// (m, kg, s, A, K, rad, sr). Symbols are matched case-sensitively; case
// normalization is the resolver's job.
var baseUnits = map[string]Unit{
	// length
	"m":        def("m", 1, dimLength),
	"angstrom": def("angstrom", 1e-10, dimLength),
	"Angstrom": def("Angstrom", 1e-10, dimLength),
	"AA":       def("AA", 1e-10, dimLength),
	"AU":       def("AU", 1.495978707e11, dimLength),
	"au":       def("au", 1.495978707e11, dimLength),
	"R_sun":    def("R_sun", 6.957e8, dimLength),
	"Rsun":     def("Rsun", 6.957e8, dimLength),
	"pc":       def("pc", 3.0856775814913673e16, dimLength),
	// mass
	"g": def("g", 1e-3, dimMass),
	// time
	"s":   def("s", 1, dimTime),
	"min": def("min", 60, dimTime),
	"h":   def("h", 3600, dimTime),
	"d":   def("d", 86400, dimTime),
	"yr":  def("yr", 3.1557e7, dimTime),
	// current, temperature
	"A": def("A", 1, dimCurrent),
	"K": def("K", 1, dimTemp),
	// angles
	"rad":    def("rad", 1, dimAngle),
	"deg":    def("deg", math.Pi / 180, dimAngle),
	"arcmin": def("arcmin", math.Pi / 180 / 60, dimAngle),
	"arcsec": def("arcsec", math.Pi / 180 / 3600, dimAngle),
	"mas":    def("mas", math.Pi / 180 / 3600 / 1000, dimAngle),
	"sr":     def("sr", 1, dimSolidAngle),
	// frequency, energy, power
	"Hz":  def("Hz", 1, dimFreq),
	"J":   def("J", 1, dimEnergy),
	"erg": def("erg", 1e-7, dimEnergy),
	"eV":  def("eV", 1.602176634e-19, dimEnergy),
	"W":   def("W", 1, dimPower),
	// magnetism
	"Wb": def("Wb", 1, dimMagFlux),
	"Mx": def("Mx", 1e-8, dimMagFlux),
	"T":  def("T", 1, dimMagDensity),
	"G":  def("G", 1e-4, dimMagDensity),
	// volume
	"l": def("l", 1e-3, dimVolume),
}

// prefixable lists the symbols that accept SI prefixes.
var prefixable = map[string]bool{
	"m": true, "g": true, "s": true, "A": true, "K": true,
	"Hz": true, "J": true, "W": true, "eV": true, "l": true, "pc": true,
}

var siPrefixes = map[string]float64{
	"y": 1e-24, "z": 1e-21, "a": 1e-18, "f": 1e-15, "p": 1e-12,
	"n": 1e-9, "u": 1e-6, "µ": 1e-6, "m": 1e-3, "c": 1e-2, "d": 1e-1,
	"da": 1e1, "h": 1e2, "k": 1e3, "M": 1e6, "G": 1e9,
	"T": 1e12, "P": 1e15, "E": 1e18,
}

// Lookup resolves a single symbol from the fixed catalog, without alias or
// custom-unit handling. It is how frame-mandated axis units (arcsec, R_sun,
// AU, deg) are obtained.
func Lookup(sym string) (Unit, error) {
	if u, ok := lookupSymbol(sym); ok {
		return u, nil
	}
	return Unit{}, fmt.Errorf("unknown unit symbol %q", sym)
}

// lookupSymbol resolves a single unit symbol, trying an exact catalog match
// before peeling an SI prefix off the front.
func lookupSymbol(sym string) (Unit, bool) {
	if u, ok := baseUnits[sym]; ok {
		return u, true
	}
	// Longest prefix first so "da" wins over "d"+"a".
	for _, plen := range []int{2, 1} {
		if len(sym) <= plen {
			continue
		}
		factor, ok := siPrefixes[sym[:plen]]
		if !ok {
			continue
		}
		base, ok := baseUnits[sym[plen:]]
		if !ok || !prefixable[sym[plen:]] {
			continue
		}
		return Unit{Name: sym, Scale: factor * base.Scale, Dim: base.Dim}, true
	}
	return Unit{}, false
}
