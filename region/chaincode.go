// Package region reconstructs closed polygonal sky regions from the
// catalog's chaincode strings.
package region

import (
	"strconv"
	"strings"

	"heliocat/domain"
	"heliocat/units"
)

// Frame names with dedicated axis-unit semantics. Any other frame falls back
// to degrees on both axes.
const (
	FrameHelioprojective = "helioprojective"
	FrameHeliocentric    = "heliocentric"
	FrameICRS            = "icrs"
)

// Representation of the vertex coordinates.
const (
	RepresentationSpherical   = "spherical"
	RepresentationCylindrical = "cylindrical"
)

// Vertex is one polygon corner. C3 is set only for cylindrical heliocentric
// regions, where every vertex sits at a fixed radial distance.
type Vertex struct {
	C1 units.Quantity
	C2 units.Quantity
	C3 *units.Quantity
}

// SkyRegion is a closed polygon over sky coordinates in a named frame. The
// boundary closes from the last vertex back to the first.
type SkyRegion struct {
	Frame          string
	Representation string
	Vertices       []Vertex
}

// ParseChaincode converts a delimited string of coordinate pairs into a
// closed polygon, selecting per-axis units by frame. The raw unit label is
// consulted only for the icrs frame. It fails with a MalformedChaincodeError
// when the "((...))" vertex-list delimiters are missing or a vertex is not a
// pair of numbers, and with a UnitConversionError when the resolved axis
// units do not fit the frame's coordinate dimensions.
func ParseChaincode(value, frame, rawUnit string, uc *units.Context) (*SkyRegion, error) {
	inner, err := extractVertexList(value)
	if err != nil {
		return nil, err
	}

	c1Unit := baseUnit("deg")
	c2Unit := baseUnit("deg")
	representation := RepresentationSpherical
	switch frame {
	case FrameHelioprojective:
		c1Unit = baseUnit("arcsec")
		c2Unit = baseUnit("arcsec")
	case FrameHeliocentric:
		// Cylindrical: rho in solar radii, phi in degrees, z fixed at 1 AU.
		c1Unit = baseUnit("R_sun")
		representation = RepresentationCylindrical
	case FrameICRS:
		c1Unit, err = uc.Resolve(rawUnit)
		if err != nil {
			return nil, err
		}
		c2Unit = c1Unit
	}

	if err := checkAxisUnits(frame, representation, c1Unit, c2Unit); err != nil {
		return nil, err
	}

	var vertices []Vertex
	for _, pair := range strings.Split(inner, ",") {
		fields := strings.Fields(pair)
		if len(fields) < 2 {
			return nil, domain.ErrMalformedChaincode(value)
		}
		c1, err1 := strconv.ParseFloat(fields[0], 64)
		c2, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, domain.ErrMalformedChaincode(value)
		}
		v := Vertex{
			C1: units.NewQuantity(c1, c1Unit),
			C2: units.NewQuantity(c2, c2Unit),
		}
		if representation == RepresentationCylindrical {
			z := units.NewQuantity(1, baseUnit("AU"))
			v.C3 = &z
		}
		vertices = append(vertices, v)
	}

	return &SkyRegion{
		Frame:          frame,
		Representation: representation,
		Vertices:       vertices,
	}, nil
}

// extractVertexList returns the substring between the first "((" and the
// following "))".
func extractVertexList(value string) (string, error) {
	open := strings.Index(value, "((")
	if open < 0 {
		return "", domain.ErrMalformedChaincode(value)
	}
	rest := value[open+2:]
	end := strings.Index(rest, "))")
	if end < 0 {
		return "", domain.ErrMalformedChaincode(value)
	}
	return rest[:end], nil
}

// checkAxisUnits enforces the dimensional requirements of the frame's
// coordinate representation: spherical frames take angles on both axes,
// cylindrical frames take a length, an angle, and a length.
func checkAxisUnits(frame, representation string, c1, c2 units.Unit) error {
	angle := units.Dim{Angle: 1}
	length := units.Dim{Length: 1}
	if representation == RepresentationCylindrical {
		if c1.Dim != length {
			return domain.ErrUnitConversion(c1.Name,
				"unit %s is not a length for cylindrical frame %q", c1.Name, frame)
		}
		if c2.Dim != angle {
			return domain.ErrUnitConversion(c2.Name,
				"unit %s is not an angle for cylindrical frame %q", c2.Name, frame)
		}
		return nil
	}
	if c1.Dim != angle {
		return domain.ErrUnitConversion(c1.Name,
			"unit %s is not an angle for frame %q", c1.Name, frame)
	}
	if c2.Dim != angle {
		return domain.ErrUnitConversion(c2.Name,
			"unit %s is not an angle for frame %q", c2.Name, frame)
	}
	return nil
}

func baseUnit(sym string) units.Unit {
	u, err := units.Lookup(sym)
	if err != nil {
		panic(err)
	}
	return u
}
