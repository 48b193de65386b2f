package hek

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	gojson "github.com/goccy/go-json"
)

//go:embed unit_properties.json coord_properties.json
var schemaFS embed.FS

// coordUnitColumn holds the unit labels for all coordinate columns of a row.
const coordUnitColumn = "event_coordunit"

// Kind discriminates the descriptor variants. The variant is decided once at
// load time instead of re-inspecting optional fields per row.
type Kind int

const (
	// KindPlain needs no annotation; the entry exists only to document the
	// column.
	KindPlain Kind = iota
	// KindUnit is a scalar column whose unit label lives in a sibling column.
	KindUnit
	// KindUnitIndicator is a column holding unit labels for another column;
	// it is dropped from the output table after use.
	KindUnitIndicator
	// KindCoord is a coordinate-axis column; its unit comes from the
	// declared axis of the shared event_coordunit label.
	KindCoord
	// KindChaincode is a string-encoded polygon boundary.
	KindChaincode
)

// Descriptor declares how one catalog column is annotated.
type Descriptor struct {
	Name     string
	Kind     Kind
	UnitProp string // sibling unit column for KindUnit and KindChaincode
	Axis     int    // 1..3 for KindCoord
	Frame    string // coordinate frame for KindChaincode
}

type rawDescriptor struct {
	Name        string `json:"name"`
	UnitProp    string `json:"unit_prop"`
	IsUnitProp  bool   `json:"is_unit_prop"`
	IsChaincode bool   `json:"is_chaincode"`
	Frame       string `json:"frame"`
}

type schemaDocument struct {
	Attributes []rawDescriptor `json:"attributes"`
}

var (
	schemaOnce       sync.Once
	schemaErr        error
	unitDescriptors  []Descriptor
	coordDescriptors []Descriptor
)

// UnitDescriptors returns the generic unit-attribute descriptors. The schema
// documents are loaded once per process and read-only afterwards.
func UnitDescriptors() ([]Descriptor, error) {
	loadSchemas()
	return unitDescriptors, schemaErr
}

// CoordDescriptors returns the coordinate and chaincode descriptors.
func CoordDescriptors() ([]Descriptor, error) {
	loadSchemas()
	return coordDescriptors, schemaErr
}

func loadSchemas() {
	schemaOnce.Do(func() {
		unitDescriptors, schemaErr = loadDescriptors("unit_properties.json", false)
		if schemaErr != nil {
			return
		}
		coordDescriptors, schemaErr = loadDescriptors("coord_properties.json", true)
	})
}

func loadDescriptors(name string, coord bool) ([]Descriptor, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	var doc schemaDocument
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", name, err)
	}
	descs := make([]Descriptor, 0, len(doc.Attributes))
	for _, raw := range doc.Attributes {
		d, err := classify(raw, coord)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		descs = append(descs, d)
	}
	return descs, nil
}

// classify turns a raw schema entry into its closed variant.
func classify(raw rawDescriptor, coord bool) (Descriptor, error) {
	d := Descriptor{Name: raw.Name, UnitProp: raw.UnitProp, Frame: raw.Frame}
	switch {
	case raw.IsUnitProp:
		// A chaincode flag on a unit-indicator entry is deliberately
		// ignored; the indicator wins and the column is dropped after use.
		d.Kind = KindUnitIndicator
	case raw.IsChaincode:
		if raw.Frame == "" {
			return d, fmt.Errorf("chaincode attribute %q has no frame", raw.Name)
		}
		d.Kind = KindChaincode
	case coord && strings.HasPrefix(raw.UnitProp, "coord") && strings.HasSuffix(raw.UnitProp, "_unit"):
		d.Kind = KindCoord
		switch raw.UnitProp {
		case "coord1_unit":
			d.Axis = 1
		case "coord2_unit":
			d.Axis = 2
		case "coord3_unit":
			d.Axis = 3
		default:
			return d, fmt.Errorf("coordinate attribute %q has unknown axis %q", raw.Name, raw.UnitProp)
		}
	case raw.UnitProp != "":
		d.Kind = KindUnit
	default:
		d.Kind = KindPlain
	}
	return d, nil
}
