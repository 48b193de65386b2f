package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"heliocat/hek"
	"heliocat/region"
	"heliocat/table"
	"heliocat/units"
)

// render writes the result table in the requested output format.
func render(w io.Writer, t *table.Table, output string, columns []string) error {
	switch output {
	case "table":
		return renderText(w, t, columns)
	case "json":
		enc := gojson.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(displayRows(t, columns))
	case "yaml":
		return yaml.NewEncoder(w).Encode(displayRows(t, columns))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func renderText(w io.Writer, t *table.Table, columns []string) error {
	names := selectColumns(t, columns)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, name := range names {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, name)
	}
	fmt.Fprintln(tw)
	for i := 0; i < t.Len(); i++ {
		for j, name := range names {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, displayCell(t.Column(name).Cells[i]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// displayRows flattens the table into one mapping per row with cells
// rendered for display.
func displayRows(t *table.Table, columns []string) []map[string]any {
	names := selectColumns(t, columns)
	rows := make([]map[string]any, t.Len())
	for i := range rows {
		row := make(map[string]any, len(names))
		for _, name := range names {
			row[name] = displayCell(t.Column(name).Cells[i])
		}
		rows[i] = row
	}
	return rows
}

func selectColumns(t *table.Table, columns []string) []string {
	if len(columns) == 0 {
		return t.ColNames()
	}
	names := make([]string, 0, len(columns))
	for _, name := range columns {
		if t.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

func displayCell(cell any) any {
	switch v := cell.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(hek.TimeLayout)
	case units.Quantity:
		return v.String()
	case *region.SkyRegion:
		return fmt.Sprintf("polygon[%s, %d vertices]", v.Frame, len(v.Vertices))
	default:
		return v
	}
}
