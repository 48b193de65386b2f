package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"heliocat/hek"
	"heliocat/hek/attrs"
	"heliocat/internal/config"
)

func newSearchCmd() *cobra.Command {
	var (
		start     string
		end       string
		eventType string
		wheres    []string
		columns   []string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog for events in a time range",
		Example: `  heliocat search --start 2011-08-09T07:23:56 --end 2011-08-09T12:40:29 --event-type FL
  heliocat search --start 2013-10-28 --end 2013-10-29 --event-type FL --where fl_goescls,>,M1.0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))

			query, err := buildQuery(start, end, eventType, wheres)
			if err != nil {
				return err
			}

			client := hek.NewClient(cfg, logger)
			result, err := client.Search(cmd.Context(), query...)
			if err != nil {
				return err
			}
			logger.Debug("search finished", "rows", result.Len(), "columns", result.NumCols())

			output, _ := cmd.Flags().GetString("output")
			return render(cmd.OutOrStdout(), result, output, columns)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "range start, e.g. 2011-08-09T07:23:56")
	cmd.Flags().StringVar(&end, "end", "", "range end")
	cmd.Flags().StringVar(&eventType, "event-type", "", "two-letter event code, or a comma list for any-of")
	cmd.Flags().StringArrayVar(&wheres, "where", nil, "field filter as param,op,value (repeatable)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to print (table output only; default all)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func buildQuery(start, end, eventType string, wheres []string) ([]attrs.Attr, error) {
	startTime, err := parseCLITime(start)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	endTime, err := parseCLITime(end)
	if err != nil {
		return nil, fmt.Errorf("--end: %w", err)
	}
	query := []attrs.Attr{attrs.Time{Start: startTime, End: endTime}}
	if eventType != "" {
		query = append(query, attrs.EventType{Codes: strings.ToLower(eventType)})
	}
	for _, w := range wheres {
		parts := strings.SplitN(w, ",", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("--where %q: want param,op,value", w)
		}
		op := parts[1]
		switch op {
		case attrs.OpEq, attrs.OpNotEq, attrs.OpLt, attrs.OpGt, attrs.OpLtEq, attrs.OpGtEq, attrs.OpLike:
		default:
			return nil, fmt.Errorf("--where %q: unknown operator %q", w, op)
		}
		query = append(query, attrs.Param{Name: parts[0], Op: op, Value: parts[2]})
	}
	return query, nil
}

var cliTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

func parseCLITime(s string) (time.Time, error) {
	for _, layout := range cliTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}
