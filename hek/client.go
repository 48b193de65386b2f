// Package hek implements a typed client for the Heliophysics Event
// Knowledgebase: query compilation, paginated JSON fetching, row
// deduplication, and normalization of the raw tabular results into columns
// carrying physical units, parsed timestamps, and sky regions.
package hek

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	gojson "github.com/goccy/go-json"

	"heliocat/hek/attrs"
	"heliocat/internal/config"
	"heliocat/table"
)

// Client queries the event catalog over HTTP, handling pagination and
// multi-query merging.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// NewClient creates a client for the configured catalog endpoint. A nil
// logger falls back to slog.Default().
func NewClient(cfg *config.Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)
	return &Client{http: rc, log: log}
}

// defaultParams are the catalog's expected search parameters: JSON output,
// column-typed results, any event type, full-disk spatial region.
func defaultParams() map[string]string {
	return map[string]string{
		"cosec":          "2",
		"cmd":            "search",
		"type":           "column",
		"event_type":     "**",
		"event_coordsys": "helioprojective",
		"x1":             "-5000",
		"x2":             "5000",
		"y1":             "-5000",
		"y2":             "5000",
	}
}

// Search compiles the query expression (arguments are ANDed), downloads
// every page of every disjunctive alternative, deduplicates the merged rows,
// and returns the normalized result table.
func (c *Client) Search(ctx context.Context, query ...attrs.Attr) (*table.Table, error) {
	sets, err := attrs.Compile(query...)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	for _, qs := range sets {
		params := defaultParams()
		for k, v := range qs {
			// The catalog expects opN rather than operatorN on the wire.
			if strings.HasPrefix(k, "operator") {
				k = "op" + strings.TrimPrefix(k, "operator")
			}
			params[k] = v
		}
		got, err := c.download(ctx, params)
		if err != nil {
			return nil, err
		}
		rows = append(rows, got...)
	}
	return BuildTable(Dedupe(rows))
}

type searchResponse struct {
	Result  []map[string]any `json:"result"`
	Overmax bool             `json:"overmax"`
}

// download fetches all pages for one query-parameter set, following the
// catalog's overmax flag.
func (c *Client) download(ctx context.Context, params map[string]string) ([]map[string]any, error) {
	var rows []map[string]any
	for page := 1; ; page++ {
		params["page"] = strconv.Itoa(page)
		c.log.Debug("fetching catalog page", "page", page, "event_type", params["event_type"])
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get("")
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetch page %d: unexpected status %s", page, resp.Status())
		}
		var body searchResponse
		if err := gojson.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("decode page %d: %w", page, err)
		}
		rows = append(rows, body.Result...)
		if !body.Overmax {
			return rows, nil
		}
	}
}

// VOEvent fetches the raw VOEvent XML document for one event record by its
// archive identifier. The document is returned undecoded.
func (c *Client) VOEvent(ctx context.Context, archiveID string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"cmd":   "export-voevent",
			"cosec": "1",
			"ivorn": archiveID,
		}).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("export voevent %s: %w", archiveID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("export voevent %s: unexpected status %s", archiveID, resp.Status())
	}
	return resp.Body(), nil
}
