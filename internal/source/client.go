// Package source implements the REST adapter that extracts raw tabular
// records from the upstream analytics store.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

// ErrMissingCredentials is returned when the adapter is constructed without
// an endpoint URL or service key. This is a fatal startup condition for the
// extraction path only; the rest of the pipeline has no use for credentials.
var ErrMissingCredentials = errors.New("source: endpoint URL and service key are required")

// Client fetches rows from the upstream REST API. Fetch failures degrade to
// empty result sets and a logged warning; the pipeline decides which tables
// are structurally required.
//
// The HTTP client deliberately carries no timeout, matching the upstream
// export scripts. A hanging request hangs the run.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a source adapter from the two external credentials.
func NewClient(baseURL, serviceKey string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" || serviceKey == "" {
		return nil, ErrMissingCredentials
	}
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// Events fetches up to limit rows from analytics_events.
func (c *Client) Events(limit int) []RawEvent {
	var rows []RawEvent
	if !c.fetch(TableEvents, limit, &rows) {
		return nil
	}
	c.logger.Info("Extracted source table",
		slog.String("table", TableEvents),
		slog.Int("rows", len(rows)))
	return rows
}

// DailyUsage fetches up to limit rows from daily_tool_usage.
func (c *Client) DailyUsage(limit int) []DailyUsage {
	var rows []DailyUsage
	if !c.fetch(TableDailyUsage, limit, &rows) {
		return nil
	}
	c.logger.Info("Extracted source table",
		slog.String("table", TableDailyUsage),
		slog.Int("rows", len(rows)))
	return rows
}

// SessionAnalysisCount fetches session_analysis and reports the row count.
// The table is extracted for parity with the upstream export but nothing in
// the star schema consumes it.
func (c *Client) SessionAnalysisCount(limit int) int {
	var rows []map[string]any
	if !c.fetch(TableSessionAnalysis, limit, &rows) {
		return 0
	}
	c.logger.Info("Extracted source table",
		slog.String("table", TableSessionAnalysis),
		slog.Int("rows", len(rows)))
	return len(rows)
}

// fetch issues the authenticated GET and decodes the body into dest. Every
// failure mode logs a warning and returns false so callers present an empty
// result set; errors never escape this boundary.
func (c *Client) fetch(table string, limit int, dest any) bool {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?limit=%s", c.baseURL, table, strconv.Itoa(limit))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn("Failed to build source request",
			slog.String("table", table), slog.Any("error", err))
		return false
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to fetch source table",
			slog.String("table", table), slog.Any("error", err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Source fetch returned non-200",
			slog.String("table", table), slog.Int("status", resp.StatusCode))
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read source response",
			slog.String("table", table), slog.Any("error", err))
		return false
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Warn("Failed to decode source rows",
			slog.String("table", table), slog.Any("error", err))
		return false
	}

	return true
}
