package source

import "time"

// Source table names on the upstream REST API.
const (
	TableEvents          = "analytics_events"
	TableDailyUsage      = "daily_tool_usage"
	TableSessionAnalysis = "session_analysis"
)

// RawEvent is one row of the analytics_events source table. Nullable source
// columns are pointers so a JSON null survives decoding as nil instead of a
// zero value.
type RawEvent struct {
	EventID      string  `json:"event_id"`
	UserID       string  `json:"user_id"`
	URL          string  `json:"url"`
	EventType    string  `json:"event_type"`
	ToolName     *string `json:"tool_name"`
	ToolCategory *string `json:"tool_category"`
	Date         *string `json:"date"`
	Hour         *int    `json:"hour"`
	SessionID    *string `json:"session_id"`
	Properties   string  `json:"properties"`
	Timestamp    string  `json:"timestamp"`
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParsedTimestamp parses the event timestamp. The source emits RFC 3339 with
// and without a zone depending on the column's origin, so both are accepted.
func (e RawEvent) ParsedTimestamp() (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, e.Timestamp); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// DailyUsage is one row of the pre-aggregated daily_tool_usage source table.
// Funnel counts are nullable upstream and coerced to zero by the KPI
// builder, not here.
type DailyUsage struct {
	Date              string `json:"date"`
	ToolName          string `json:"tool_name"`
	FileUploads       *int   `json:"file_uploads"`
	ProcessingStarted *int   `json:"processing_started"`
	Downloads         *int   `json:"downloads"`
	Errors            *int   `json:"errors"`
	TotalEvents       int    `json:"total_events"`
	UniqueSessions    int    `json:"unique_sessions"`
	UniqueUsers       int    `json:"unique_users"`
	PageViews         int    `json:"page_views"`
}
