// Package facts materializes the two fact tables at the center of the star
// schema: the event-grain detail fact and the pre-aggregated daily KPI fact.
package facts

import (
	"log/slog"
	"time"

	"starmart/internal/pkg/properties"
	"starmart/internal/schema"
	"starmart/internal/source"
)

// BuildDetail produces one fact_analytics row per raw event that carries the
// required identity fields. The surrogate key is the 1-based input ordinal;
// skipped rows leave a gap rather than shifting later keys.
//
// Unrecognized event_type strings keep their dimension reference by falling
// back to the page-view key. That mirrors the upstream dashboards'
// long-standing behavior; changing it would silently shift KPI totals, so
// the fallback is surfaced in the log instead of fixed.
func BuildDetail(events []source.RawEvent, logger *slog.Logger) []schema.FactAnalytics {
	now := time.Now().UTC()
	rows := make([]schema.FactAnalytics, 0, len(events))
	skipped := 0
	unknownTypes := 0

	for idx, event := range events {
		if event.EventID == "" {
			skipped++
			logger.Warn("Skipping event without event_id", slog.Int("ordinal", idx))
			continue
		}

		kind := schema.ParseEventKind(event.EventType)
		eventTypeKey := kind.Key()
		if kind == schema.KindUnknown {
			unknownTypes++
			eventTypeKey = schema.KindPageView.Key()
		}

		row := schema.FactAnalytics{
			AnalyticsKey:   int64(idx) + 1,
			EventTypeKey:   eventTypeKey,
			EventCount:     1,
			UploadFlag:     kind == schema.KindFileUpload,
			DownloadFlag:   kind == schema.KindDownload,
			ProcessingFlag: kind == schema.KindProcessing,
			ErrorFlag:      kind == schema.KindError,
			EventID:        event.EventID,
			UserID:         event.UserID,
			URL:            event.URL,
			CreatedAt:      now,
		}

		if event.ToolName != nil {
			key := schema.ToolKey{Name: *event.ToolName}.String()
			row.ToolKey = &key
		}
		if event.Date != nil && event.Hour != nil {
			key := schema.TimeKey{Date: *event.Date, Hour: *event.Hour}.String()
			row.TimeKey = &key
		}
		if event.SessionID != nil {
			key := schema.SessionKey{ID: *event.SessionID}.String()
			row.SessionKey = &key
		}

		if payload, ok := properties.Parse(event.Properties); ok {
			row.FileSizeBytes = payload.FileSizeBytes
			row.ProcessingTimeMS = payload.ProcessingTimeMS
		}

		rows = append(rows, row)
	}

	if unknownTypes > 0 {
		logger.Warn("Defaulted unrecognized event types to page view",
			slog.Int("count", unknownTypes))
	}
	if skipped > 0 {
		logger.Warn("Skipped events missing required fields",
			slog.Int("count", skipped))
	}
	logger.Info("Built detail fact", slog.Int("rows", len(rows)))
	return rows
}
