package dimensions

import (
	"log/slog"
	"time"

	"starmart/internal/pkg/properties"
	"starmart/internal/pkg/useragent"
	"starmart/internal/schema"
	"starmart/internal/source"
)

// BuildSessions groups raw events by session id and emits one dim_sessions
// row per session: earliest timestamp as session start, client attributes
// classified from the first non-empty properties payload. A payload that
// fails to parse still produces a row; the session happened even if the
// client cannot be described.
func BuildSessions(events []source.RawEvent, logger *slog.Logger) []schema.DimSession {
	type sessionGroup struct {
		properties string
		start      time.Time
		hasStart   bool
	}

	now := time.Now().UTC()
	groups := make(map[string]*sessionGroup)
	var order []string

	for _, event := range events {
		if event.SessionID == nil {
			continue
		}
		id := *event.SessionID
		group, ok := groups[id]
		if !ok {
			group = &sessionGroup{}
			groups[id] = group
			order = append(order, id)
		}
		if group.properties == "" {
			group.properties = event.Properties
		}
		if ts, ok := event.ParsedTimestamp(); ok {
			if !group.hasStart || ts.Before(group.start) {
				group.start = ts
				group.hasStart = true
			}
		}
	}

	unparsed := 0
	rows := make([]schema.DimSession, 0, len(order))
	for _, id := range order {
		group := groups[id]
		row := schema.DimSession{
			SessionKey:   schema.SessionKey{ID: id}.String(),
			SessionID:    id,
			SessionStart: group.start,
			CreatedAt:    now,
		}

		payload, ok := properties.Parse(group.properties)
		if !ok {
			unparsed++
			row.Browser = useragent.Unknown
			row.OperatingSystem = useragent.Unknown
			row.DeviceType = useragent.Unknown
			rows = append(rows, row)
			continue
		}

		info := useragent.Classify(payload.UserAgent)
		row.UserAgent = payload.UserAgent
		row.Browser = info.Browser
		row.OperatingSystem = info.OperatingSystem
		row.DeviceType = info.DeviceType
		row.Language = payload.Language
		row.Referrer = payload.Referrer
		rows = append(rows, row)
	}

	if unparsed > 0 {
		logger.Warn("Sessions with unparsable properties payload",
			slog.Int("count", unparsed))
	}
	logger.Info("Built sessions dimension", slog.Int("rows", len(rows)))
	return rows
}
