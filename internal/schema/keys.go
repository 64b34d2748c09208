package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Surrogate keys are typed composites internally and serialize to their
// string form only at the storage boundary. Keeping the construction in one
// place avoids collision bugs from ad-hoc concatenation spread across
// builders.

// ToolKey identifies a row in dim_tools.
type ToolKey struct {
	Name string
}

func (k ToolKey) String() string { return "tool_" + k.Name }

// TimeKey identifies a (date, hour) slot in dim_time.
type TimeKey struct {
	Date string // YYYY-MM-DD
	Hour int
}

func (k TimeKey) String() string { return fmt.Sprintf("%s_%02d", k.Date, k.Hour) }

// ParseTimeKey reconstructs a TimeKey from its storage form.
func ParseTimeKey(s string) (TimeKey, error) {
	idx := strings.LastIndex(s, "_")
	if idx < 0 {
		return TimeKey{}, fmt.Errorf("malformed time key %q", s)
	}
	hour, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return TimeKey{}, fmt.Errorf("malformed time key %q: %w", s, err)
	}
	return TimeKey{Date: s[:idx], Hour: hour}, nil
}

// SessionKey identifies a row in dim_sessions.
type SessionKey struct {
	ID string
}

func (k SessionKey) String() string { return "session_" + k.ID }

// KPIKey identifies a (date, tool) row in fact_daily_kpis.
type KPIKey struct {
	Date string
	Tool string
}

func (k KPIKey) String() string { return k.Date + "_" + k.Tool }

// Canonical raw event type names as they arrive from the source.
const (
	EventPageView   = "page_view"
	EventFileUpload = "file_upload_started"
	EventProcessing = "processing_started"
	EventDownload   = "file_downloaded"
	EventSessionEnd = "session_end"
	EventError      = "error_occurred"
)

// EventKind is the closed enumeration of tracked event types. KindUnknown is
// an explicit variant so callers decide the fallback policy instead of the
// mapping absorbing bad data silently.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindPageView
	KindFileUpload
	KindProcessing
	KindDownload
	KindSessionEnd
	KindError
)

var kindByName = map[string]EventKind{
	EventPageView:   KindPageView,
	EventFileUpload: KindFileUpload,
	EventProcessing: KindProcessing,
	EventDownload:   KindDownload,
	EventSessionEnd: KindSessionEnd,
	EventError:      KindError,
}

// ParseEventKind maps a raw event_type string onto the enumeration.
// Unrecognized strings yield KindUnknown.
func ParseEventKind(name string) EventKind {
	if kind, ok := kindByName[name]; ok {
		return kind
	}
	return KindUnknown
}

// Key returns the dim_event_types surrogate key for the kind. KindUnknown
// has no reference row and therefore no key.
func (k EventKind) Key() string {
	switch k {
	case KindPageView:
		return "evt_page_view"
	case KindFileUpload:
		return "evt_file_upload"
	case KindProcessing:
		return "evt_processing"
	case KindDownload:
		return "evt_download"
	case KindSessionEnd:
		return "evt_session_end"
	case KindError:
		return "evt_error"
	default:
		return ""
	}
}
