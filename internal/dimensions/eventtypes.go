package dimensions

import (
	"time"

	"starmart/internal/schema"
)

// BuildEventTypes returns the static event-type reference table. It depends
// on no input data and is rebuilt identically on every run.
func BuildEventTypes() []schema.DimEventType {
	now := time.Now().UTC()
	return []schema.DimEventType{
		{
			EventTypeKey:      schema.KindPageView.Key(),
			EventType:         schema.EventPageView,
			EventCategory:     "Navigation",
			EventDescription:  "User viewed a page",
			IsConversionEvent: false,
			EventWeight:       1.0,
			DisplayName:       "Page Views",
			IconClass:         "eye",
			ColorCode:         "#3B82F6",
			CreatedAt:         now,
		},
		{
			EventTypeKey:      schema.KindFileUpload.Key(),
			EventType:         schema.EventFileUpload,
			EventCategory:     "Engagement",
			EventDescription:  "User uploaded a file",
			IsConversionEvent: true,
			EventWeight:       3.0,
			DisplayName:       "File Uploads",
			IconClass:         "upload",
			ColorCode:         "#10B981",
			CreatedAt:         now,
		},
		{
			EventTypeKey:      schema.KindProcessing.Key(),
			EventType:         schema.EventProcessing,
			EventCategory:     "Action",
			EventDescription:  "File processing started",
			IsConversionEvent: true,
			EventWeight:       2.0,
			DisplayName:       "Processing",
			IconClass:         "cog",
			ColorCode:         "#F59E0B",
			CreatedAt:         now,
		},
		{
			EventTypeKey:      schema.KindDownload.Key(),
			EventType:         schema.EventDownload,
			EventCategory:     "Conversion",
			EventDescription:  "User downloaded processed file",
			IsConversionEvent: true,
			EventWeight:       5.0,
			DisplayName:       "Downloads",
			IconClass:         "download",
			ColorCode:         "#EF4444",
			CreatedAt:         now,
		},
		{
			EventTypeKey:      schema.KindSessionEnd.Key(),
			EventType:         schema.EventSessionEnd,
			EventCategory:     "Session",
			EventDescription:  "User session ended",
			IsConversionEvent: false,
			EventWeight:       0.5,
			DisplayName:       "Session Ends",
			IconClass:         "logout",
			ColorCode:         "#6B7280",
			CreatedAt:         now,
		},
		{
			EventTypeKey:      schema.KindError.Key(),
			EventType:         schema.EventError,
			EventCategory:     "Error",
			EventDescription:  "An error occurred",
			IsConversionEvent: false,
			EventWeight:       -1.0,
			DisplayName:       "Errors",
			IconClass:         "exclamation",
			ColorCode:         "#DC2626",
			CreatedAt:         now,
		},
	}
}
