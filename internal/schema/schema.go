// Package schema declares the star-schema tables the pipeline materializes:
// two fact tables and four dimension tables, shaped for dashboard queries.
package schema

import "time"

// DimTool describes one product tool. One row per distinct tool name seen in
// the raw events.
type DimTool struct {
	ToolKey         string `gorm:"primaryKey"`
	ToolName        string
	ToolCategory    string
	ToolDisplayName string
	ToolDescription string
	IsActive        bool `gorm:"default:true"`
	IconName        string
	SortOrder       int
	CreatedAt       time.Time
}

func (DimTool) TableName() string { return "dim_tools" }

// DimTime holds one row per distinct (date, hour) pair seen in the raw
// events. Every column besides CreatedAt is a pure function of the pair.
type DimTime struct {
	TimeKey    string `gorm:"primaryKey"`
	Date       string `gorm:"type:date"`
	Year       int
	Month      int
	Day        int
	Hour       int
	DayOfWeek  int // Monday = 0
	DayName    string
	MonthName  string
	Quarter    int
	IsWeekend  bool
	DateLabel  string // "Jul 25, 2025"
	WeekStart  string `gorm:"type:date"`
	MonthStart string `gorm:"type:date"`
	CreatedAt  time.Time
}

func (DimTime) TableName() string { return "dim_time" }

// DimSession describes one visitor session, classified from the user agent
// carried in the session's properties payload.
type DimSession struct {
	SessionKey      string `gorm:"primaryKey"`
	SessionID       string
	UserAgent       string
	Browser         string
	OperatingSystem string
	DeviceType      string
	Language        string
	Referrer        string
	SessionStart    time.Time
	CreatedAt       time.Time
}

func (DimSession) TableName() string { return "dim_sessions" }

// DimEventType is the static reference table for the six tracked event
// types. It is rebuilt identically on every run.
type DimEventType struct {
	EventTypeKey      string `gorm:"primaryKey"`
	EventType         string
	EventCategory     string
	EventDescription  string
	IsConversionEvent bool    `gorm:"default:false"`
	EventWeight       float64 `gorm:"default:1.0"`
	DisplayName       string
	IconClass         string
	ColorCode         string
	CreatedAt         time.Time
}

func (DimEventType) TableName() string { return "dim_event_types" }

// FactAnalytics holds one row per raw event, at event grain. Dimension keys
// are nullable: an event with no tool attached still produces a fact row.
type FactAnalytics struct {
	AnalyticsKey     int64 `gorm:"primaryKey;autoIncrement:false"`
	ToolKey          *string
	TimeKey          *string
	SessionKey       *string
	EventTypeKey     string
	EventCount       int  `gorm:"default:1"`
	UploadFlag       bool `gorm:"default:false"`
	DownloadFlag     bool `gorm:"default:false"`
	ProcessingFlag   bool `gorm:"default:false"`
	ErrorFlag        bool `gorm:"default:false"`
	FileSizeBytes    *int64
	ProcessingTimeMS *int64 `gorm:"column:processing_time_ms"`
	EventID          string
	UserID           string
	URL              string
	CreatedAt        time.Time
}

func (FactAnalytics) TableName() string { return "fact_analytics" }

// FactDailyKPI pre-aggregates per-day per-tool KPIs so dashboard widgets can
// render without touching event grain. The Avg* columns are reserved for a
// later enrichment pass and stay NULL.
type FactDailyKPI struct {
	KpiKey                   string `gorm:"primaryKey"`
	Date                     string `gorm:"type:date"`
	ToolKey                  string
	TotalEvents              int     `gorm:"default:0"`
	TotalUploads             int     `gorm:"default:0"`
	TotalProcessing          int     `gorm:"default:0"`
	TotalDownloads           int     `gorm:"default:0"`
	TotalErrors              int     `gorm:"default:0"`
	UniqueSessions           int     `gorm:"default:0"`
	UniqueUsers              int     `gorm:"default:0"`
	PageViews                int     `gorm:"default:0"`
	UploadToProcessingRate   float64  `gorm:"default:0"`
	ProcessingToDownloadRate float64  `gorm:"default:0"`
	UploadToDownloadRate     float64  `gorm:"default:0"`
	AvgProcessingTimeMS      *float64 `gorm:"column:avg_processing_time_ms"`
	AvgFileSizeBytes         *float64
	AvgSessionDurationMin    *float64
	CreatedAt                time.Time
}

func (FactDailyKPI) TableName() string { return "fact_daily_kpis" }

// AllModels returns every star-schema model, dimensions before facts.
func AllModels() []any {
	return []any{
		&DimTool{},
		&DimTime{},
		&DimSession{},
		&DimEventType{},
		&FactAnalytics{},
		&FactDailyKPI{},
	}
}
