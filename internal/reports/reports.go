// Package reports runs the read-only dashboard aggregates over the
// completed star schema. Nothing here derives new data; these queries exist
// so a refresh ends with the same headline numbers the dashboard will show.
package reports

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// PlatformTotals sums the pre-aggregated KPI fact across all days and tools.
type PlatformTotals struct {
	TotalEvents       int64
	TotalUploads      int64
	TotalProcessing   int64
	TotalDownloads    int64
	TotalSessions     int64
	ActiveTools       int64
	AvgConversionRate float64
}

// GetPlatformTotals returns the platform-wide KPI totals.
func GetPlatformTotals(db *gorm.DB) (PlatformTotals, error) {
	var totals PlatformTotals

	query := `
    SELECT
        COALESCE(SUM(total_events), 0) AS total_events,
        COALESCE(SUM(total_uploads), 0) AS total_uploads,
        COALESCE(SUM(total_processing), 0) AS total_processing,
        COALESCE(SUM(total_downloads), 0) AS total_downloads,
        COALESCE(SUM(unique_sessions), 0) AS total_sessions,
        COUNT(DISTINCT tool_key) AS active_tools,
        COALESCE(ROUND(AVG(upload_to_download_rate), 1), 0) AS avg_conversion_rate
    FROM fact_daily_kpis
    `

	err := db.Raw(query).Scan(&totals).Error
	if err != nil {
		return PlatformTotals{}, fmt.Errorf("error calculating platform totals: %w", err)
	}

	return totals, nil
}

// ToolPerformance is one row of the top-tools leaderboard.
type ToolPerformance struct {
	Tool           string
	IconName       string
	Downloads      int64
	Uploads        int64
	ConversionRate float64
	Sessions       int64
}

// GetTopTools returns the best performing tools by download volume.
func GetTopTools(db *gorm.DB, limit int) ([]ToolPerformance, error) {
	query := `
    SELECT
        t.tool_display_name AS tool,
        t.icon_name,
        SUM(k.total_downloads) AS downloads,
        SUM(k.total_uploads) AS uploads,
        ROUND(AVG(k.upload_to_download_rate), 1) AS conversion_rate,
        SUM(k.unique_sessions) AS sessions
    FROM fact_daily_kpis k
    JOIN dim_tools t ON k.tool_key = t.tool_key
    WHERE k.total_downloads > 0
    GROUP BY t.tool_display_name, t.icon_name, t.sort_order
    ORDER BY downloads DESC
    LIMIT ?
    `

	var rows []ToolPerformance
	if err := db.Raw(query, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying top tools: %w", err)
	}

	return rows, nil
}

// DailyTrend is one chart point of the recent-activity trend.
type DailyTrend struct {
	Date       string
	DateLabel  string
	Downloads  int64
	Uploads    int64
	Processing int64
}

// GetDailyTrends returns chart-ready totals for the most recent days.
// dim_time holds one row per (date, hour), so the join goes through a
// distinct date projection to avoid multiplying KPI rows by hours.
func GetDailyTrends(db *gorm.DB, days int) ([]DailyTrend, error) {
	query := `
    SELECT
        k.date,
        tm.date_label,
        SUM(k.total_downloads) AS downloads,
        SUM(k.total_uploads) AS uploads,
        SUM(k.total_processing) AS processing
    FROM fact_daily_kpis k
    JOIN (SELECT DISTINCT date, date_label FROM dim_time) tm ON k.date = tm.date
    GROUP BY k.date, tm.date_label
    ORDER BY k.date DESC
    LIMIT ?
    `

	var rows []DailyTrend
	if err := db.Raw(query, days).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying daily trends: %w", err)
	}

	return rows, nil
}

// LogSummary writes the dashboard headline numbers at the end of a run.
// Query failures are logged and never fail the refresh.
func LogSummary(db *gorm.DB, logger *slog.Logger, topTools, trendDays int) {
	totals, err := GetPlatformTotals(db)
	if err != nil {
		logger.Warn("Platform totals query failed", slog.Any("error", err))
	} else {
		logger.Info("Platform totals",
			slog.Int64("events", totals.TotalEvents),
			slog.Int64("uploads", totals.TotalUploads),
			slog.Int64("processing", totals.TotalProcessing),
			slog.Int64("downloads", totals.TotalDownloads),
			slog.Int64("sessions", totals.TotalSessions),
			slog.Int64("active_tools", totals.ActiveTools),
			slog.Float64("avg_conversion_rate", totals.AvgConversionRate))
	}

	tools, err := GetTopTools(db, topTools)
	if err != nil {
		logger.Warn("Top tools query failed", slog.Any("error", err))
	} else {
		for _, tool := range tools {
			logger.Info("Top tool",
				slog.String("tool", tool.Tool),
				slog.Int64("downloads", tool.Downloads),
				slog.Int64("uploads", tool.Uploads),
				slog.Float64("conversion_rate", tool.ConversionRate),
				slog.Int64("sessions", tool.Sessions))
		}
	}

	trends, err := GetDailyTrends(db, trendDays)
	if err != nil {
		logger.Warn("Daily trends query failed", slog.Any("error", err))
	} else {
		for _, trend := range trends {
			logger.Info("Daily trend",
				slog.String("date", trend.DateLabel),
				slog.Int64("downloads", trend.Downloads),
				slog.Int64("uploads", trend.Uploads),
				slog.Int64("processing", trend.Processing))
		}
	}
}
