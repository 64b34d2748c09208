package facts

import (
	"log/slog"
	"math"
	"time"

	"starmart/internal/schema"
	"starmart/internal/source"
)

// BuildDailyKPIs produces one fact_daily_kpis row per (date, tool) in the
// pre-aggregated daily usage extract. Missing funnel counts are coerced to
// zero before the ratio arithmetic, so a day with uploads but no recorded
// downloads yields a 0% rate instead of NULL propagation.
func BuildDailyKPIs(daily []source.DailyUsage, logger *slog.Logger) []schema.FactDailyKPI {
	now := time.Now().UTC()
	rows := make([]schema.FactDailyKPI, 0, len(daily))
	skipped := 0

	for _, usage := range daily {
		if usage.Date == "" || usage.ToolName == "" {
			skipped++
			logger.Warn("Skipping KPI row missing date or tool",
				slog.String("date", usage.Date), slog.String("tool", usage.ToolName))
			continue
		}

		uploads := intOrZero(usage.FileUploads)
		processing := intOrZero(usage.ProcessingStarted)
		downloads := intOrZero(usage.Downloads)

		rows = append(rows, schema.FactDailyKPI{
			KpiKey:                   schema.KPIKey{Date: usage.Date, Tool: usage.ToolName}.String(),
			Date:                     usage.Date,
			ToolKey:                  schema.ToolKey{Name: usage.ToolName}.String(),
			TotalEvents:              usage.TotalEvents,
			TotalUploads:             uploads,
			TotalProcessing:          processing,
			TotalDownloads:           downloads,
			TotalErrors:              intOrZero(usage.Errors),
			UniqueSessions:           usage.UniqueSessions,
			UniqueUsers:              usage.UniqueUsers,
			PageViews:                usage.PageViews,
			UploadToProcessingRate:   ConversionRate(processing, uploads),
			ProcessingToDownloadRate: ConversionRate(downloads, processing),
			UploadToDownloadRate:     ConversionRate(downloads, uploads),
			CreatedAt:                now,
		})
	}

	if skipped > 0 {
		logger.Warn("Skipped malformed KPI rows", slog.Int("count", skipped))
	}
	logger.Info("Built daily KPI fact", slog.Int("rows", len(rows)))
	return rows
}

// ConversionRate returns downstream/upstream as a percentage rounded to two
// decimal places, or 0 when the upstream count is zero.
func ConversionRate(downstream, upstream int) float64 {
	if upstream <= 0 {
		return 0
	}
	rate := float64(downstream) / float64(upstream) * 100
	return math.Round(rate*100) / 100
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
