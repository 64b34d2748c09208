package facts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starmart/internal/facts"
	"starmart/internal/source"
	"starmart/internal/testsupport"
)

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name       string
		downstream int
		upstream   int
		expected   float64
	}{
		{"quarter", 50, 200, 25.0},
		{"full funnel", 2, 2, 100.0},
		{"rounded to two decimals", 1, 3, 33.33},
		{"two thirds", 2, 3, 66.67},
		{"zero upstream", 10, 0, 0},
		{"negative upstream", 10, -1, 0},
		{"zero downstream", 0, 50, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, facts.ConversionRate(tc.downstream, tc.upstream))
		})
	}
}

func TestBuildDailyKPIs(t *testing.T) {
	daily := []source.DailyUsage{
		{
			Date:              "2025-07-25",
			ToolName:          "merge",
			FileUploads:       testsupport.Ptr(200),
			ProcessingStarted: testsupport.Ptr(180),
			Downloads:         testsupport.Ptr(150),
			Errors:            testsupport.Ptr(3),
			TotalEvents:       600,
			UniqueSessions:    120,
			UniqueUsers:       95,
			PageViews:         250,
		},
	}

	rows := facts.BuildDailyKPIs(daily, testsupport.GetLogger())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2025-07-25_merge", row.KpiKey)
	assert.Equal(t, "tool_merge", row.ToolKey)
	assert.Equal(t, 200, row.TotalUploads)
	assert.Equal(t, 180, row.TotalProcessing)
	assert.Equal(t, 150, row.TotalDownloads)
	assert.Equal(t, 3, row.TotalErrors)
	assert.Equal(t, 90.0, row.UploadToProcessingRate)
	assert.Equal(t, 83.33, row.ProcessingToDownloadRate)
	assert.Equal(t, 75.0, row.UploadToDownloadRate)
	assert.Nil(t, row.AvgProcessingTimeMS)
	assert.Nil(t, row.AvgFileSizeBytes)
}

func TestBuildDailyKPIsMissingCountsCoercedToZero(t *testing.T) {
	daily := []source.DailyUsage{
		{Date: "2025-07-25", ToolName: "split", TotalEvents: 10, PageViews: 10},
	}

	rows := facts.BuildDailyKPIs(daily, testsupport.GetLogger())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Zero(t, row.TotalUploads)
	assert.Zero(t, row.TotalDownloads)
	assert.Zero(t, row.UploadToProcessingRate)
	assert.Zero(t, row.ProcessingToDownloadRate)
	assert.Zero(t, row.UploadToDownloadRate)
}

func TestBuildDailyKPIsSkipsMalformedRows(t *testing.T) {
	daily := []source.DailyUsage{
		{Date: "", ToolName: "merge"},
		{Date: "2025-07-25", ToolName: ""},
		{Date: "2025-07-25", ToolName: "merge"},
	}

	rows := facts.BuildDailyKPIs(daily, testsupport.GetLogger())
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-07-25_merge", rows[0].KpiKey)
}
