package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starmart/internal/config"
	"starmart/internal/pipeline"
	"starmart/internal/schema"
	"starmart/internal/source"
	"starmart/internal/testsupport"
)

// fakeSource feeds the pipeline canned extracts.
type fakeSource struct {
	events   []source.RawEvent
	daily    []source.DailyUsage
	sessions int
}

func (f *fakeSource) Events(limit int) []source.RawEvent { return f.events }

func (f *fakeSource) DailyUsage(limit int) []source.DailyUsage { return f.daily }

func (f *fakeSource) SessionAnalysisCount(limit int) int { return f.sessions }

func testConfig() *config.Config {
	return &config.Config{FetchLimit: 2000, TopToolsLimit: 5, TrendDays: 7}
}

func TestRunFullRefresh(t *testing.T) {
	dbManager, logger := testsupport.SetupTestDBManager(t)
	db := dbManager.GetConnection()

	upload := testsupport.NewRawEvent("e1", "merge", schema.EventFileUpload, "2025-07-25", 10, "s1")
	upload.Properties = `{'user_agent': 'Mozilla/5.0 (Windows NT 10.0) Chrome/126 Safari/537.36', 'language': 'en-US', 'file_size': 2048}`
	download := testsupport.NewRawEvent("e2", "merge", schema.EventDownload, "2025-07-25", 11, "s1")

	src := &fakeSource{
		events: []source.RawEvent{upload, download},
		daily: []source.DailyUsage{
			{
				Date:           "2025-07-25",
				ToolName:       "merge",
				FileUploads:    testsupport.Ptr(2),
				Downloads:      testsupport.Ptr(2),
				TotalEvents:    2,
				UniqueSessions: 1,
				UniqueUsers:    1,
			},
		},
		sessions: 1,
	}

	err := pipeline.New(testConfig(), logger, dbManager, src).Run()
	require.NoError(t, err)

	var tools []schema.DimTool
	require.NoError(t, db.Find(&tools).Error)
	require.Len(t, tools, 1)
	assert.Equal(t, "tool_merge", tools[0].ToolKey)

	var timeRows []schema.DimTime
	require.NoError(t, db.Order("time_key").Find(&timeRows).Error)
	require.Len(t, timeRows, 2)
	assert.Equal(t, "2025-07-25_10", timeRows[0].TimeKey)
	assert.Equal(t, "2025-07-25_11", timeRows[1].TimeKey)

	var sessions []schema.DimSession
	require.NoError(t, db.Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, "session_s1", sessions[0].SessionKey)
	assert.Equal(t, "Chrome", sessions[0].Browser)

	var eventTypes []schema.DimEventType
	require.NoError(t, db.Find(&eventTypes).Error)
	assert.Len(t, eventTypes, 6)

	var detail []schema.FactAnalytics
	require.NoError(t, db.Order("analytics_key").Find(&detail).Error)
	require.Len(t, detail, 2)
	assert.True(t, detail[0].UploadFlag)
	assert.False(t, detail[0].DownloadFlag)
	require.NotNil(t, detail[0].FileSizeBytes)
	assert.Equal(t, int64(2048), *detail[0].FileSizeBytes)
	assert.True(t, detail[1].DownloadFlag)

	var kpis []schema.FactDailyKPI
	require.NoError(t, db.Find(&kpis).Error)
	require.Len(t, kpis, 1)
	assert.Equal(t, "2025-07-25_merge", kpis[0].KpiKey)
	assert.Equal(t, 100.0, kpis[0].UploadToDownloadRate)
}

func TestRunReplacesPreviousLoad(t *testing.T) {
	dbManager, logger := testsupport.SetupTestDBManager(t)
	db := dbManager.GetConnection()

	src := &fakeSource{
		events: []source.RawEvent{
			testsupport.NewRawEvent("e1", "merge", schema.EventPageView, "2025-07-25", 10, "s1"),
		},
		daily: []source.DailyUsage{
			{Date: "2025-07-25", ToolName: "merge", TotalEvents: 1, PageViews: 1},
		},
	}

	p := pipeline.New(testConfig(), logger, dbManager, src)
	require.NoError(t, p.Run())

	// A second run with a different extract leaves no trace of the first.
	src.events = []source.RawEvent{
		testsupport.NewRawEvent("e9", "split", schema.EventPageView, "2025-08-01", 9, "s9"),
	}
	src.daily = []source.DailyUsage{
		{Date: "2025-08-01", ToolName: "split", TotalEvents: 1, PageViews: 1},
	}
	require.NoError(t, p.Run())

	var tools []schema.DimTool
	require.NoError(t, db.Find(&tools).Error)
	require.Len(t, tools, 1)
	assert.Equal(t, "tool_split", tools[0].ToolKey)

	var detail []schema.FactAnalytics
	require.NoError(t, db.Find(&detail).Error)
	require.Len(t, detail, 1)
	assert.Equal(t, "e9", detail[0].EventID)
}

func TestRunFailsOnMissingSourceData(t *testing.T) {
	dbManager, logger := testsupport.SetupTestDBManager(t)

	daily := []source.DailyUsage{{Date: "2025-07-25", ToolName: "merge", TotalEvents: 1}}
	events := []source.RawEvent{
		testsupport.NewRawEvent("e1", "merge", schema.EventPageView, "2025-07-25", 10, "s1"),
	}

	err := pipeline.New(testConfig(), logger, dbManager, &fakeSource{daily: daily}).Run()
	assert.ErrorIs(t, err, pipeline.ErrMissingSourceData)

	err = pipeline.New(testConfig(), logger, dbManager, &fakeSource{events: events}).Run()
	assert.ErrorIs(t, err, pipeline.ErrMissingSourceData)
}
