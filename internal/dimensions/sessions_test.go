package dimensions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starmart/internal/dimensions"
	"starmart/internal/source"
	"starmart/internal/testsupport"
)

func TestBuildSessionsGroupsByID(t *testing.T) {
	first := testsupport.NewRawEvent("e1", "merge", "page_view", "2025-07-25", 11, "s1")
	first.Timestamp = "2025-07-25T11:30:00Z"
	first.Properties = `{'user_agent': 'Mozilla/5.0 (Windows NT 10.0) Chrome/126 Safari/537.36', 'language': 'en-US', 'referrer': 'https://google.com'}`
	second := testsupport.NewRawEvent("e2", "merge", "file_downloaded", "2025-07-25", 10, "s1")
	second.Timestamp = "2025-07-25T10:05:00Z"
	other := testsupport.NewRawEvent("e3", "split", "page_view", "2025-07-25", 12, "s2")

	rows := dimensions.BuildSessions([]source.RawEvent{first, second, other}, testsupport.GetLogger())
	require.Len(t, rows, 2)

	row := rows[0]
	assert.Equal(t, "session_s1", row.SessionKey)
	assert.Equal(t, "s1", row.SessionID)
	assert.Equal(t, "Chrome", row.Browser)
	assert.Equal(t, "Windows", row.OperatingSystem)
	assert.Equal(t, "Desktop", row.DeviceType)
	assert.Equal(t, "en-US", row.Language)
	assert.Equal(t, "https://google.com", row.Referrer)

	// The earliest event timestamp wins even when it arrives second.
	expected := time.Date(2025, 7, 25, 10, 5, 0, 0, time.UTC)
	assert.True(t, row.SessionStart.Equal(expected))
}

func TestBuildSessionsFirstNonEmptyPropertiesWin(t *testing.T) {
	first := testsupport.NewRawEvent("e1", "merge", "page_view", "2025-07-25", 10, "s1")
	first.Properties = ""
	second := testsupport.NewRawEvent("e2", "merge", "page_view", "2025-07-25", 11, "s1")
	second.Properties = `{'user_agent': 'Firefox/127.0', 'language': 'de-DE'}`

	rows := dimensions.BuildSessions([]source.RawEvent{first, second}, testsupport.GetLogger())
	require.Len(t, rows, 1)
	assert.Equal(t, "Firefox", rows[0].Browser)
	assert.Equal(t, "de-DE", rows[0].Language)
}

func TestBuildSessionsUnparsablePropertiesStillEmitRow(t *testing.T) {
	event := testsupport.NewRawEvent("e1", "merge", "page_view", "2025-07-25", 10, "s1")
	event.Properties = "not a payload"

	rows := dimensions.BuildSessions([]source.RawEvent{event}, testsupport.GetLogger())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "session_s1", row.SessionKey)
	assert.Equal(t, "Unknown", row.Browser)
	assert.Equal(t, "Unknown", row.OperatingSystem)
	assert.Equal(t, "Unknown", row.DeviceType)
	assert.Empty(t, row.UserAgent)
}

func TestBuildSessionsSkipsEventsWithoutSession(t *testing.T) {
	event := testsupport.NewRawEvent("e1", "merge", "page_view", "2025-07-25", 10, "s1")
	event.SessionID = nil

	rows := dimensions.BuildSessions([]source.RawEvent{event}, testsupport.GetLogger())
	assert.Empty(t, rows)
}

func TestBuildSessionsDeterministicOrder(t *testing.T) {
	events := []source.RawEvent{
		testsupport.NewRawEvent("e1", "merge", "page_view", "2025-07-25", 10, "s3"),
		testsupport.NewRawEvent("e2", "merge", "page_view", "2025-07-25", 10, "s1"),
		testsupport.NewRawEvent("e3", "merge", "page_view", "2025-07-25", 10, "s2"),
	}

	rows := dimensions.BuildSessions(events, testsupport.GetLogger())
	require.Len(t, rows, 3)
	assert.Equal(t, "session_s3", rows[0].SessionKey)
	assert.Equal(t, "session_s1", rows[1].SessionKey)
	assert.Equal(t, "session_s2", rows[2].SessionKey)
}
