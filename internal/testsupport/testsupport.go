// Package testsupport provides shared helpers for tests that need a star
// schema database.
package testsupport

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	ctestsupport "github.com/karloscodes/cartridge/testsupport"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"starmart/internal/schema"
	"starmart/internal/source"
)

// testDBCache caches test databases by test name to allow multiple calls
// within the same test to share the same database
var testDBCache = make(map[string]*gorm.DB)
var testDBCacheMu sync.Mutex

// TestDBManager wraps cartridge's TestDBManager and adds the schema rebuild
// the pipeline expects from the production manager.
type TestDBManager struct {
	*ctestsupport.TestDBManager
}

// NewTestDBManager creates a TestDBManager around an open test database.
func NewTestDBManager(db *gorm.DB) *TestDBManager {
	return &TestDBManager{
		TestDBManager: ctestsupport.NewTestDBManager(db),
	}
}

// ResetSchema recreates the star tables, matching the production manager's
// full-refresh behavior.
func (m *TestDBManager) ResetSchema() error {
	db := m.GetConnection()
	for _, model := range schema.AllModels() {
		if err := db.Migrator().DropTable(model); err != nil {
			return err
		}
	}
	return db.AutoMigrate(schema.AllModels()...)
}

// SetupTestDB creates a test database with the star-schema models migrated.
// Uses a named in-memory database with cache=shared so multiple connections
// within a test share the same database, cached by root test name.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testName := t.Name()

	// Use root test name for caching to handle closure issues where
	// setup functions capture the outer t while t.Run has subtest t
	rootName := testName
	if idx := strings.Index(testName, "/"); idx > 0 {
		rootName = testName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	sanitizedName := strings.ReplaceAll(rootName, "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA journal_mode = WAL")

	if err := db.AutoMigrate(schema.AllModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupTestDBManager creates a test DB manager over a fresh star schema.
func SetupTestDBManager(t *testing.T) (*TestDBManager, *slog.Logger) {
	t.Helper()
	db := SetupTestDB(t)
	return NewTestDBManager(db), GetLogger()
}

// GetLogger returns a quiet logger for tests.
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}

// Ptr returns a pointer to v; convenient for the nullable raw columns.
func Ptr[T any](v T) *T { return &v }

// NewRawEvent builds a fully-populated raw event for tests. Callers nil out
// fields to exercise the nullable paths.
func NewRawEvent(eventID, tool, eventType, date string, hour int, sessionID string) source.RawEvent {
	return source.RawEvent{
		EventID:   eventID,
		UserID:    "user-" + eventID,
		URL:       "https://tools.example.com/" + tool,
		EventType: eventType,
		ToolName:  Ptr(tool),
		Date:      Ptr(date),
		Hour:      Ptr(hour),
		SessionID: Ptr(sessionID),
		Timestamp: fmt.Sprintf("%sT%02d:00:00Z", date, hour),
	}
}
