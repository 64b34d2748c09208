// Package pipeline sequences a full refresh of the star schema: extract raw
// records, build dimensions and facts, rebuild the sink tables, load
// dimensions before facts, then report. Execution is strictly sequential;
// there is no shared mutable state between stages beyond the sink itself.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"starmart/internal/config"
	"starmart/internal/dimensions"
	"starmart/internal/facts"
	"starmart/internal/reports"
	"starmart/internal/source"
)

// ErrMissingSourceData is returned when a structurally required source table
// comes back empty. Without events and daily usage no facts can be built, so
// the run aborts before touching the sink.
var ErrMissingSourceData = errors.New("pipeline: required source tables are empty")

// Source is the upstream adapter the pipeline extracts from.
type Source interface {
	Events(limit int) []source.RawEvent
	DailyUsage(limit int) []source.DailyUsage
	SessionAnalysisCount(limit int) int
}

// DBManager is the slice of the database manager the pipeline needs.
type DBManager interface {
	GetConnection() *gorm.DB
	ResetSchema() error
}

// Pipeline runs one full drop-and-rebuild refresh of the star schema.
type Pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	dbManager DBManager
	source    Source
}

// New creates a pipeline over the given source and sink.
func New(cfg *config.Config, logger *slog.Logger, dbManager DBManager, src Source) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		logger:    logger,
		dbManager: dbManager,
		source:    src,
	}
}

// Run executes one full refresh and logs per-table row counts plus the
// dashboard headline numbers.
func (p *Pipeline) Run() error {
	logger := p.logger.With(slog.String("run_id", uuid.NewString()))
	logger.Info("Starting star schema refresh", slog.Int("fetch_limit", p.cfg.FetchLimit))

	events := p.source.Events(p.cfg.FetchLimit)
	daily := p.source.DailyUsage(p.cfg.FetchLimit)
	sessionRows := p.source.SessionAnalysisCount(p.cfg.FetchLimit)
	logger.Info("Extraction finished",
		slog.Int("events", len(events)),
		slog.Int("daily_usage", len(daily)),
		slog.Int("session_analysis", sessionRows))

	if len(events) == 0 || len(daily) == 0 {
		return ErrMissingSourceData
	}

	tools := dimensions.BuildTools(events, logger)
	timeSlots := dimensions.BuildTimeSlots(events, logger)
	sessions := dimensions.BuildSessions(events, logger)
	eventTypes := dimensions.BuildEventTypes()

	detail := facts.BuildDetail(events, logger)
	kpis := facts.BuildDailyKPIs(daily, logger)

	if err := p.dbManager.ResetSchema(); err != nil {
		return fmt.Errorf("failed to rebuild star schema: %w", err)
	}

	db := p.dbManager.GetConnection()
	sessions = dedupeSessions(sessions)

	dimTier := []tableLoad{
		{table: "dim_tools", rows: tools, count: len(tools)},
		{table: "dim_time", rows: timeSlots, count: len(timeSlots)},
		{table: "dim_sessions", rows: sessions, count: len(sessions)},
		{table: "dim_event_types", rows: eventTypes, count: len(eventTypes)},
	}
	factTier := []tableLoad{
		{table: "fact_analytics", rows: detail, count: len(detail)},
		{table: "fact_daily_kpis", rows: kpis, count: len(kpis)},
	}

	// The sink enforces no referential integrity, so loading dimensions
	// before facts is the only ordering safeguard.
	dimsLoaded := loadTier(db, logger, dimTier)
	factsLoaded := loadTier(db, logger, factTier)

	reports.LogSummary(db, logger, p.cfg.TopToolsLimit, p.cfg.TrendDays)

	logger.Info("Star schema refresh complete",
		slog.Int("dimension_tables", dimsLoaded),
		slog.Int("fact_tables", factsLoaded))
	return nil
}
