package pipeline

import (
	"log/slog"

	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"starmart/internal/schema"
)

const loadBatchSize = 500

// tableLoad describes one batch insert. Loads within a tier are independent:
// a failed table is logged and the next one is still attempted. The tier
// split is what guarantees dimensions land before facts.
type tableLoad struct {
	table string
	rows  any
	count int
}

// loadTier writes one tier of tables and returns how many loaded. An empty
// builder output is a legal no-op, not an error.
func loadTier(db *gorm.DB, logger *slog.Logger, loads []tableLoad) int {
	loaded := 0
	for _, l := range loads {
		if l.count == 0 {
			logger.Info("No rows to load", slog.String("table", l.table))
			loaded++
			continue
		}

		err := sqlite.PerformWrite(logger, db, func(tx *gorm.DB) error {
			return tx.CreateInBatches(l.rows, loadBatchSize).Error
		})
		if err != nil {
			logger.Error("Failed to load table",
				slog.String("table", l.table), slog.Any("error", err))
			continue
		}

		logger.Info("Loaded table",
			slog.String("table", l.table), slog.Int("rows", l.count))
		loaded++
	}
	return loaded
}

// dedupeSessions drops duplicate session keys immediately before load.
// Grouping upstream already guarantees uniqueness; this guards the primary
// key if it ever does not.
func dedupeSessions(rows []schema.DimSession) []schema.DimSession {
	seen := make(map[string]bool, len(rows))
	out := make([]schema.DimSession, 0, len(rows))
	for _, row := range rows {
		if seen[row.SessionKey] {
			continue
		}
		seen[row.SessionKey] = true
		out = append(out, row)
	}
	return out
}
