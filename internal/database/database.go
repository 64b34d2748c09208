// Package database wires the cartridge SQLite manager to the star-schema
// models. The sink is rebuilt from scratch on every pipeline run: dropping
// and recreating the tables is the refresh strategy, not a migration.
package database

import (
	"log/slog"

	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"starmart/internal/config"
	"starmart/internal/schema"
)

// DBManager wraps cartridge's sqlite.Manager with star-schema rebuild methods.
type DBManager struct {
	*sqlite.Manager
	logger *slog.Logger
}

// NewDBManager creates a new database manager using cartridge's sqlite.Manager.
func NewDBManager(cfg *config.Config, logger *slog.Logger) *DBManager {
	sqliteCfg := sqlite.Config{
		Path:         cfg.DatabaseName,
		MaxOpenConns: cfg.GetMaxOpenConns(),
		MaxIdleConns: cfg.GetMaxIdleConns(),
		Logger:       logger,
		EnableWAL:    true,
		TxImmediate:  true,
		BusyTimeout:  5000,
	}

	return &DBManager{
		Manager: sqlite.NewManager(sqliteCfg),
		logger:  logger,
	}
}

// Init initializes the database connection.
func (dm *DBManager) Init() error {
	_, err := dm.Manager.Connect()
	return err
}

// ResetSchema drops and recreates the star tables for a full refresh.
func (dm *DBManager) ResetSchema() error {
	db := dm.GetConnection()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, model := range schema.AllModels() {
			if err := tx.Migrator().DropTable(model); err != nil {
				return err
			}
		}
		return tx.AutoMigrate(schema.AllModels()...)
	})
	if err != nil {
		dm.logger.Error("Failed to rebuild star schema", slog.Any("error", err))
		return err
	}

	if err := dm.CheckpointWAL("FULL"); err != nil {
		dm.logger.Warn("Failed to checkpoint WAL after rebuild", slog.Any("error", err))
	}

	dm.logger.Info("Star schema rebuilt", slog.Int("tables", len(schema.AllModels())))
	return nil
}

// Close releases the underlying connection pool.
func (dm *DBManager) Close() error {
	db := dm.GetConnection()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
