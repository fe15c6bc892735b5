package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/newsbrief/core/internal/config"
	"github.com/newsbrief/core/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the SQLite database and optionally runs auto-migration.
// The parent directory is created on demand; WAL mode keeps concurrent
// reads from blocking the single writer.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := cfg.DatabasePath + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(resolveLogLevel(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.NewsSnapshotModel{},
		&models.BriefingModel{},
	)
}
