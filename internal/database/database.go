// Package database opens the backing store and applies schema migrations.
package database

import (
	"fmt"
	"time"

	"mybudget/internal/config"
	"mybudget/internal/logger"
	"mybudget/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database operations
type Manager struct {
	db         *gorm.DB
	migrateURL string
}

// NewManager opens the database described by cfg. SQLite is the default;
// Postgres is used when DB_DRIVER=postgres.
func NewManager(cfg *config.Config) (*Manager, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	default:
		logger.Get().Infof("Using SQLite database at %s", cfg.DBPath)
		db, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.DBDriver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// SQLite handles one writer at a time.
		sqlDB.SetMaxOpenConns(1)
	}

	return &Manager{db: db, migrateURL: cfg.MigrateURL()}, nil
}

// RunMigrations applies pending SQL migrations from the migrations/ directory.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://migrations", m.migrateURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// LogCounts logs the number of stored transactions and budgets. Useful at
// startup to confirm the right database file was opened.
func (m *Manager) LogCounts() {
	var transactions, budgets int64
	if err := m.db.Model(&models.Transaction{}).Count(&transactions).Error; err != nil {
		logger.Get().Warnf("failed to count transactions: %v", err)
		return
	}
	if err := m.db.Model(&models.Budget{}).Count(&budgets).Error; err != nil {
		logger.Get().Warnf("failed to count budgets: %v", err)
		return
	}
	logger.Get().Infof("Database ready: %d transaction(s), %d budget(s)", transactions, budgets)
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
