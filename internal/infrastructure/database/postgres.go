package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kirekcahs/codebrew-pos/internal/config"
	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
)

// NewPostgresDB opens the local journal database. The journal is optional;
// this is only called when JOURNAL_ENABLED is set.
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// The journal is written by one terminal process; keep the pool small.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	log.Println("Successfully connected to the journal database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the journal entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running journal migrations...")

	err := db.AutoMigrate(
		&entity.SaleRecord{},
		&entity.SaleRecordLine{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Journal migrations completed successfully")
	return nil
}
