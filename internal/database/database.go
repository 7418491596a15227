package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"roster/internal/model"
)

// Open opens the SQLite file at path, creating it when absent, and makes
// sure the students table exists. The returned handle owns exactly one
// connection and must be released with Close.
func Open(path string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	// One connection for the process lifetime; also keeps ":memory:" databases
	// from splitting across connections.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&model.Student{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate students table: %w", err)
	}

	log.Info().Str("path", path).Msg("SQLite opened")

	return db, nil
}

// Close releases the connection held by db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql handle: %w", err)
	}
	return sqlDB.Close()
}
