package db

import (
	"skillswap/internal/config"
	"skillswap/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database named by cfg.DatabaseURL and migrates the
// key-value table. Postgres DSNs use the postgres driver, anything else is
// opened as a sqlite file.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector := sqlite.Open(cfg.DatabaseURL)
	driver := "sqlite"
	if cfg.UsesPostgres() {
		dialector = postgres.Open(cfg.DatabaseURL)
		driver = "postgres"
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsDevelopment() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", zap.String("driver", driver))

	if err := conn.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, err
	}
	log.Info("database migration completed")

	return conn, nil
}
