package storage

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKV stores values as rows of the kv_entries table.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (g *GormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var entries []models.KVEntry
	err := g.db.WithContext(ctx).
		Where("kv_key = ?", key).
		Limit(1).
		Find(&entries).Error
	if err != nil {
		return "", false, err
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	return entries[0].Value, true, nil
}

func (g *GormKV) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kv_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"kv_value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (g *GormKV) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
