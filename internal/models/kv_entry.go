package models

import (
	"time"
)

// KVEntry backs the key-value store on a SQL database.
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;size:64" json:"key"`
	Value     string    `gorm:"column:kv_value;type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
