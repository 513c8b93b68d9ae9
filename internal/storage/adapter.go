package storage

import (
	"context"
	"encoding/json"

	"skillswap/internal/models"

	"go.uber.org/zap"
)

// Keys are fixed for compatibility with existing saved boards.
const (
	SkillsKey   = "skills"
	DarkModeKey = "darkMode"
)

// Adapter translates postings and the dark-mode flag to and from a KV store.
type Adapter struct {
	kv     KV
	logger *zap.Logger
}

func NewAdapter(kv KV, logger *zap.Logger) *Adapter {
	return &Adapter{kv: kv, logger: logger}
}

// SaveAll overwrites the stored list with postings, in order.
func (a *Adapter) SaveAll(ctx context.Context, postings []models.Posting) error {
	if postings == nil {
		postings = []models.Posting{}
	}
	data, err := json.Marshal(postings)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, SkillsKey, string(data))
}

// LoadAll returns the stored list. A missing, unreadable or unparsable
// value yields an empty list; the cause is logged and never returned.
func (a *Adapter) LoadAll(ctx context.Context) []models.Posting {
	raw, ok, err := a.kv.Get(ctx, SkillsKey)
	if err != nil {
		a.logger.Warn("failed to read stored skills", zap.Error(err))
		return []models.Posting{}
	}
	if !ok || raw == "" {
		return []models.Posting{}
	}

	var postings []models.Posting
	if err := json.Unmarshal([]byte(raw), &postings); err != nil {
		a.logger.Warn("discarding unparsable stored skills", zap.Error(err))
		return []models.Posting{}
	}
	if postings == nil {
		return []models.Posting{}
	}
	for i := range postings {
		postings[i].Normalize()
	}
	return postings
}

// SavePreference stores the dark-mode flag as "true" or "false".
func (a *Adapter) SavePreference(ctx context.Context, enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return a.kv.Set(ctx, DarkModeKey, value)
}

// LoadPreference reports whether dark mode is enabled. Only the literal
// string "true" counts.
func (a *Adapter) LoadPreference(ctx context.Context) bool {
	raw, ok, err := a.kv.Get(ctx, DarkModeKey)
	if err != nil {
		a.logger.Warn("failed to read dark mode preference", zap.Error(err))
		return false
	}
	return ok && raw == "true"
}

// Close releases the underlying store.
func (a *Adapter) Close() error {
	return a.kv.Close()
}
