package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/db"
	"skillswap/internal/models"

	"go.uber.org/zap"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store offline")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("store offline")
}

func (failingKV) Close() error { return nil }

func TestLoadAll(t *testing.T) {
	tests := []struct {
		name    string
		stored  *string
		wantLen int
	}{
		{
			name: "valid list",
			stored: strPtr(`[
				{"name":"Alice","offer":"Guitar","want":"Python","email":"a@x.edu","category":"music","rating":2,"ratingCount":4},
				{"name":"Bob","offer":"Go","want":"Spanish","email":"b@y.com","category":"programming","rating":0,"ratingCount":0}
			]`),
			wantLen: 2,
		},
		{name: "absent", stored: nil, wantLen: 0},
		{name: "empty array", stored: strPtr(`[]`), wantLen: 0},
		{name: "null", stored: strPtr(`null`), wantLen: 0},
		{name: "invalid json", stored: strPtr(`{invalid json}`), wantLen: 0},
		{name: "not an array", stored: strPtr(`{"a":1}`), wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := NewMemoryKV()
			if tt.stored != nil {
				if err := kv.Set(ctx, SkillsKey, *tt.stored); err != nil {
					t.Fatalf("Set() error = %v", err)
				}
			}

			got := NewAdapter(kv, zap.NewNop()).LoadAll(ctx)
			if got == nil {
				t.Fatal("LoadAll() returned nil, want empty slice")
			}
			if len(got) != tt.wantLen {
				t.Errorf("LoadAll() len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestLoadAllNormalizesRatings(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	kv.Set(ctx, SkillsKey, `[{"name":"A","offer":"x","want":"y","email":"a@b.co","category":"other","rating":3,"ratingCount":0}]`)

	got := NewAdapter(kv, zap.NewNop()).LoadAll(ctx)
	if got[0].Rating != 0 || got[0].RatingCount != 0 {
		t.Errorf("rating = (%d, %d), want (0, 0)", got[0].Rating, got[0].RatingCount)
	}
}

func TestLoadAllSwallowsReadErrors(t *testing.T) {
	a := NewAdapter(failingKV{}, zap.NewNop())
	if got := a.LoadAll(context.Background()); len(got) != 0 {
		t.Errorf("LoadAll() len = %d, want 0", len(got))
	}
	if a.LoadPreference(context.Background()) {
		t.Error("LoadPreference() = true on read error")
	}
}

func TestSaveAllFieldNames(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewAdapter(kv, zap.NewNop())

	err := a.SaveAll(ctx, []models.Posting{{
		Name: "Alice", Offer: "Guitar", Want: "Python", Email: "a@x.edu",
		Category: "music", Rating: 3, RatingCount: 2,
	}})
	if err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	raw, _, _ := kv.Get(ctx, SkillsKey)
	want := `[{"name":"Alice","offer":"Guitar","want":"Python","email":"a@x.edu","category":"music","rating":3,"ratingCount":2}]`
	if raw != want {
		t.Errorf("stored = %s\nwant     %s", raw, want)
	}
}

func TestSaveAllEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := NewAdapter(kv, zap.NewNop()).SaveAll(ctx, nil); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	if raw, _, _ := kv.Get(ctx, SkillsKey); raw != "[]" {
		t.Errorf("stored = %q, want []", raw)
	}
}

func TestPreference(t *testing.T) {
	tests := []struct {
		stored string
		want   bool
	}{
		{"true", true},
		{"false", false},
		{"TRUE", false},
		{"1", false},
		{"", false},
	}

	for _, tt := range tests {
		ctx := context.Background()
		kv := NewMemoryKV()
		kv.Set(ctx, DarkModeKey, tt.stored)
		if got := NewAdapter(kv, zap.NewNop()).LoadPreference(ctx); got != tt.want {
			t.Errorf("LoadPreference() with %q = %v, want %v", tt.stored, got, tt.want)
		}
	}

	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewAdapter(kv, zap.NewNop())
	if a.LoadPreference(ctx) {
		t.Error("LoadPreference() = true when absent")
	}
	a.SavePreference(ctx, true)
	if raw, _, _ := kv.Get(ctx, DarkModeKey); raw != "true" {
		t.Errorf("stored = %q, want true", raw)
	}
	a.SavePreference(ctx, false)
	if a.LoadPreference(ctx) {
		t.Error("LoadPreference() = true after saving false")
	}
}

func TestGormKV(t *testing.T) {
	cfg := &config.Config{DatabaseURL: filepath.Join(t.TempDir(), "skills.db")}
	conn, err := db.Open(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	kv := NewGormKV(conn)
	defer kv.Close()

	ctx := context.Background()
	if _, ok, err := kv.Get(ctx, SkillsKey); err != nil || ok {
		t.Fatalf("Get() on empty table = (ok=%v, err=%v)", ok, err)
	}

	if err := kv.Set(ctx, SkillsKey, "[]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := kv.Set(ctx, SkillsKey, `[{"name":"A"}]`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	got, ok, err := kv.Get(ctx, SkillsKey)
	if err != nil || !ok {
		t.Fatalf("Get() = (ok=%v, err=%v)", ok, err)
	}
	if got != `[{"name":"A"}]` {
		t.Errorf("Get() = %q, want the overwritten value", got)
	}

	var count int64
	conn.Model(&models.KVEntry{}).Count(&count)
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

func strPtr(s string) *string { return &s }
