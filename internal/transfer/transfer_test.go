package transfer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"skillswap/internal/apperr"
	"skillswap/internal/board"
	"skillswap/internal/models"
	"skillswap/internal/storage"

	"go.uber.org/zap"
)

func TestExportFormat(t *testing.T) {
	data, err := Export([]models.Posting{{
		ID: "abc", Name: "Alice", Offer: "Guitar", Want: "Python", Email: "a@x.edu",
		Category: "music", Rating: 3, RatingCount: 2,
	}})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := `[
  {
    "name": "Alice",
    "offer": "Guitar",
    "want": "Python",
    "email": "a@x.edu",
    "category": "music",
    "rating": 3,
    "ratingCount": 2
  }
]`
	if string(data) != want {
		t.Errorf("Export() =\n%s\nwant\n%s", data, want)
	}
}

func TestExportEmpty(t *testing.T) {
	data, err := Export(nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Export(nil) = %s, want []", data)
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind apperr.Kind
		wantLen  int
	}{
		{name: "valid", input: `[{"name":"A","offer":"Go","want":"Art","email":"a@b.co","category":"design","rating":2,"ratingCount":1}]`, wantLen: 1},
		{name: "empty array", input: `[]`, wantLen: 0},
		{name: "extra fields ignored", input: `[{"name":"A","id":"x","color":"red"}]`, wantLen: 1},
		{name: "byte order mark", input: "\xef\xbb\xbf[]", wantLen: 0},
		{name: "object", input: `{"a":1}`, wantKind: apperr.KindSchema},
		{name: "string", input: `"skills"`, wantKind: apperr.KindSchema},
		{name: "array of numbers", input: `[1,2]`, wantKind: apperr.KindSchema},
		{name: "wrong field type", input: `[{"name":"A","rating":"three"}]`, wantKind: apperr.KindSchema},
		{name: "truncated", input: `[{"name":"A"`, wantKind: apperr.KindMalformedJSON},
		{name: "garbage", input: `not json`, wantKind: apperr.KindMalformedJSON},
		{name: "empty file", input: ``, wantKind: apperr.KindMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Import(strings.NewReader(tt.input))
			if tt.wantKind != "" {
				if err == nil {
					t.Fatalf("Import() expected %s error", tt.wantKind)
				}
				if kind := apperr.KindOf(err); kind != tt.wantKind {
					t.Errorf("Import() kind = %s, want %s", kind, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if got == nil || len(got) != tt.wantLen {
				t.Errorf("Import() = %#v, want %d postings", got, tt.wantLen)
			}
		})
	}
}

func TestImportDefaultsAndNormalizes(t *testing.T) {
	got, err := Parse([]byte(`[{"name":"A","offer":"x","want":"y","email":"a@b.co","rating":3,"ratingCount":0}]`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got[0].Category != models.CategoryOther {
		t.Errorf("Category = %q, want other", got[0].Category)
	}
	if got[0].Rating != 0 {
		t.Errorf("Rating = %d, want 0 without votes", got[0].Rating)
	}
	if got[0].ID != "" {
		t.Errorf("ID = %q, import must not carry ids", got[0].ID)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := board.Open(ctx, storage.NewAdapter(storage.NewMemoryKV(), zap.NewNop()), zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	inputs := []board.Input{
		{Name: "Alice", Offer: "Guitar", Want: "Python", Email: "a@x.edu", Category: "music"},
		{Name: "Bob", Offer: "Go", Want: "Spanish", Email: "b@y.com", Category: "programming"},
		{Name: "Cara", Offer: "Knitting", Want: "Drums", Email: "c@z.ac.uk", Category: "crafts"},
	}
	for _, in := range inputs {
		if _, err := b.Add(ctx, in); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	first := b.List()[0]
	b.SetRating(ctx, first.ID, 2)
	original := b.List()

	data, err := Export(original)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	imported, err := Import(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if err := b.ReplaceAll(ctx, imported); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	after := b.List()
	if len(after) != len(original) {
		t.Fatalf("len = %d, want %d", len(after), len(original))
	}
	for i := range original {
		want, got := original[i], after[i]
		want.ID, got.ID = "", ""
		if !reflect.DeepEqual(got, want) {
			t.Errorf("posting %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestFailedImportLeavesBoard(t *testing.T) {
	ctx := context.Background()
	b, _ := board.Open(ctx, storage.NewAdapter(storage.NewMemoryKV(), zap.NewNop()), zap.NewNop())
	b.Add(ctx, board.Input{Name: "Alice", Offer: "Guitar", Want: "Python", Email: "a@x.edu"})
	before := b.List()

	_, err := Import(strings.NewReader(`{"a":1}`))
	if !errors.Is(err, apperr.ErrSchema) {
		t.Fatalf("Import() error = %v, want schema", err)
	}
	if !reflect.DeepEqual(b.List(), before) {
		t.Error("board changed after failed import")
	}
}
