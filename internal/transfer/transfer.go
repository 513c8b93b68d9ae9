// Package transfer reads and writes board export files.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"skillswap/internal/apperr"
	"skillswap/internal/models"

	"github.com/tidwall/gjson"
)

// ExportFilename is the name offered for downloads.
const ExportFilename = "skills_export.json"

// record is the file schema. Identifiers are local to a board and are not
// exported.
type record struct {
	Name        string `json:"name"`
	Offer       string `json:"offer"`
	Want        string `json:"want"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	Rating      int    `json:"rating"`
	RatingCount int    `json:"ratingCount"`
}

// Export renders postings as a pretty-printed JSON array.
func Export(postings []models.Posting) ([]byte, error) {
	records := make([]record, len(postings))
	for i, p := range postings {
		records[i] = record{
			Name:        p.Name,
			Offer:       p.Offer,
			Want:        p.Want,
			Email:       p.Email,
			Category:    p.Category,
			Rating:      p.Rating,
			RatingCount: p.RatingCount,
		}
	}
	return json.MarshalIndent(records, "", "  ")
}

// Import parses an export file. It does not touch any board; callers
// install the result with ReplaceAll.
func Import(r io.Reader) ([]models.Posting, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.Internal("Failed to read file", err)
	}
	return Parse(data)
}

// Parse is Import over an in-memory document.
func Parse(data []byte) ([]models.Posting, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !gjson.ValidBytes(data) {
		return nil, apperr.MalformedJSON("Error parsing JSON file", fmt.Errorf("invalid JSON"))
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, apperr.Schema("Invalid file format", fmt.Errorf("expected an array of skills"))
	}

	var schemaErr error
	var postings []models.Posting
	i := 0
	doc.ForEach(func(_, value gjson.Result) bool {
		i++
		if !value.IsObject() {
			schemaErr = fmt.Errorf("skill %d is not an object", i)
			return false
		}
		var rec record
		if err := json.Unmarshal([]byte(value.Raw), &rec); err != nil {
			schemaErr = fmt.Errorf("skill %d: %w", i, err)
			return false
		}
		if rec.Category == "" {
			rec.Category = models.CategoryOther
		}
		p := models.Posting{
			Name:        rec.Name,
			Offer:       rec.Offer,
			Want:        rec.Want,
			Email:       rec.Email,
			Category:    rec.Category,
			Rating:      rec.Rating,
			RatingCount: rec.RatingCount,
		}
		p.Normalize()
		postings = append(postings, p)
		return true
	})
	if schemaErr != nil {
		return nil, apperr.Schema("Invalid file format", schemaErr)
	}

	if postings == nil {
		postings = []models.Posting{}
	}
	return postings, nil
}
