// Package search computes which postings a query and category filter
// leave visible. It never mutates the postings it is given.
package search

import (
	"strings"

	"skillswap/internal/models"
)

// NormalizeQuery trims and lowercases a raw query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether p passes the filter. query must already be
// normalized. An empty category behaves like "all".
func Matches(p models.Posting, query, category string) bool {
	if category != "" && category != models.CategoryAll && p.Category != category {
		return false
	}
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Offer), query) ||
		strings.Contains(strings.ToLower(p.Want), query)
}

// Visible returns the identifiers of the matching postings in list order.
func Visible(postings []models.Posting, query, category string) []string {
	q := NormalizeQuery(query)
	visible := make([]string, 0, len(postings))
	for _, p := range postings {
		if Matches(p, q, category) {
			visible = append(visible, p.ID)
		}
	}
	return visible
}

// NoMatches reports whether the "no matches" indicator should be shown:
// nothing is visible and the query is not blank.
func NoMatches(visible []string, query string) bool {
	return len(visible) == 0 && NormalizeQuery(query) != ""
}

// Set turns a visible list into a lookup set.
func Set(visible []string) map[string]bool {
	set := make(map[string]bool, len(visible))
	for _, id := range visible {
		set[id] = true
	}
	return set
}
