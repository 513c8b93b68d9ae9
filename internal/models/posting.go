package models

import "strings"

// Posting is one skill-exchange listing.
type Posting struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Offer       string `json:"offer"`
	Want        string `json:"want"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	Rating      int    `json:"rating"`
	RatingCount int    `json:"ratingCount"`
}

// Rating bounds. Zero means "not rated yet".
const (
	MinRating = 1
	MaxRating = 3
)

// Verified reports whether the posting's email earns the cosmetic badge.
func (p Posting) Verified() bool {
	return IsVerified(p.Email)
}

// CategoryLabel is the display label of the posting's category.
func (p Posting) CategoryLabel() string {
	return FormatCategory(p.Category)
}

// Stars returns one entry per star slot, true when filled.
func (p Posting) Stars() []bool {
	stars := make([]bool, MaxRating)
	for i := range stars {
		stars[i] = i < p.Rating
	}
	return stars
}

// Normalize enforces the rating invariants on a record read from storage
// or an import file. A rating only counts together with at least one vote.
func (p *Posting) Normalize() {
	if p.RatingCount < 0 {
		p.RatingCount = 0
	}
	if p.Rating < MinRating || p.Rating > MaxRating || p.RatingCount == 0 {
		p.Rating = 0
		p.RatingCount = 0
	}
}

// IsVerified is a display heuristic only. It must never gate access.
func IsVerified(email string) bool {
	return strings.HasSuffix(email, ".edu") || strings.HasSuffix(email, ".ac.uk")
}
