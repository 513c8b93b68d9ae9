// Package board holds the authoritative, ordered list of postings for a
// running service and keeps it in step with durable storage.
package board

import (
	"context"
	"fmt"
	"sync"

	"skillswap/internal/apperr"
	"skillswap/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence the board writes through to.
type Store interface {
	SaveAll(ctx context.Context, postings []models.Posting) error
	LoadAll(ctx context.Context) []models.Posting
}

type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeReplaced ChangeKind = "replaced"
	ChangeRated    ChangeKind = "rated"
)

// Change describes one successful mutation.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	ID       string     `json:"id,omitempty"`
	Revision uint64     `json:"revision"`
	Count    int        `json:"count"`
}

// Listener is called after each successful mutation, outside the board's
// lock. It must not block.
type Listener func(Change)

// Board is safe for concurrent use. Every mutation is persisted before it
// becomes visible; a failed write leaves the board unchanged.
type Board struct {
	mu       sync.Mutex
	store    Store
	logger   *zap.Logger
	postings []models.Posting
	revision uint64

	listenersMu  sync.RWMutex
	listeners    map[int]Listener
	nextListener int
}

// Open loads the board from store. Records that lack an identifier get one
// and the list is written back so identifiers survive restarts.
func Open(ctx context.Context, store Store, logger *zap.Logger) (*Board, error) {
	b := &Board{
		store:     store,
		logger:    logger,
		listeners: make(map[int]Listener),
	}

	postings := store.LoadAll(ctx)
	if assignIDs(postings) {
		if err := store.SaveAll(ctx, postings); err != nil {
			logger.Warn("failed to persist assigned skill ids", zap.Error(err))
		}
	}
	b.postings = postings

	logger.Info("board loaded", zap.Int("skills", len(postings)))
	return b, nil
}

// Close detaches all listeners.
func (b *Board) Close() error {
	b.listenersMu.Lock()
	b.listeners = make(map[int]Listener)
	b.listenersMu.Unlock()
	return nil
}

// Subscribe registers l and returns a function that removes it.
func (b *Board) Subscribe(l Listener) func() {
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()
	id := b.nextListener
	b.nextListener++
	b.listeners[id] = l
	return func() {
		b.listenersMu.Lock()
		delete(b.listeners, id)
		b.listenersMu.Unlock()
	}
}

// List returns a copy of the postings in board order.
func (b *Board) List() []models.Posting {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Posting, len(b.postings))
	copy(out, b.postings)
	return out
}

// Revision increases by one with every successful mutation.
func (b *Board) Revision() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revision
}

// Snapshot returns the postings together with the revision they belong to.
func (b *Board) Snapshot() ([]models.Posting, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Posting, len(b.postings))
	copy(out, b.postings)
	return out, b.revision
}

func (b *Board) Get(id string) (models.Posting, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return models.Posting{}, apperr.NotFound("Skill not found")
	}
	return b.postings[i], nil
}

// Add validates in and appends it as a new posting.
func (b *Board) Add(ctx context.Context, in Input) (models.Posting, error) {
	if err := in.Validate(); err != nil {
		return models.Posting{}, err
	}
	p := in.posting()
	p.ID = uuid.NewString()

	b.mu.Lock()
	next := make([]models.Posting, len(b.postings), len(b.postings)+1)
	copy(next, b.postings)
	next = append(next, p)
	change, err := b.commit(ctx, ChangeAdded, p.ID, next)
	b.mu.Unlock()
	if err != nil {
		return models.Posting{}, err
	}

	b.logger.Info("skill added", zap.String("id", p.ID), zap.String("category", p.Category))
	b.notify(change)
	return p, nil
}

func (b *Board) Remove(ctx context.Context, id string) error {
	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return apperr.NotFound("Skill not found")
	}
	next := make([]models.Posting, 0, len(b.postings)-1)
	next = append(next, b.postings[:i]...)
	next = append(next, b.postings[i+1:]...)
	change, err := b.commit(ctx, ChangeRemoved, id, next)
	b.mu.Unlock()
	if err != nil {
		return err
	}

	b.logger.Info("skill removed", zap.String("id", id))
	b.notify(change)
	return nil
}

// ReplaceAll discards the current list and installs postings. Missing or
// duplicate identifiers are replaced with fresh ones.
func (b *Board) ReplaceAll(ctx context.Context, postings []models.Posting) error {
	next := make([]models.Posting, len(postings))
	copy(next, postings)
	for i := range next {
		next[i].Normalize()
	}
	assignIDs(next)

	b.mu.Lock()
	change, err := b.commit(ctx, ChangeReplaced, "", next)
	b.mu.Unlock()
	if err != nil {
		return err
	}

	b.logger.Info("skills replaced", zap.Int("skills", len(next)))
	b.notify(change)
	return nil
}

// SetRating records one vote: the rating becomes value and the vote count
// grows by one. Repeat votes are not deduplicated.
func (b *Board) SetRating(ctx context.Context, id string, value int) (models.Posting, error) {
	if value < models.MinRating || value > models.MaxRating {
		return models.Posting{}, apperr.OutOfRange(
			fmt.Sprintf("Rating must be between %d and %d", models.MinRating, models.MaxRating))
	}

	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return models.Posting{}, apperr.NotFound("Skill not found")
	}
	next := make([]models.Posting, len(b.postings))
	copy(next, b.postings)
	next[i].Rating = value
	next[i].RatingCount++
	rated := next[i]
	change, err := b.commit(ctx, ChangeRated, id, next)
	b.mu.Unlock()
	if err != nil {
		return models.Posting{}, err
	}

	b.logger.Debug("skill rated", zap.String("id", id), zap.Int("rating", value), zap.Int("votes", rated.RatingCount))
	b.notify(change)
	return rated, nil
}

// commit persists next and installs it. Callers hold b.mu.
func (b *Board) commit(ctx context.Context, kind ChangeKind, id string, next []models.Posting) (Change, error) {
	if err := b.store.SaveAll(ctx, next); err != nil {
		b.logger.Error("failed to save skills", zap.String("change", string(kind)), zap.Error(err))
		return Change{}, apperr.Internal("Failed to save skills", err)
	}
	b.postings = next
	b.revision++
	return Change{Kind: kind, ID: id, Revision: b.revision, Count: len(next)}, nil
}

func (b *Board) notify(change Change) {
	b.listenersMu.RLock()
	defer b.listenersMu.RUnlock()
	for _, l := range b.listeners {
		l(change)
	}
}

func (b *Board) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range b.postings {
		if b.postings[i].ID == id {
			return i
		}
	}
	return -1
}

// assignIDs gives every posting without a unique identifier a new one and
// reports whether anything changed.
func assignIDs(postings []models.Posting) bool {
	changed := false
	seen := make(map[string]bool, len(postings))
	for i := range postings {
		if postings[i].ID == "" || seen[postings[i].ID] {
			postings[i].ID = uuid.NewString()
			changed = true
		}
		seen[postings[i].ID] = true
	}
	return changed
}
