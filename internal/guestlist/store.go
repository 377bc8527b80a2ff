// Package guestlist owns the in-memory guest list and mirrors every mutation
// to the durable slot through a single writer.
//
// The Store is the only mutation surface. Every mutation updates memory under
// the store mutex first and then submits a full snapshot to the writer.
// Persistence failures are logged and counted but never roll memory back, so
// the durable slot can lag behind or diverge from memory after a failed write.
package guestlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/guestlist/internal/metrics"
	"github.com/mmynk/guestlist/internal/models"
	"github.com/mmynk/guestlist/internal/seed"
	"github.com/mmynk/guestlist/internal/storage"
)

// ErrEmptyName is returned by AddGuest when the name trims to nothing.
var ErrEmptyName = errors.New("guest name cannot be empty")

// ErrNoSeed is returned by LoadRemoteSeed when no Fetcher was configured.
var ErrNoSeed = errors.New("remote seed is not configured")

// Fetcher supplies the remote seed records.
type Fetcher interface {
	Fetch(ctx context.Context) ([]seed.Record, error)
}

// Options carries the optional collaborators of a Store.
type Options struct {
	Fetcher Fetcher
	Metrics *metrics.Metrics
	// Now defaults to time.Now.
	Now func() time.Time
	// PickColor defaults to models.RandomColor.
	PickColor func() models.Color
}

// Store holds the ordered guest list.
type Store struct {
	saver   storage.Saver
	fetcher Fetcher
	metrics *metrics.Metrics
	now     func() time.Time
	color   func() models.Color

	mu     sync.Mutex
	guests []models.Guest
	closed bool

	w *writer
}

// New creates an empty Store that persists through saver.
func New(saver storage.Saver, opts Options) *Store {
	s := &Store{
		saver:   saver,
		fetcher: opts.Fetcher,
		metrics: opts.Metrics,
		now:     opts.Now,
		color:   opts.PickColor,
		guests:  []models.Guest{},
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.color == nil {
		s.color = models.RandomColor
	}
	s.w = newWriter(saver, opts.Metrics)
	return s
}

// Guests returns a copy of the list in insertion order.
func (s *Store) Guests() []models.Guest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneGuests(s.guests)
}

// Len returns the number of guests.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.guests)
}

// commitLocked publishes the current list to the writer. Callers hold s.mu.
func (s *Store) commitLocked(op string) {
	s.metrics.Mutation(op)
	s.metrics.SetGuests(len(s.guests))
	if s.closed {
		slog.Warn("Store closed, mutation not persisted", "op", op)
		return
	}
	s.w.submit(models.CloneGuests(s.guests))
}

// AddGuest appends a guest named rawName after trimming it. A name that trims
// to nothing leaves the list untouched and returns ErrEmptyName.
func (s *Store) AddGuest(rawName string) (models.Guest, error) {
	name := models.NormalizeName(rawName)
	if name == "" {
		slog.Debug("Guest name cannot be empty", "raw", rawName)
		return models.Guest{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	guest := models.Guest{
		ID:          s.now().UnixMilli(),
		Name:        name,
		Color:       s.color(),
		IsLeftVenue: false,
	}
	s.guests = append(s.guests, guest)
	s.commitLocked("add")

	slog.Info("Guest added", "id", guest.ID, "name", guest.Name, "color", guest.Color)
	return guest, nil
}

// ToggleLeftVenue flips IsLeftVenue on every guest with id and returns the
// first of them as it is after the flip. The bool reports whether any guest
// matched; an unknown id changes nothing.
func (s *Store) ToggleLeftVenue(id int64) (models.Guest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		toggled models.Guest
		matched bool
	)
	for i := range s.guests {
		if s.guests[i].ID != id {
			continue
		}
		s.guests[i].IsLeftVenue = !s.guests[i].IsLeftVenue
		if !matched {
			toggled = s.guests[i]
			matched = true
		}
	}
	if !matched {
		slog.Debug("Toggle ignored, no such guest", "id", id)
		return models.Guest{}, false
	}

	s.commitLocked("toggle")
	slog.Info("Guest toggled", "id", id, "left", toggled.IsLeftVenue)
	return toggled, true
}

// DeleteGuest removes every guest with id and returns how many were removed.
// The result is persisted even when nothing matched.
func (s *Store) DeleteGuest(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	removed := len(s.guests) - len(kept)
	s.guests = kept
	s.commitLocked("delete")

	slog.Info("Guest deleted", "id", id, "removed", removed)
	return removed
}

// LoadRemoteSeed fetches the remote records and appends them to whatever is
// in memory. Records whose id is already listed are skipped, so a restored
// list keeps one copy of each seeded guest with its left-venue state. On
// failure nothing is appended and the error is returned.
func (s *Store) LoadRemoteSeed(ctx context.Context) (int, error) {
	if s.fetcher == nil {
		return 0, ErrNoSeed
	}

	records, err := s.fetcher.Fetch(ctx)
	s.metrics.SeedFetched(err)
	if err != nil {
		slog.Error("Error fetching remote guests", "error", err)
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[int64]struct{}, len(s.guests)+len(records))
	for _, g := range s.guests {
		known[g.ID] = struct{}{}
	}

	added, skipped := 0, 0
	for _, r := range records {
		name := models.NormalizeName(r.Name)
		if name == "" {
			slog.Warn("Skipping seed record without a name", "id", r.ID)
			continue
		}
		if _, ok := known[r.ID]; ok {
			skipped++
			continue
		}
		known[r.ID] = struct{}{}
		s.guests = append(s.guests, models.Guest{
			ID:    r.ID,
			Name:  name,
			Color: s.color(),
		})
		added++
	}
	if added > 0 {
		s.commitLocked("seed")
	}

	slog.Info("Remote guests merged", "added", added, "already_listed", skipped, "total", len(s.guests))
	return added, nil
}

// Restore replaces the in-memory list with what the durable slot holds.
// It does not write anything back.
func (s *Store) Restore(ctx context.Context, loader storage.Loader) (int, error) {
	guests, err := loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore guests: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.guests = models.CloneGuests(guests)
	s.metrics.SetGuests(len(s.guests))

	slog.Info("Guests restored", "count", len(s.guests))
	return len(s.guests), nil
}

// Flush blocks until every mutation made before the call has been written.
func (s *Store) Flush(ctx context.Context) error {
	return s.w.flush(ctx)
}

// Close writes any pending snapshot and stops the writer. Mutations after
// Close still change memory but are no longer persisted.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.w.close()
}
