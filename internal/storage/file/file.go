// Package file stores the durable slot as one JSON file per key on an afero filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/mmynk/guestlist/internal/models"
	"github.com/mmynk/guestlist/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps each key in <dir>/<key>.json.
type Store struct {
	fs  afero.Fs
	dir string

	// Serializes temp-file + rename pairs within this process.
	mu sync.Mutex
}

// New returns a Store rooted at dir on fsys, creating dir if needed.
func New(fsys afero.Fs, dir string) (*Store, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{fs: fsys, dir: dir}, nil
}

// NewOS returns a Store on the real filesystem.
func NewOS(dir string) (*Store, error) {
	return New(afero.NewOsFs(), dir)
}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get returns the value stored under key, or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(s.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get %q: %w", key, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return b, nil
}

// Put replaces the value stored under key. Readers never observe a partial file.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", p, err)
	}
	return nil
}

// Save persists the full guest list under storage.GuestsKey.
func (s *Store) Save(ctx context.Context, guests []models.Guest) error {
	return storage.SaveGuests(ctx, s, guests)
}

// Load reads the guest list saved under storage.GuestsKey.
func (s *Store) Load(ctx context.Context) ([]models.Guest, error) {
	return storage.LoadGuests(ctx, s)
}

// Close is a no-op; files are not held open between calls.
func (s *Store) Close() error {
	return nil
}
