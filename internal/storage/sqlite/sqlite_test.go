package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/guestlist/internal/models"
	"github.com/mmynk/guestlist/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "guestlist-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Load on empty slot returns empty list", func(t *testing.T) {
		guests, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if guests == nil || len(guests) != 0 {
			t.Errorf("Expected empty non-nil list, got %v", guests)
		}
	})

	t.Run("Get missing key returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Save then Load round trips the list", func(t *testing.T) {
		original := []models.Guest{
			{ID: 1700000000000, Name: "Alice", Color: models.ColorBlue},
			{ID: 1, Name: "Leanne Graham", Color: models.ColorRed, IsLeftVenue: true},
		}

		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		retrieved, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(retrieved) != len(original) {
			t.Fatalf("Count mismatch: got %d, want %d", len(retrieved), len(original))
		}
		for i := range original {
			if retrieved[i] != original[i] {
				t.Errorf("Guest %d mismatch: got %+v, want %+v", i, retrieved[i], original[i])
			}
		}
	})

	t.Run("Save replaces the whole value", func(t *testing.T) {
		if err := store.Save(ctx, []models.Guest{{ID: 9, Name: "Bob", Color: models.ColorRed}}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := store.Save(ctx, nil); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		blob, err := store.Get(ctx, storage.GuestsKey)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(blob) != "[]" {
			t.Errorf("Expected [], got %s", blob)
		}
	})
}

func TestSQLiteStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := first.Save(ctx, []models.Guest{{ID: 42, Name: "Carol", Color: models.ColorBlue}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	first.Close()

	// Migrations must be idempotent across restarts.
	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer second.Close()

	guests, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(guests) != 1 || guests[0].Name != "Carol" {
		t.Errorf("Unexpected guests after reopen: %+v", guests)
	}
}
