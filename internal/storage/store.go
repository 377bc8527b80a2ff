// Package storage provides abstractions for the durable guest slot.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/guestlist/internal/models"
)

// GuestsKey is the key the guest list blob is stored under.
const GuestsKey = "guests"

// ErrNotFound is returned by KV.Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Saver persists the full guest list, replacing whatever was stored before.
type Saver interface {
	Save(ctx context.Context, guests []models.Guest) error
}

// Loader reads back the last saved guest list.
// A slot that was never written loads as an empty list, not an error.
type Loader interface {
	Load(ctx context.Context) ([]models.Guest, error)
}

// KV is a whole-value key-value slot. Put replaces the value wholesale;
// there is no partial update.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store defines the durable slot operations a backend must provide.
// This abstraction allows swapping storage backends (SQLite, plain files)
// without changing the guest list.
type Store interface {
	KV
	Saver
	Loader

	// Close releases any resources held by the store.
	Close() error
}

// EncodeGuests serializes guests into the blob format.
// A nil list is written as [] so the slot always holds a JSON array.
func EncodeGuests(guests []models.Guest) ([]byte, error) {
	if guests == nil {
		guests = []models.Guest{}
	}
	b, err := json.Marshal(guests)
	if err != nil {
		return nil, fmt.Errorf("failed to encode guests: %w", err)
	}
	return b, nil
}

// DecodeGuests parses a blob written by EncodeGuests.
func DecodeGuests(blob []byte) ([]models.Guest, error) {
	guests := []models.Guest{}
	if len(blob) == 0 {
		return guests, nil
	}
	if err := json.Unmarshal(blob, &guests); err != nil {
		return nil, fmt.Errorf("failed to decode guests: %w", err)
	}
	return guests, nil
}

// SaveGuests writes guests to kv under GuestsKey.
func SaveGuests(ctx context.Context, kv KV, guests []models.Guest) error {
	blob, err := EncodeGuests(guests)
	if err != nil {
		return err
	}
	return kv.Put(ctx, GuestsKey, blob)
}

// LoadGuests reads the list under GuestsKey from kv.
func LoadGuests(ctx context.Context, kv KV) ([]models.Guest, error) {
	blob, err := kv.Get(ctx, GuestsKey)
	if errors.Is(err, ErrNotFound) {
		return []models.Guest{}, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeGuests(blob)
}
