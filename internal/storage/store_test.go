package storage

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/guestlist/internal/models"
)

func TestEncodeGuestsGolden(t *testing.T) {
	guests := []models.Guest{
		{ID: 1700000000000, Name: "Alice", Color: models.ColorBlue},
		{ID: 2, Name: "Ervin Howell", Color: models.ColorRed, IsLeftVenue: true},
	}

	blob, err := EncodeGuests(guests)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "guests_blob", blob)
}

func TestEncodeGuestsNil(t *testing.T) {
	blob, err := EncodeGuests(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))
}

func TestDecodeGuests(t *testing.T) {
	t.Run("empty blob", func(t *testing.T) {
		guests, err := DecodeGuests(nil)
		require.NoError(t, err)
		assert.NotNil(t, guests)
		assert.Empty(t, guests)
	})

	t.Run("seeded record without isLeftVenue", func(t *testing.T) {
		guests, err := DecodeGuests([]byte(`[{"id":1,"name":"Leanne Graham","color":"blue"}]`))
		require.NoError(t, err)
		require.Len(t, guests, 1)
		assert.False(t, guests[0].IsLeftVenue)
	})

	t.Run("malformed blob", func(t *testing.T) {
		_, err := DecodeGuests([]byte(`{"id":1}`))
		assert.Error(t, err)
	})
}
