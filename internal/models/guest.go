package models

import (
	"math/rand/v2"
	"strings"
)

// Color is the display tag assigned to a guest when it is created.
type Color string

const (
	ColorBlue Color = "blue"
	ColorRed  Color = "red"
)

// Colors lists every allowed Color.
var Colors = []Color{ColorBlue, ColorRed}

// Valid reports whether c is one of Colors.
func (c Color) Valid() bool {
	return c == ColorBlue || c == ColorRed
}

// RandomColor picks one of Colors uniformly.
// It is a cosmetic choice, not a security-relevant random source.
func RandomColor() Color {
	return Colors[rand.IntN(len(Colors))]
}

// Guest represents one attendee on the list.
type Guest struct {
	// ID identifies the guest. See the package doc for how IDs are assigned.
	ID int64 `json:"id"`

	// Name is the trimmed, non-empty display name.
	Name string `json:"name"`

	// Color is fixed at creation time.
	Color Color `json:"color"`

	// IsLeftVenue is set once the guest has left. Seed records omit it, which
	// decodes as false.
	IsLeftVenue bool `json:"isLeftVenue"`
}

// NormalizeName trims surrounding whitespace from a raw guest name.
// An empty result means the name is not acceptable.
func NormalizeName(raw string) string {
	return strings.TrimSpace(raw)
}

// CloneGuests returns a copy of guests that shares no backing array with it.
// A nil or empty input yields an empty, non-nil slice so it encodes as [].
func CloneGuests(guests []Guest) []Guest {
	out := make([]Guest, len(guests))
	copy(out, guests)
	return out
}
