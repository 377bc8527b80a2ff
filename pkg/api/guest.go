// Package api defines the guestlist.v1 wire messages.
//
// Messages travel as JSON over the Connect protocol, see package apiconnect.
package api

// Guest is the wire form of one guest.
type Guest struct {
	Id          int64  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Color       string `json:"color,omitempty"`
	IsLeftVenue bool   `json:"isLeftVenue,omitempty"`
}

type ListGuestsRequest struct{}

type ListGuestsResponse struct {
	// Guests in insertion order; clients decide display order.
	Guests []*Guest `json:"guests,omitempty"`
}

type AddGuestRequest struct {
	Name string `json:"name,omitempty"`
}

type AddGuestResponse struct {
	Guest *Guest `json:"guest,omitempty"`
	// Added is false when the name was blank; that is not an error.
	Added bool `json:"added,omitempty"`
}

type ToggleLeftVenueRequest struct {
	Id int64 `json:"id,omitempty"`
}

type ToggleLeftVenueResponse struct {
	// Guest is the first guest with the id after the toggle, nil if none matched.
	Guest *Guest `json:"guest,omitempty"`
	Found bool   `json:"found,omitempty"`
}

type DeleteGuestRequest struct {
	Id int64 `json:"id,omitempty"`
}

type DeleteGuestResponse struct {
	Removed int32 `json:"removed,omitempty"`
}

type ReloadSeedRequest struct{}

type ReloadSeedResponse struct {
	Added int32 `json:"added,omitempty"`
}

// GetGuests returns the guests or nil on a nil receiver.
func (x *ListGuestsResponse) GetGuests() []*Guest {
	if x == nil {
		return nil
	}
	return x.Guests
}

// GetName returns the name or "" on a nil receiver.
func (x *AddGuestRequest) GetName() string {
	if x == nil {
		return ""
	}
	return x.Name
}

// GetId returns the id or 0 on a nil receiver.
func (x *ToggleLeftVenueRequest) GetId() int64 {
	if x == nil {
		return 0
	}
	return x.Id
}

// GetId returns the id or 0 on a nil receiver.
func (x *DeleteGuestRequest) GetId() int64 {
	if x == nil {
		return 0
	}
	return x.Id
}

// GetGuest returns the toggled guest or nil on a nil receiver.
func (x *ToggleLeftVenueResponse) GetGuest() *Guest {
	if x == nil {
		return nil
	}
	return x.Guest
}
