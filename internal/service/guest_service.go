package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/guestlist/internal/guestlist"
	"github.com/mmynk/guestlist/internal/models"
	"github.com/mmynk/guestlist/pkg/api"
	"github.com/mmynk/guestlist/pkg/api/apiconnect"
)

// GuestList is the part of guestlist.Store the service drives.
type GuestList interface {
	Guests() []models.Guest
	AddGuest(rawName string) (models.Guest, error)
	ToggleLeftVenue(id int64) (models.Guest, bool)
	DeleteGuest(id int64) int
	LoadRemoteSeed(ctx context.Context) (int, error)
}

var _ GuestList = (*guestlist.Store)(nil)

// GuestService implements the Connect GuestService
type GuestService struct {
	apiconnect.UnimplementedGuestServiceHandler
	guests GuestList
}

// NewGuestService creates a new GuestService backed by the given list.
func NewGuestService(guests GuestList) *GuestService {
	return &GuestService{guests: guests}
}

func toProto(g models.Guest) *api.Guest {
	return &api.Guest{
		Id:          g.ID,
		Name:        g.Name,
		Color:       string(g.Color),
		IsLeftVenue: g.IsLeftVenue,
	}
}

// ListGuests returns every guest in insertion order.
func (s *GuestService) ListGuests(ctx context.Context, req *connect.Request[api.ListGuestsRequest]) (*connect.Response[api.ListGuestsResponse], error) {
	guests := s.guests.Guests()

	protoGuests := make([]*api.Guest, len(guests))
	for i, g := range guests {
		protoGuests[i] = toProto(g)
	}

	slog.Debug("ListGuests successful", "count", len(guests))

	return connect.NewResponse(&api.ListGuestsResponse{
		Guests: protoGuests,
	}), nil
}

// AddGuest appends a guest. A blank name is reported as Added=false, not as an error.
func (s *GuestService) AddGuest(ctx context.Context, req *connect.Request[api.AddGuestRequest]) (*connect.Response[api.AddGuestResponse], error) {
	slog.Info("AddGuest request received", "name", req.Msg.GetName())

	guest, err := s.guests.AddGuest(req.Msg.GetName())
	if errors.Is(err, guestlist.ErrEmptyName) {
		return connect.NewResponse(&api.AddGuestResponse{Added: false}), nil
	}
	if err != nil {
		slog.Error("AddGuest failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.AddGuestResponse{
		Guest: toProto(guest),
		Added: true,
	}), nil
}

// ToggleLeftVenue flips the left-venue flag. An unknown id is not an error.
func (s *GuestService) ToggleLeftVenue(ctx context.Context, req *connect.Request[api.ToggleLeftVenueRequest]) (*connect.Response[api.ToggleLeftVenueResponse], error) {
	id := req.Msg.GetId()
	slog.Info("ToggleLeftVenue request received", "id", id)

	if id == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id required"))
	}

	guest, ok := s.guests.ToggleLeftVenue(id)
	if !ok {
		return connect.NewResponse(&api.ToggleLeftVenueResponse{Found: false}), nil
	}

	return connect.NewResponse(&api.ToggleLeftVenueResponse{
		Found: true,
		Guest: toProto(guest),
	}), nil
}

// DeleteGuest removes every guest with the id.
func (s *GuestService) DeleteGuest(ctx context.Context, req *connect.Request[api.DeleteGuestRequest]) (*connect.Response[api.DeleteGuestResponse], error) {
	id := req.Msg.GetId()
	slog.Info("DeleteGuest request received", "id", id)

	if id == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id required"))
	}

	removed := s.guests.DeleteGuest(id)

	return connect.NewResponse(&api.DeleteGuestResponse{
		Removed: int32(removed),
	}), nil
}

// ReloadSeed fetches the remote seed again and appends it.
func (s *GuestService) ReloadSeed(ctx context.Context, req *connect.Request[api.ReloadSeedRequest]) (*connect.Response[api.ReloadSeedResponse], error) {
	slog.Info("ReloadSeed request received")

	added, err := s.guests.LoadRemoteSeed(ctx)
	if errors.Is(err, guestlist.ErrNoSeed) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	return connect.NewResponse(&api.ReloadSeedResponse{
		Added: int32(added),
	}), nil
}
