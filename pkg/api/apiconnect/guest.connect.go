// Package apiconnect wires the guestlist.v1.GuestService onto Connect.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/guestlist/pkg/api"
)

// GuestServiceName is the fully-qualified name of the GuestService service.
const GuestServiceName = "guestlist.v1.GuestService"

// Procedure names, usable as http.ServeMux patterns and in interceptors.
const (
	GuestServiceListGuestsProcedure      = "/guestlist.v1.GuestService/ListGuests"
	GuestServiceAddGuestProcedure        = "/guestlist.v1.GuestService/AddGuest"
	GuestServiceToggleLeftVenueProcedure = "/guestlist.v1.GuestService/ToggleLeftVenue"
	GuestServiceDeleteGuestProcedure     = "/guestlist.v1.GuestService/DeleteGuest"
	GuestServiceReloadSeedProcedure      = "/guestlist.v1.GuestService/ReloadSeed"
)

// GuestServiceClient is a client for the guestlist.v1.GuestService service.
type GuestServiceClient interface {
	ListGuests(context.Context, *connect.Request[api.ListGuestsRequest]) (*connect.Response[api.ListGuestsResponse], error)
	AddGuest(context.Context, *connect.Request[api.AddGuestRequest]) (*connect.Response[api.AddGuestResponse], error)
	ToggleLeftVenue(context.Context, *connect.Request[api.ToggleLeftVenueRequest]) (*connect.Response[api.ToggleLeftVenueResponse], error)
	DeleteGuest(context.Context, *connect.Request[api.DeleteGuestRequest]) (*connect.Response[api.DeleteGuestResponse], error)
	ReloadSeed(context.Context, *connect.Request[api.ReloadSeedRequest]) (*connect.Response[api.ReloadSeedResponse], error)
}

// NewGuestServiceClient constructs a client for the guestlist.v1.GuestService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewGuestServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GuestServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &guestServiceClient{
		listGuests: connect.NewClient[api.ListGuestsRequest, api.ListGuestsResponse](
			httpClient,
			baseURL+GuestServiceListGuestsProcedure,
			append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...,
		),
		addGuest: connect.NewClient[api.AddGuestRequest, api.AddGuestResponse](
			httpClient,
			baseURL+GuestServiceAddGuestProcedure,
			opts...,
		),
		toggleLeftVenue: connect.NewClient[api.ToggleLeftVenueRequest, api.ToggleLeftVenueResponse](
			httpClient,
			baseURL+GuestServiceToggleLeftVenueProcedure,
			opts...,
		),
		deleteGuest: connect.NewClient[api.DeleteGuestRequest, api.DeleteGuestResponse](
			httpClient,
			baseURL+GuestServiceDeleteGuestProcedure,
			opts...,
		),
		reloadSeed: connect.NewClient[api.ReloadSeedRequest, api.ReloadSeedResponse](
			httpClient,
			baseURL+GuestServiceReloadSeedProcedure,
			opts...,
		),
	}
}

type guestServiceClient struct {
	listGuests      *connect.Client[api.ListGuestsRequest, api.ListGuestsResponse]
	addGuest        *connect.Client[api.AddGuestRequest, api.AddGuestResponse]
	toggleLeftVenue *connect.Client[api.ToggleLeftVenueRequest, api.ToggleLeftVenueResponse]
	deleteGuest     *connect.Client[api.DeleteGuestRequest, api.DeleteGuestResponse]
	reloadSeed      *connect.Client[api.ReloadSeedRequest, api.ReloadSeedResponse]
}

func (c *guestServiceClient) ListGuests(ctx context.Context, req *connect.Request[api.ListGuestsRequest]) (*connect.Response[api.ListGuestsResponse], error) {
	return c.listGuests.CallUnary(ctx, req)
}

func (c *guestServiceClient) AddGuest(ctx context.Context, req *connect.Request[api.AddGuestRequest]) (*connect.Response[api.AddGuestResponse], error) {
	return c.addGuest.CallUnary(ctx, req)
}

func (c *guestServiceClient) ToggleLeftVenue(ctx context.Context, req *connect.Request[api.ToggleLeftVenueRequest]) (*connect.Response[api.ToggleLeftVenueResponse], error) {
	return c.toggleLeftVenue.CallUnary(ctx, req)
}

func (c *guestServiceClient) DeleteGuest(ctx context.Context, req *connect.Request[api.DeleteGuestRequest]) (*connect.Response[api.DeleteGuestResponse], error) {
	return c.deleteGuest.CallUnary(ctx, req)
}

func (c *guestServiceClient) ReloadSeed(ctx context.Context, req *connect.Request[api.ReloadSeedRequest]) (*connect.Response[api.ReloadSeedResponse], error) {
	return c.reloadSeed.CallUnary(ctx, req)
}

// GuestServiceHandler is implemented by the guestlist.v1.GuestService server.
type GuestServiceHandler interface {
	ListGuests(context.Context, *connect.Request[api.ListGuestsRequest]) (*connect.Response[api.ListGuestsResponse], error)
	AddGuest(context.Context, *connect.Request[api.AddGuestRequest]) (*connect.Response[api.AddGuestResponse], error)
	ToggleLeftVenue(context.Context, *connect.Request[api.ToggleLeftVenueRequest]) (*connect.Response[api.ToggleLeftVenueResponse], error)
	DeleteGuest(context.Context, *connect.Request[api.DeleteGuestRequest]) (*connect.Response[api.DeleteGuestResponse], error)
	ReloadSeed(context.Context, *connect.Request[api.ReloadSeedRequest]) (*connect.Response[api.ReloadSeedResponse], error)
}

// NewGuestServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewGuestServiceHandler(svc GuestServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	listGuests := connect.NewUnaryHandler(
		GuestServiceListGuestsProcedure,
		svc.ListGuests,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...,
	)
	addGuest := connect.NewUnaryHandler(GuestServiceAddGuestProcedure, svc.AddGuest, opts...)
	toggleLeftVenue := connect.NewUnaryHandler(GuestServiceToggleLeftVenueProcedure, svc.ToggleLeftVenue, opts...)
	deleteGuest := connect.NewUnaryHandler(GuestServiceDeleteGuestProcedure, svc.DeleteGuest, opts...)
	reloadSeed := connect.NewUnaryHandler(GuestServiceReloadSeedProcedure, svc.ReloadSeed, opts...)

	return "/" + GuestServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GuestServiceListGuestsProcedure:
			listGuests.ServeHTTP(w, r)
		case GuestServiceAddGuestProcedure:
			addGuest.ServeHTTP(w, r)
		case GuestServiceToggleLeftVenueProcedure:
			toggleLeftVenue.ServeHTTP(w, r)
		case GuestServiceDeleteGuestProcedure:
			deleteGuest.ServeHTTP(w, r)
		case GuestServiceReloadSeedProcedure:
			reloadSeed.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGuestServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGuestServiceHandler struct{}

func (UnimplementedGuestServiceHandler) ListGuests(context.Context, *connect.Request[api.ListGuestsRequest]) (*connect.Response[api.ListGuestsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("ListGuests"))
}

func (UnimplementedGuestServiceHandler) AddGuest(context.Context, *connect.Request[api.AddGuestRequest]) (*connect.Response[api.AddGuestResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("AddGuest"))
}

func (UnimplementedGuestServiceHandler) ToggleLeftVenue(context.Context, *connect.Request[api.ToggleLeftVenueRequest]) (*connect.Response[api.ToggleLeftVenueResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("ToggleLeftVenue"))
}

func (UnimplementedGuestServiceHandler) DeleteGuest(context.Context, *connect.Request[api.DeleteGuestRequest]) (*connect.Response[api.DeleteGuestResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("DeleteGuest"))
}

func (UnimplementedGuestServiceHandler) ReloadSeed(context.Context, *connect.Request[api.ReloadSeedRequest]) (*connect.Response[api.ReloadSeedResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errUnimplemented("ReloadSeed"))
}

type errUnimplemented string

func (e errUnimplemented) Error() string {
	return GuestServiceName + "." + string(e) + " is not implemented"
}
