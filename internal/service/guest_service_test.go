package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/guestlist/internal/guestlist"
	"github.com/mmynk/guestlist/internal/metrics"
	"github.com/mmynk/guestlist/internal/middleware"
	"github.com/mmynk/guestlist/internal/models"
	"github.com/mmynk/guestlist/internal/seed"
	"github.com/mmynk/guestlist/internal/storage/sqlite"
	"github.com/mmynk/guestlist/pkg/api"
	"github.com/mmynk/guestlist/pkg/api/apiconnect"
)

const seedPayload = `[
  {"id": 1, "name": "Leanne Graham"},
  {"id": 2, "name": "Ervin Howell"},
  {"id": 3, "name": "Clementine Bauch"},
  {"id": 4, "name": "Patricia Lebsack"},
  {"id": 5, "name": "Chelsey Dietrich"}
]`

type testEnv struct {
	client  apiconnect.GuestServiceClient
	list    *guestlist.Store
	store   *sqlite.SQLiteStore
	metrics *metrics.Metrics
}

// setupGuestTestServer creates a test server backed by a temp SQLite file and
// a fake seed endpoint. seedStatus other than 200 makes the seed fail.
func setupGuestTestServer(t *testing.T, seedStatus int) (*testEnv, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	seedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seedStatus != http.StatusOK {
			w.WriteHeader(seedStatus)
			return
		}
		w.Write([]byte(seedPayload))
	}))

	m := metrics.New(prometheus.NewRegistry())
	list := guestlist.New(store, guestlist.Options{
		Fetcher: seed.NewClient(seed.Options{URL: seedServer.URL}),
		Metrics: m,
	})

	path, handler := apiconnect.NewGuestServiceHandler(
		NewGuestService(list),
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m)),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	client := apiconnect.NewGuestServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		seedServer.Close()
		list.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return &testEnv{client: client, list: list, store: store, metrics: m}, cleanup
}

func flushList(t *testing.T, list *guestlist.Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := list.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
}

func TestAddGuest(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusOK)
	defer cleanup()

	resp, err := env.client.AddGuest(context.Background(), connect.NewRequest(&api.AddGuestRequest{
		Name: "  Alice  ",
	}))
	if err != nil {
		t.Fatalf("AddGuest failed: %v", err)
	}

	if !resp.Msg.Added {
		t.Fatal("expected guest to be added")
	}
	if resp.Msg.Guest.Name != "Alice" {
		t.Errorf("name: expected 'Alice', got '%s'", resp.Msg.Guest.Name)
	}
	if resp.Msg.Guest.Id == 0 {
		t.Error("expected non-zero guest ID")
	}
	if resp.Msg.Guest.Color != "blue" && resp.Msg.Guest.Color != "red" {
		t.Errorf("unexpected color %q", resp.Msg.Guest.Color)
	}
	if resp.Msg.Guest.IsLeftVenue {
		t.Error("new guest should not have left the venue")
	}

	// The durable slot catches up with memory.
	flushList(t, env.list)
	persisted, err := env.store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != resp.Msg.Guest.Id {
		t.Errorf("persisted list mismatch: %+v", persisted)
	}
}

func TestAddGuest_BlankName(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusOK)
	defer cleanup()

	resp, err := env.client.AddGuest(context.Background(), connect.NewRequest(&api.AddGuestRequest{
		Name: "   ",
	}))
	if err != nil {
		t.Fatalf("blank name must not surface an error, got %v", err)
	}
	if resp.Msg.Added {
		t.Error("expected Added=false for blank name")
	}
	if env.list.Len() != 0 {
		t.Errorf("expected empty list, got %d guests", env.list.Len())
	}
}

func TestListGuests_Empty(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusOK)
	defer cleanup()

	listResp, err := env.client.ListGuests(context.Background(), connect.NewRequest(&api.ListGuestsRequest{}))
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}

	if len(listResp.Msg.Guests) != 0 {
		t.Errorf("expected 0 guests, got %d", len(listResp.Msg.Guests))
	}
}

func TestGuestLifecycle(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusOK)
	defer cleanup()
	ctx := context.Background()

	addResp, err := env.client.AddGuest(ctx, connect.NewRequest(&api.AddGuestRequest{Name: "Alice"}))
	if err != nil {
		t.Fatalf("AddGuest failed: %v", err)
	}
	id := addResp.Msg.Guest.Id

	toggleResp, err := env.client.ToggleLeftVenue(ctx, connect.NewRequest(&api.ToggleLeftVenueRequest{Id: id}))
	if err != nil {
		t.Fatalf("ToggleLeftVenue failed: %v", err)
	}
	if !toggleResp.Msg.Found || !toggleResp.Msg.Guest.IsLeftVenue {
		t.Errorf("expected guest to have left the venue, got %+v", toggleResp.Msg)
	}

	delResp, err := env.client.DeleteGuest(ctx, connect.NewRequest(&api.DeleteGuestRequest{Id: id}))
	if err != nil {
		t.Fatalf("DeleteGuest failed: %v", err)
	}
	if delResp.Msg.Removed != 1 {
		t.Errorf("removed: expected 1, got %d", delResp.Msg.Removed)
	}

	listResp, err := env.client.ListGuests(ctx, connect.NewRequest(&api.ListGuestsRequest{}))
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}
	if len(listResp.Msg.Guests) != 0 {
		t.Errorf("expected empty list, got %d", len(listResp.Msg.Guests))
	}
}

func TestToggleLeftVenue_NotFound(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusOK)
	defer cleanup()

	resp, err := env.client.ToggleLeftVenue(context.Background(), connect.NewRequest(&api.ToggleLeftVenueRequest{
		Id: 987654321,
	}))
	if err != nil {
		t.Fatalf("unknown id should be a no-op, got %v", err)
	}
	if resp.Msg.Found || resp.Msg.Guest != nil {
		t.Errorf("expected not found, got %+v", resp.Msg)
	}
}

// deletedAfterToggle toggles a guest that is already gone from Guests by the
// time anyone reads the list again.
type deletedAfterToggle struct {
	GuestList
	guest models.Guest
}

func (d deletedAfterToggle) ToggleLeftVenue(id int64) (models.Guest, bool) {
	return d.guest, d.guest.ID == id
}

func (d deletedAfterToggle) Guests() []models.Guest {
	return nil
}

func TestToggleLeftVenue_ConcurrentDelete(t *testing.T) {
	svc := NewGuestService(deletedAfterToggle{
		guest: models.Guest{ID: 11, Name: "Bob", Color: models.ColorRed, IsLeftVenue: true},
	})

	resp, err := svc.ToggleLeftVenue(context.Background(), connect.NewRequest(&api.ToggleLeftVenueRequest{Id: 11}))
	if err != nil {
		t.Fatalf("ToggleLeftVenue failed: %v", err)
	}
	if !resp.Msg.Found || resp.Msg.GetGuest() == nil {
		t.Fatalf("expected the toggled guest in the response, got %+v", resp.Msg)
	}
	if resp.Msg.Guest.Name != "Bob" || !resp.Msg.Guest.IsLeftVenue {
		t.Errorf("unexpected guest: %+v", resp.Msg.Guest)
	}
}

func TestMissingID(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusOK)
	defer cleanup()

	_, err := env.client.DeleteGuest(context.Background(), connect.NewRequest(&api.DeleteGuestRequest{}))
	if err == nil {
		t.Fatal("expected error for missing id")
	}

	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", connectErr.Code())
	}

	_, err = env.client.ToggleLeftVenue(context.Background(), connect.NewRequest(&api.ToggleLeftVenueRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", connect.CodeOf(err))
	}

	got := testutil.ToFloat64(env.metrics.RPCRequests.WithLabelValues(
		apiconnect.GuestServiceDeleteGuestProcedure, connect.CodeInvalidArgument.String()))
	if got != 1 {
		t.Errorf("expected 1 invalid_argument DeleteGuest in metrics, got %v", got)
	}
}

func TestReloadSeed(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusOK)
	defer cleanup()

	resp, err := env.client.ReloadSeed(context.Background(), connect.NewRequest(&api.ReloadSeedRequest{}))
	if err != nil {
		t.Fatalf("ReloadSeed failed: %v", err)
	}
	if resp.Msg.Added != 5 {
		t.Errorf("added: expected 5, got %d", resp.Msg.Added)
	}

	listResp, err := env.client.ListGuests(context.Background(), connect.NewRequest(&api.ListGuestsRequest{}))
	if err != nil {
		t.Fatalf("ListGuests failed: %v", err)
	}
	if len(listResp.Msg.Guests) != 5 {
		t.Fatalf("expected 5 guests, got %d", len(listResp.Msg.Guests))
	}
	if listResp.Msg.Guests[0].Name != "Leanne Graham" {
		t.Errorf("first guest: expected 'Leanne Graham', got '%s'", listResp.Msg.Guests[0].Name)
	}
	for _, g := range listResp.Msg.Guests {
		if g.Color != "blue" && g.Color != "red" {
			t.Errorf("guest %d has unexpected color %q", g.Id, g.Color)
		}
	}
}

func TestReloadSeed_Unavailable(t *testing.T) {
	env, cleanup := setupGuestTestServer(t, http.StatusServiceUnavailable)
	defer cleanup()

	_, err := env.client.ReloadSeed(context.Background(), connect.NewRequest(&api.ReloadSeedRequest{}))
	if connect.CodeOf(err) != connect.CodeUnavailable {
		t.Errorf("expected CodeUnavailable, got %v", err)
	}
	if env.list.Len() != 0 {
		t.Errorf("failed seed must add nothing, got %d guests", env.list.Len())
	}
}

func TestReloadSeed_NotConfigured(t *testing.T) {
	list := guestlist.New(nopSaver{}, guestlist.Options{})
	defer list.Close()

	_, err := NewGuestService(list).ReloadSeed(context.Background(), connect.NewRequest(&api.ReloadSeedRequest{}))
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Errorf("expected CodeFailedPrecondition, got %v", err)
	}
}

type nopSaver struct{}

func (nopSaver) Save(context.Context, []models.Guest) error { return nil }
