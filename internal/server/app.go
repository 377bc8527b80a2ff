package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sourcegraph/conc"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/guestlist/internal/config"
	"github.com/mmynk/guestlist/internal/guestlist"
	"github.com/mmynk/guestlist/internal/metrics"
	"github.com/mmynk/guestlist/internal/seed"
	"github.com/mmynk/guestlist/internal/service"
	"github.com/mmynk/guestlist/internal/storage"
	"github.com/mmynk/guestlist/internal/storage/file"
	"github.com/mmynk/guestlist/internal/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived piece of a running server.
type App struct {
	cfg      config.Config
	store    storage.Store
	list     *guestlist.Store
	registry *prometheus.Registry
	handler  http.Handler

	background conc.WaitGroup
}

// OpenStore opens the durable slot backend named by cfg.Driver.
func OpenStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.New(cfg.Path)
	case "file":
		return file.NewOS(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// New wires storage, the guest list, and the HTTP handler from cfg.
func New(cfg config.Config) (*App, error) {
	store, err := OpenStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	return NewWithStore(cfg, store), nil
}

// NewWithStore is New with an already opened store. The App takes ownership
// of store and closes it in Close.
func NewWithStore(cfg config.Config, store storage.Store) *App {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	opts := guestlist.Options{Metrics: m}
	if cfg.Seed.Enabled {
		opts.Fetcher = seed.NewClient(seed.Options{
			URL:      cfg.Seed.URL,
			Timeout:  cfg.Seed.Timeout,
			Attempts: cfg.Seed.Attempts,
		})
	}
	list := guestlist.New(store, opts)

	return &App{
		cfg:      cfg,
		store:    store,
		list:     list,
		registry: registry,
		handler:  NewRouter(service.NewGuestService(list), m, registry),
	}
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// List returns the guest list the App serves.
func (a *App) List() *guestlist.Store {
	return a.list
}

// Start restores the durable slot if configured and then merges the remote
// seed in the background. A failed restore is logged and the list starts empty.
func (a *App) Start(ctx context.Context) {
	if a.cfg.GuestList.RestoreOnStart {
		if _, err := a.list.Restore(ctx, a.store); err != nil {
			slog.Error("Failed to restore guests, starting empty", "error", err)
		}
	}

	if !a.cfg.Seed.Enabled {
		return
	}
	a.background.Go(func() {
		// Errors are already logged by the list.
		_, _ = a.list.LoadRemoteSeed(ctx)
	})
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           h2c.NewHandler(a.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close waits for background work, flushes pending writes and closes storage.
func (a *App) Close() error {
	a.background.Wait()
	a.list.Close()
	return a.store.Close()
}
