package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/guestlist/internal/server"
	"github.com/mmynk/guestlist/pkg/logging"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the guest list server",
		Long: `Run the guest list server.

On start the durable slot is restored (guestlist.restore_on_start) and the
remote seed is merged in the background (seed.enabled).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				rootOpts.v.Set("server.port", port)
			}
			return runServe(cmd.Context(), rootOpts)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port (overrides server.port)")

	return cmd
}

func runServe(ctx context.Context, opts *RootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	closer := logging.SetupWithOptions(logging.Options{
		Level:      logging.ParseLevel(cfg.Log.Level),
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer closer.Close()

	app, err := server.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize server", "error", err)
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Start(ctx)
	return app.Run(ctx)
}
