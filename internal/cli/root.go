// Package cli implements the guestlist command line.
package cli

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/guestlist/internal/config"
	"github.com/mmynk/guestlist/pkg/api/apiconnect"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Server     string
	Format     string // "json" | "text"

	// HTTPClient overrides the client used to reach the server.
	HTTPClient *http.Client

	v *viper.Viper
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the guestlist CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	opts.v = config.New()

	cmd := &cobra.Command{
		Use:   "guestlist",
		Short: "Keep track of who is at the venue",
		Long: `guestlist serves a guest list over Connect RPC and talks to it.

Run "guestlist serve" to start the server, then add, toggle and delete
guests with the other commands or interactively with "guestlist tui".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./guestlist.toml)")
	cmd.PersistentFlags().StringVar(&opts.Server, "server", "", "server address (overrides server.address)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	_ = opts.v.BindPFlag("server.address", cmd.PersistentFlags().Lookup("server"))

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewToggleCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// loadConfig reads the config file and environment, with flags applied.
func (o *RootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.v, o.ConfigPath)
}

// client dials the configured server.
func (o *RootOptions) client() (apiconnect.GuestServiceClient, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	httpClient := o.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return apiconnect.NewGuestServiceClient(httpClient, cfg.Server.Address), nil
}
