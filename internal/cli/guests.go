package cli

import (
	"fmt"
	"strconv"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/guestlist/pkg/api"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List guests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rootOpts.client()
			if err != nil {
				return err
			}
			resp, err := client.ListGuests(cmd.Context(), connect.NewRequest(&api.ListGuestsRequest{}))
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd).guests(resp.Msg.GetGuests())
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a guest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rootOpts.client()
			if err != nil {
				return err
			}
			resp, err := client.AddGuest(cmd.Context(), connect.NewRequest(&api.AddGuestRequest{Name: args[0]}))
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			if !resp.Msg.Added {
				return f.message(resp.Msg, "Guest name cannot be empty, nothing added")
			}
			return f.guest(resp.Msg, resp.Msg.Guest, "Added")
		},
	}
}

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a guest as left, or back at the venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := rootOpts.client()
			if err != nil {
				return err
			}
			resp, err := client.ToggleLeftVenue(cmd.Context(), connect.NewRequest(&api.ToggleLeftVenueRequest{Id: id}))
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			if !resp.Msg.Found {
				return f.message(resp.Msg, fmt.Sprintf("No guest with id %d", id))
			}
			return f.guest(resp.Msg, resp.Msg.Guest, "Toggled")
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a guest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := rootOpts.client()
			if err != nil {
				return err
			}
			resp, err := client.DeleteGuest(cmd.Context(), connect.NewRequest(&api.DeleteGuestRequest{Id: id}))
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd).message(resp.Msg, fmt.Sprintf("Removed %d guest(s)", resp.Msg.Removed))
		},
	}
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fetch the remote seed list again and append it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := rootOpts.client()
			if err != nil {
				return err
			}
			resp, err := client.ReloadSeed(cmd.Context(), connect.NewRequest(&api.ReloadSeedRequest{}))
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd).message(resp.Msg, fmt.Sprintf("Added %d seeded guest(s)", resp.Msg.Added))
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid guest id %q", s)
	}
	return id, nil
}
