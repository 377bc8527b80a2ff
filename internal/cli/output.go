package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/guestlist/pkg/api"
)

// formatter handles JSON vs text output for CLI commands.
type formatter struct {
	format string
	w      io.Writer
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *formatter {
	return &formatter{format: opts.Format, w: cmd.OutOrStdout()}
}

func (f *formatter) json(v any) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// guests prints the list newest first, the way the list is displayed.
func (f *formatter) guests(guests []*api.Guest) error {
	if f.format == "json" {
		if guests == nil {
			guests = []*api.Guest{}
		}
		return f.json(guests)
	}
	if len(guests) == 0 {
		_, err := fmt.Fprintln(f.w, "No guests yet")
		return err
	}

	tw := tabwriter.NewWriter(f.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tLEFT")
	for i := len(guests) - 1; i >= 0; i-- {
		g := guests[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", g.Id, g.Name, g.Color, yesNo(g.IsLeftVenue))
	}
	return tw.Flush()
}

func (f *formatter) guest(msg any, g *api.Guest, verb string) error {
	if f.format == "json" {
		return f.json(msg)
	}
	_, err := fmt.Fprintf(f.w, "%s %s (id %d, %s, left: %s)\n", verb, g.Name, g.Id, g.Color, yesNo(g.IsLeftVenue))
	return err
}

func (f *formatter) message(msg any, text string) error {
	if f.format == "json" {
		return f.json(msg)
	}
	_, err := fmt.Fprintln(f.w, text)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
