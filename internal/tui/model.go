// Package tui is the interactive guest list: a name field on top and the
// guests below, newest first.
package tui

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/guestlist/pkg/api"
)

// Client is the subset of the GuestService the TUI calls.
type Client interface {
	ListGuests(context.Context, *connect.Request[api.ListGuestsRequest]) (*connect.Response[api.ListGuestsResponse], error)
	AddGuest(context.Context, *connect.Request[api.AddGuestRequest]) (*connect.Response[api.AddGuestResponse], error)
	ToggleLeftVenue(context.Context, *connect.Request[api.ToggleLeftVenueRequest]) (*connect.Response[api.ToggleLeftVenueResponse], error)
	DeleteGuest(context.Context, *connect.Request[api.DeleteGuestRequest]) (*connect.Response[api.DeleteGuestResponse], error)
	ReloadSeed(context.Context, *connect.Request[api.ReloadSeedRequest]) (*connect.Response[api.ReloadSeedResponse], error)
}

type guestsMsg struct{ guests []*api.Guest }

type addedMsg struct {
	added bool
	name  string
}

type statusMsg string

type errMsg struct{ err error }

// Model is the bubbletea model for the guest list screen.
type Model struct {
	ctx    context.Context
	client Client

	input  textinput.Model
	guests []*api.Guest // insertion order, rendered reversed
	cursor int          // index into the rendered (newest-first) order
	status string
	width  int
}

// New creates the screen. ctx bounds every RPC the screen makes.
func New(ctx context.Context, client Client) Model {
	inp := textinput.New()
	inp.Placeholder = "guest name"
	inp.Prompt = "name> "
	inp.CharLimit = 120
	inp.Focus()
	return Model{ctx: ctx, client: client, input: inp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh())
}

// Guests returns the guests newest first, as rendered.
func (m Model) Guests() []*api.Guest {
	out := make([]*api.Guest, len(m.guests))
	for i, g := range m.guests {
		out[len(m.guests)-1-i] = g
	}
	return out
}

func (m Model) selected() *api.Guest {
	if len(m.guests) == 0 {
		return nil
	}
	return m.guests[len(m.guests)-1-m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m, m.add(m.input.Value())
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.guests)-1 {
				m.cursor++
			}
			return m, nil
		case "ctrl+t":
			if g := m.selected(); g != nil {
				return m, m.toggle(g.Id)
			}
			return m, nil
		case "ctrl+d":
			if g := m.selected(); g != nil {
				return m, m.delete(g.Id)
			}
			return m, nil
		case "ctrl+r":
			return m, m.reloadSeed()
		}

	case guestsMsg:
		m.guests = msg.guests
		m.cursor = min(m.cursor, max(len(m.guests)-1, 0))
		return m, nil

	case addedMsg:
		if !msg.added {
			m.status = "Guest name cannot be empty"
			return m, nil
		}
		m.input.SetValue("")
		m.input.Focus()
		m.cursor = 0
		m.status = fmt.Sprintf("Added %s", msg.name)
		return m, m.refresh()

	case statusMsg:
		m.status = string(msg)
		return m, m.refresh()

	case errMsg:
		m.status = "Error: " + msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.ListGuests(m.ctx, connect.NewRequest(&api.ListGuestsRequest{}))
		if err != nil {
			return errMsg{err}
		}
		return guestsMsg{guests: resp.Msg.GetGuests()}
	}
}

func (m Model) add(raw string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.AddGuest(m.ctx, connect.NewRequest(&api.AddGuestRequest{Name: raw}))
		if err != nil {
			return errMsg{err}
		}
		return addedMsg{added: resp.Msg.Added, name: strings.TrimSpace(raw)}
	}
}

func (m Model) toggle(id int64) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.ToggleLeftVenue(m.ctx, connect.NewRequest(&api.ToggleLeftVenueRequest{Id: id}))
		if err != nil {
			return errMsg{err}
		}
		g := resp.Msg.GetGuest()
		if !resp.Msg.Found || g == nil {
			return statusMsg("Guest is gone")
		}
		if g.IsLeftVenue {
			return statusMsg(g.Name + " left the venue")
		}
		return statusMsg(g.Name + " is back")
	}
}

func (m Model) delete(id int64) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.DeleteGuest(m.ctx, connect.NewRequest(&api.DeleteGuestRequest{Id: id}))
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("Removed %d guest(s)", resp.Msg.Removed))
	}
}

func (m Model) reloadSeed() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.ReloadSeed(m.ctx, connect.NewRequest(&api.ReloadSeedRequest{}))
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("Added %d seeded guest(s)", resp.Msg.Added))
	}
}
