// Package ui renders the live survey terminal interface: a tab bar over
// a device table page and a manufacturer distribution page, refreshed
// from the catalog on a timer.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
	"github.com/lcalzada-xor/airscout/internal/core/ports"
)

// Page identifies one of the tabbed views.
type Page int

const (
	DevicesPage Page = iota
	ManufacturersPage

	pageCount = 2
)

func (p Page) title() string {
	switch p {
	case DevicesPage:
		return "Devices"
	case ManufacturersPage:
		return "Manufacturers"
	}
	return "?"
}

// TickMsg drives the periodic catalog refresh.
type TickMsg time.Time

// FatalMsg carries a capture-session error into the UI loop. The UI
// quits and the error is surfaced after the terminal is restored.
type FatalMsg struct{ Err error }

const refreshInterval = 500 * time.Millisecond

// Model is the top-level bubbletea model.
type Model struct {
	catalog   ports.CatalogReader
	iface     string
	sessionID string

	page    Page
	table   table.Model
	devices []domain.Device
	vendors []domain.VendorCount

	// manufacturers page selection, kept separately from the table
	// cursor so each page remembers its own position.
	vendorCursor int

	width  int
	height int

	fatal error
}

// New creates the UI model over a catalog snapshot source.
func New(catalog ports.CatalogReader, iface, sessionID string) Model {
	columns := []table.Column{
		{Title: "Address", Width: 19},
		{Title: "Vendor", Width: 24},
		{Title: "Sent", Width: 5},
		{Title: "SSID", Width: 24},
		{Title: "Frames", Width: 8},
		{Title: "Last Seen", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{
		catalog:   catalog,
		iface:     iface,
		sessionID: sessionID,
		table:     t,
	}
}

// Err returns the capture error that terminated the UI, if any.
func (m Model) Err() error { return m.fatal }

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
