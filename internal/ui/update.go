package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 7; h > 3 {
			m.table.SetHeight(h)
		}

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "esc", "q", "ctrl+c":
			return m, tea.Quit

		case "tab":
			m.page = (m.page + 1) % pageCount
		case "shift+tab":
			m.page = (m.page + pageCount - 1) % pageCount

		case "f1", "f2":
			m.page = Page(key[1] - '1')

		case "up", "w":
			if m.page == ManufacturersPage {
				m.vendorUp()
				return m, nil
			}
		case "down", "s":
			if m.page == ManufacturersPage {
				m.vendorDown()
				return m, nil
			}
		case "pgup":
			if m.page == ManufacturersPage {
				m.vendorCursor = 0
				return m, nil
			}
			m.table.GotoTop()
			return m, nil
		case "pgdown":
			if m.page == ManufacturersPage {
				m.vendorCursor = max(0, len(m.vendors)-1)
				return m, nil
			}
			m.table.GotoBottom()
			return m, nil
		}

		// "w"/"s" double as table movement on the devices page.
		if m.page == DevicesPage {
			switch msg.String() {
			case "w":
				m.table.MoveUp(1)
				return m, nil
			case "s":
				m.table.MoveDown(1)
				return m, nil
			}
		}

	case TickMsg:
		m.devices = m.catalog.Devices()
		// Keep rows stable across refreshes: discovery order, address as
		// the tiebreak.
		sort.Slice(m.devices, func(i, j int) bool {
			if !m.devices[i].FirstSeen.Equal(m.devices[j].FirstSeen) {
				return m.devices[i].FirstSeen.Before(m.devices[j].FirstSeen)
			}
			return m.devices[i].Addr.String() < m.devices[j].Addr.String()
		})
		m.vendors = m.catalog.VendorDistribution()
		if m.vendorCursor >= len(m.vendors) {
			m.vendorCursor = max(0, len(m.vendors)-1)
		}

		rows := make([]table.Row, len(m.devices))
		for i, d := range m.devices {
			sent := ""
			if d.Transmitted {
				sent = "yes"
			}
			rows[i] = table.Row{
				strings.ToUpper(d.Addr.String()),
				d.VendorName(),
				sent,
				d.SSID(),
				fmt.Sprintf("%d", d.Frames),
				d.LastSeen.Format("15:04:05"),
			}
		}
		m.table.SetRows(rows)

		return m, tickCmd()

	case FatalMsg:
		m.fatal = msg.Err
		return m, tea.Quit
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) vendorUp() {
	if len(m.vendors) == 0 {
		return
	}
	if m.vendorCursor <= 0 {
		m.vendorCursor = len(m.vendors) - 1
	} else {
		m.vendorCursor--
	}
}

func (m *Model) vendorDown() {
	if len(m.vendors) == 0 {
		return
	}
	if m.vendorCursor >= len(m.vendors)-1 {
		m.vendorCursor = 0
	} else {
		m.vendorCursor++
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
