package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true).
			Padding(0, 2)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("57"))

	selectedBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Bold(true)
)

const (
	vendorNameWidth = 24
	barMaxWidth     = 40
)

func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("airscout - sniffing %s", m.iface))

	tabs := make([]string, pageCount)
	for p := Page(0); p < pageCount; p++ {
		label := fmt.Sprintf("F%d %s", p+1, p.title())
		if p == m.page {
			tabs[p] = activeTabStyle.Render(label)
		} else {
			tabs[p] = tabStyle.Render(label)
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch m.page {
	case DevicesPage:
		body = boxStyle.Render(fmt.Sprintf("Devices (%d)\n", len(m.devices)) + m.table.View())
	case ManufacturersPage:
		body = boxStyle.Render("Manufacturers\n" + m.renderBars())
	}

	help := "esc quit · tab switch page · w/s move · pgup/pgdn jump"
	return lipgloss.JoinVertical(lipgloss.Left, title, tabBar, body, help)
}

// renderBars draws the vendor distribution as horizontal bars, widest
// count first.
func (m Model) renderBars() string {
	if len(m.vendors) == 0 {
		return "Waiting for attributable devices..."
	}

	maxCount := m.vendors[0].Count
	for _, v := range m.vendors {
		if v.Count > maxCount {
			maxCount = v.Count
		}
	}

	var lines []string
	for i, v := range m.vendors {
		width := v.Count * barMaxWidth / maxCount
		if width < 1 {
			width = 1
		}
		bar := strings.Repeat("█", width)

		style := barStyle
		prefix := "  "
		if i == m.vendorCursor {
			style = selectedBarStyle
			prefix = "> "
		}

		name := v.Vendor
		if len(name) > vendorNameWidth {
			name = name[:vendorNameWidth-1] + "…"
		}
		lines = append(lines, fmt.Sprintf("%s%-*s %s %d",
			prefix, vendorNameWidth, name, style.Render(bar), v.Count))
	}
	return strings.Join(lines, "\n")
}
