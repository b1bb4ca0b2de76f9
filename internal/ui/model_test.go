package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

type fakeCatalog struct {
	devices []domain.Device
	vendors []domain.VendorCount
}

func (f *fakeCatalog) Devices() []domain.Device                 { return f.devices }
func (f *fakeCatalog) VendorDistribution() []domain.VendorCount { return f.vendors }
func (f *fakeCatalog) Len() int                                 { return len(f.devices) }

func testModel() (Model, *fakeCatalog) {
	cat := &fakeCatalog{
		devices: []domain.Device{
			{
				Addr:        domain.HardwareAddr{0x00, 0x1b, 0xc5, 0x01, 0x02, 0x03},
				Vendor:      &domain.Vendor{Name: "Acme"},
				Transmitted: true,
				LastSeen:    time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
				Frames:      4,
			},
		},
		vendors: []domain.VendorCount{
			{Vendor: "Acme", Count: 3},
			{Vendor: "Zeta", Count: 1},
		},
	}
	return New(cat, "wlan0", "session-1"), cat
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func key(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func TestTickRefreshesFromCatalog(t *testing.T) {
	m, _ := testModel()
	m = tick(t, m)

	assert.Len(t, m.devices, 1)
	assert.Equal(t, []domain.VendorCount{{Vendor: "Acme", Count: 3}, {Vendor: "Zeta", Count: 1}}, m.vendors)

	rows := m.table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "00:1B:C5:01:02:03", rows[0][0])
	assert.Equal(t, "Acme", rows[0][1])
	assert.Equal(t, "yes", rows[0][2])
}

func TestTabCyclesPages(t *testing.T) {
	m, _ := testModel()
	assert.Equal(t, DevicesPage, m.page)

	m = key(t, m, "tab")
	assert.Equal(t, ManufacturersPage, m.page)

	m = key(t, m, "tab")
	assert.Equal(t, DevicesPage, m.page)
}

func TestVendorCursorWraps(t *testing.T) {
	m, _ := testModel()
	m = tick(t, m)
	m = key(t, m, "tab") // manufacturers page

	m = key(t, m, "s")
	assert.Equal(t, 1, m.vendorCursor)
	m = key(t, m, "s")
	assert.Equal(t, 0, m.vendorCursor, "down past the end wraps to the top")
	m = key(t, m, "w")
	assert.Equal(t, 1, m.vendorCursor, "up past the top wraps to the bottom")
}

func TestVendorCursorClampedOnShrink(t *testing.T) {
	m, cat := testModel()
	m = tick(t, m)
	m = key(t, m, "tab")
	m = key(t, m, "pgdown")
	assert.Equal(t, 1, m.vendorCursor)

	cat.vendors = cat.vendors[:1]
	m = tick(t, m)
	assert.Equal(t, 0, m.vendorCursor)
}

func TestFatalMsgQuitsWithError(t *testing.T) {
	m, _ := testModel()
	boom := errors.New("capture read: device gone")

	next, cmd := m.Update(FatalMsg{Err: boom})
	model := next.(Model)

	assert.Equal(t, boom, model.Err())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestEscQuits(t *testing.T) {
	m, _ := testModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersBars(t *testing.T) {
	m, _ := testModel()
	m = tick(t, m)
	m = key(t, m, "tab")

	out := m.View()
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Zeta")
	assert.Contains(t, out, "Manufacturers")
}
