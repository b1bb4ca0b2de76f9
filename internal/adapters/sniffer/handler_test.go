package sniffer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/airscout/internal/adapters/fingerprint"
	"github.com/lcalzada-xor/airscout/internal/core/domain"
	"github.com/lcalzada-xor/airscout/internal/core/services/catalog"
)

var (
	apAddr  = []byte{0x00, 0x1b, 0xc5, 0x01, 0x02, 0x03}
	staAddr = []byte{0xaa, 0xbb, 0xcc, 0x01, 0x02, 0x03}
)

func newTestHandler() (*Handler, *catalog.Catalog) {
	cat := catalog.New(fingerprint.NewStaticVendorRepository(nil))
	return NewHandler(cat, "wlan0", false), cat
}

// beaconFrame builds a beacon from apAddr to the broadcast address,
// optionally carrying an SSID element.
func beaconFrame(ssid *string) []byte {
	b := []byte{0x80, 0x00, 0x00, 0x00}
	b = append(b, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff) // destination
	b = append(b, apAddr...)                          // source
	b = append(b, apAddr...)                          // bssid
	b = append(b, 0x00, 0x00)                         // sequence control
	b = append(b, make([]byte, 12)...)                // timestamp + interval + capability
	if ssid != nil {
		b = append(b, 0x00, byte(len(*ssid)))
		b = append(b, *ssid...)
	}
	return b
}

func ackFrame(receiver []byte) []byte {
	return append([]byte{0xd4, 0x00, 0x00, 0x00}, receiver...)
}

func strptr(s string) *string { return &s }

func TestHandleFrameBeacon(t *testing.T) {
	h, cat := newTestHandler()
	ctx := context.Background()

	h.HandleFrame(ctx, beaconFrame(strptr("HomeNet")))

	src, ok := cat.Get(domain.HardwareAddrFromBytes(apAddr))
	require.True(t, ok)
	assert.True(t, src.Transmitted)
	require.NotNil(t, src.LastSSID)
	assert.Equal(t, "HomeNet", *src.LastSSID)

	// The broadcast destination is referenced but has not transmitted.
	dst, ok := cat.Get(domain.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.True(t, ok)
	assert.False(t, dst.Transmitted)
	assert.Nil(t, dst.LastSSID)
}

func TestHandleFrameBeaconWithoutSSIDKeepsLast(t *testing.T) {
	h, cat := newTestHandler()
	ctx := context.Background()

	h.HandleFrame(ctx, beaconFrame(strptr("HomeNet")))
	h.HandleFrame(ctx, beaconFrame(nil))

	src, _ := cat.Get(domain.HardwareAddrFromBytes(apAddr))
	require.NotNil(t, src.LastSSID)
	assert.Equal(t, "HomeNet", *src.LastSSID, "absent SSID element must not clear the last one")
}

func TestHandleFrameAck(t *testing.T) {
	h, cat := newTestHandler()

	h.HandleFrame(context.Background(), ackFrame(staAddr))

	d, ok := cat.Get(domain.HardwareAddrFromBytes(staAddr))
	require.True(t, ok)
	assert.False(t, d.Transmitted, "an ack receiver has not been seen transmitting")
}

func TestHandleFrameDecodeFailureLeavesCatalogUntouched(t *testing.T) {
	h, cat := newTestHandler()

	h.HandleFrame(context.Background(), beaconFrame(strptr("HomeNet"))[:20])
	assert.Equal(t, 0, cat.Len())
}

func TestHandleFrameUnhandledCreatesNothing(t *testing.T) {
	h, cat := newTestHandler()

	// QoS data frame: recognized, deliberately not interpreted.
	h.HandleFrame(context.Background(), []byte{0x88, 0x00, 0x00, 0x00})
	assert.Equal(t, 0, cat.Len())
}

func TestHandleRawStripsRadiotap(t *testing.T) {
	h, cat := newTestHandler()

	// Minimal 8-byte radiotap header: version 0, length 8, no fields.
	raw := []byte{0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00}
	raw = append(raw, beaconFrame(strptr("OverTheAir"))...)

	h.HandleRaw(context.Background(), raw)

	src, ok := cat.Get(domain.HardwareAddrFromBytes(apAddr))
	require.True(t, ok)
	assert.Equal(t, "OverTheAir", *src.LastSSID)
}

func TestHandleRawMalformedRadiotapSkips(t *testing.T) {
	h, cat := newTestHandler()

	// Header length claims 0xFFFF, far past the buffer.
	raw := []byte{0x00, 0x00, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}
	h.HandleRaw(context.Background(), raw)

	assert.Equal(t, 0, cat.Len())
}
