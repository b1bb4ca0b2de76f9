package sniffer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/lcalzada-xor/airscout/internal/core/services/catalog"
	"github.com/lcalzada-xor/airscout/internal/dot11"
	"github.com/lcalzada-xor/airscout/internal/telemetry"
)

// Handler folds captured frames into the device catalog.
type Handler struct {
	Catalog   *catalog.Catalog
	Interface string
	Debug     bool
}

// NewHandler creates a handler writing into the given catalog.
func NewHandler(cat *catalog.Catalog, iface string, debug bool) *Handler {
	return &Handler{Catalog: cat, Interface: iface, Debug: debug}
}

// HandleRaw strips the radiotap header from a raw captured frame and
// applies the remainder. A malformed radiotap header skips this one
// frame only.
func (h *Handler) HandleRaw(ctx context.Context, data []byte) {
	var rt layers.RadioTap
	if err := rt.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		telemetry.FramesDecoded.WithLabelValues(h.Interface, "bad_radiotap").Inc()
		if h.Debug {
			slog.Debug("Skipping frame with malformed radiotap header", "error", err)
		}
		return
	}
	h.HandleFrame(ctx, rt.Payload)
}

// HandleFrame decodes the MAC-frame bytes and applies the result to the
// catalog. Decode failures are local to the frame: catalog state and
// subsequent frames are unaffected.
func (h *Handler) HandleFrame(ctx context.Context, b []byte) {
	before := h.Catalog.Len()

	frame, err := dot11.Decode(b)
	if err != nil {
		result := "truncated"
		if errors.Is(err, dot11.ErrMalformedElement) {
			result = "malformed_element"
		}
		telemetry.FramesDecoded.WithLabelValues(h.Interface, result).Inc()
		if h.Debug {
			slog.Debug("Dropping undecodable frame", "error", err, "len", len(b))
		}
		return
	}

	switch f := frame.(type) {
	case dot11.Beacon:
		h.Catalog.MarkTransmitted(ctx, f.Source)
		if f.SSID != nil {
			h.Catalog.RecordSSID(ctx, f.Source, *f.SSID)
		}
		h.Catalog.GetOrCreate(ctx, f.Destination)
		telemetry.FramesDecoded.WithLabelValues(h.Interface, "beacon").Inc()

	case dot11.Ack:
		h.Catalog.GetOrCreate(ctx, f.Receiver)
		telemetry.FramesDecoded.WithLabelValues(h.Interface, "ack").Inc()

	case dot11.Unhandled:
		telemetry.FramesDecoded.WithLabelValues(h.Interface, "unhandled").Inc()
	}

	if created := h.Catalog.Len() - before; created > 0 {
		telemetry.DevicesDiscovered.Add(float64(created))
	}
}
