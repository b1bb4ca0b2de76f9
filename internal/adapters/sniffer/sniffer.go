// Package sniffer owns the monitor-mode capture session: the pcap handle,
// the on-disk capture file, and the loop that feeds captured frames
// through the decoder into the device catalog.
package sniffer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/google/gopacket/pcapgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcalzada-xor/airscout/internal/telemetry"
)

const (
	snapLen = 65536

	// readTimeout bounds ReadPacketData so the loop can observe context
	// cancellation between frames.
	readTimeout = 500 * time.Millisecond
)

// Config holds the capture session settings.
type Config struct {
	Interface   string
	CapturePath string
	Debug       bool
}

// Sniffer captures raw frames from a monitor-mode interface, appends each
// one unmodified to a pcap file, and hands it to the frame handler.
//
// Error handling follows the session model: a capture read failure or a
// capture-file write failure is fatal and returned from Start; a frame
// that fails radiotap or 802.11 decoding is dropped and the loop
// continues.
type Sniffer struct {
	Config  Config
	Handler *Handler

	handle      *pcap.Handle
	captureFile *os.File
	writer      *pcapgo.Writer
}

// New creates a sniffer for the given interface.
func New(cfg Config, handler *Handler) *Sniffer {
	return &Sniffer{Config: cfg, Handler: handler}
}

// Start opens the interface in monitor mode and runs the capture loop
// until the context is cancelled or a fatal error occurs. It blocks.
func (s *Sniffer) Start(ctx context.Context) error {
	ctx, span := otel.Tracer("airscout/sniffer").Start(ctx, "capture.session")
	span.SetAttributes(attribute.String("net.interface", s.Config.Interface))
	defer span.End()

	if err := s.open(); err != nil {
		return err
	}

	slog.Info("Capture started",
		"interface", s.Config.Interface,
		"capture_file", s.Config.CapturePath)

	return s.loop(ctx)
}

// open activates the capture handle and the capture file.
func (s *Sniffer) open() error {
	inactive, err := pcap.NewInactiveHandle(s.Config.Interface)
	if err != nil {
		return fmt.Errorf("create capture handle for %s: %w", s.Config.Interface, err)
	}
	defer inactive.CleanUp()

	if err := inactive.SetSnapLen(snapLen); err != nil {
		return fmt.Errorf("set snap length: %w", err)
	}
	if err := inactive.SetPromisc(true); err != nil {
		return fmt.Errorf("set promiscuous mode: %w", err)
	}
	if err := inactive.SetRFMon(true); err != nil {
		return fmt.Errorf("set monitor mode on %s: %w", s.Config.Interface, err)
	}
	if err := inactive.SetTimeout(readTimeout); err != nil {
		return fmt.Errorf("set read timeout: %w", err)
	}

	handle, err := inactive.Activate()
	if err != nil {
		return fmt.Errorf("activate capture on %s: %w", s.Config.Interface, err)
	}

	// The decoder expects radiotap-framed 802.11; refuse anything else
	// rather than misparse ethernet captures.
	if handle.LinkType() != layers.LinkTypeIEEE80211Radio {
		handle.Close()
		return fmt.Errorf("interface %s yields link type %v, need %v (radiotap)",
			s.Config.Interface, handle.LinkType(), layers.LinkTypeIEEE80211Radio)
	}
	s.handle = handle

	f, err := os.Create(s.Config.CapturePath)
	if err != nil {
		s.handle.Close()
		return fmt.Errorf("create capture file %s: %w", s.Config.CapturePath, err)
	}
	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(snapLen, layers.LinkTypeIEEE80211Radio); err != nil {
		f.Close()
		s.handle.Close()
		return fmt.Errorf("write capture file header: %w", err)
	}
	s.captureFile = f
	s.writer = w

	return nil
}

func (s *Sniffer) loop(ctx context.Context) error {
	iface := s.Config.Interface

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		data, ci, err := s.handle.ReadPacketData()
		if err == pcap.NextErrorTimeoutExpired {
			continue
		}
		if err != nil {
			return fmt.Errorf("capture read on %s: %w", iface, err)
		}

		telemetry.FramesCaptured.WithLabelValues(iface).Inc()

		// Persist before decode: the capture file is the ground truth of
		// the session and must contain every frame, decodable or not.
		if err := s.writer.WritePacket(ci, data); err != nil {
			return fmt.Errorf("capture file write: %w", err)
		}
		telemetry.CaptureBytesWritten.WithLabelValues(iface).Add(float64(len(data)))

		s.Handler.HandleRaw(ctx, data)
	}
}

// Close releases the capture handle and the capture file.
func (s *Sniffer) Close() error {
	if s.handle != nil {
		s.handle.Close()
		s.handle = nil
	}
	if s.captureFile != nil {
		err := s.captureFile.Close()
		s.captureFile = nil
		return err
	}
	return nil
}
