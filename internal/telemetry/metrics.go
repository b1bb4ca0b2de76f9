package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FramesCaptured counts raw frames delivered by the capture handle.
	FramesCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airscout",
			Name:      "frames_captured_total",
			Help:      "Total number of raw frames captured",
		},
		[]string{"interface"},
	)

	// FramesDecoded counts decode outcomes, labeled by result:
	// "beacon", "ack", "unhandled", "truncated", "malformed_element",
	// "bad_radiotap".
	FramesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airscout",
			Name:      "frames_decoded_total",
			Help:      "Total number of frames by decode result",
		},
		[]string{"interface", "result"},
	)

	// DevicesDiscovered counts new catalog records.
	DevicesDiscovered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "airscout",
			Name:      "devices_discovered_total",
			Help:      "Total number of distinct devices added to the catalog",
		},
	)

	// CaptureBytesWritten counts bytes appended to the capture file.
	CaptureBytesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airscout",
			Name:      "capture_bytes_written_total",
			Help:      "Total number of raw frame bytes written to the capture file",
		},
		[]string{"interface"},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// It is idempotent and safe to call multiple times.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(FramesCaptured)
		prometheus.DefaultRegisterer.Register(FramesDecoded)
		prometheus.DefaultRegisterer.Register(DevicesDiscovered)
		prometheus.DefaultRegisterer.Register(CaptureBytesWritten)
	})
}
