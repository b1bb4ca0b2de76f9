// Package app wires the survey session together: vendor resolution,
// the device catalog, the capture loop, and the terminal UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/gopacket/pcap"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/airscout/internal/adapters/fingerprint"
	"github.com/lcalzada-xor/airscout/internal/adapters/sniffer"
	"github.com/lcalzada-xor/airscout/internal/config"
	"github.com/lcalzada-xor/airscout/internal/core/ports"
	"github.com/lcalzada-xor/airscout/internal/core/services/catalog"
	"github.com/lcalzada-xor/airscout/internal/telemetry"
	"github.com/lcalzada-xor/airscout/internal/ui"
)

// ouiCacheSize bounds the OUI database's in-memory lookup cache.
const ouiCacheSize = 1024

// Application holds the core components of the session.
// It acts as the facade for the system, orchestrating services and
// infrastructure.
type Application struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	VendorRepo ports.VendorLookup
	Sniffer    *sniffer.Sniffer

	sessionID string
	startedAt time.Time

	metricsServer *http.Server
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config:    cfg,
		sessionID: uuid.NewString(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	if app.Config.Interface == "" {
		iface, err := defaultInterface()
		if err != nil {
			return err
		}
		app.Config.Interface = iface
		slog.Info("No interface given, using default", "interface", iface)
	}

	repo, err := app.buildVendorChain()
	if err != nil {
		return err
	}
	app.VendorRepo = repo

	app.Catalog = catalog.New(app.VendorRepo)

	handler := sniffer.NewHandler(app.Catalog, app.Config.Interface, app.Config.Debug)
	app.Sniffer = sniffer.New(sniffer.Config{
		Interface:   app.Config.Interface,
		CapturePath: app.Config.CapturePath,
		Debug:       app.Config.Debug,
	}, handler)

	return nil
}

// buildVendorChain assembles vendor resolution in precedence order:
// the SQLite OUI registry, then a manuf file, then the built-in table.
// Missing sources degrade the chain rather than fail startup.
func (app *Application) buildVendorChain() (ports.VendorLookup, error) {
	var repos []ports.VendorLookup

	if app.Config.OUIDBPath != "" {
		db, err := fingerprint.NewOUIDatabase(app.Config.OUIDBPath, ouiCacheSize, nil)
		if err != nil {
			slog.Warn("OUI registry unavailable, continuing without it",
				"path", app.Config.OUIDBPath, "error", err)
		} else {
			repos = append(repos, db)
		}
	}

	if app.Config.ManufPath != "" {
		manuf := fingerprint.NewManufRepository()
		if err := manuf.LoadFromFile(app.Config.ManufPath); err != nil {
			slog.Warn("Manuf file unavailable, continuing without it",
				"path", app.Config.ManufPath, "error", err)
		} else {
			slog.Info("Loaded manuf vendor file",
				"path", app.Config.ManufPath, "prefixes", manuf.Len())
			repos = append(repos, manuf)
		}
	}

	repos = append(repos, fingerprint.NewStaticVendorRepository(fingerprint.CommonOUIs))

	return fingerprint.NewCompositeVendorRepository(repos...), nil
}

// defaultInterface picks the first capturable device, mirroring what
// libpcap considers the default.
func defaultInterface() (string, error) {
	devs, err := pcap.FindAllDevs()
	if err != nil {
		return "", fmt.Errorf("list capture devices: %w", err)
	}
	for _, d := range devs {
		if d.Name != "" && d.Name != "any" && d.Name != "lo" {
			return d.Name, nil
		}
	}
	return "", fmt.Errorf("no capturable interface found; pass one with -i")
}

// Run starts the capture session and blocks in the terminal UI until
// the user quits or the capture fails.
func (app *Application) Run(ctx context.Context) error {
	app.startedAt = time.Now()
	slog.Info("Survey session starting",
		"session_id", app.sessionID,
		"interface", app.Config.Interface,
		"capture_file", app.Config.CapturePath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.startMetricsServer()

	prog := tea.NewProgram(
		ui.New(app.Catalog, app.Config.Interface, app.sessionID),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	go func() {
		if err := app.Sniffer.Start(ctx); err != nil {
			prog.Send(ui.FatalMsg{Err: err})
		}
	}()

	final, err := prog.Run()
	cancel()

	if closeErr := app.Sniffer.Close(); closeErr != nil {
		slog.Warn("Closing capture", "error", closeErr)
	}
	app.stopMetricsServer()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		return m.Err()
	}

	return app.finishSession()
}

// finishSession emits the end-of-session outputs: the stdout summary
// and, when configured, the PDF report.
func (app *Application) finishSession() error {
	app.printSummary()

	if app.Config.ReportPath != "" {
		if err := app.writeReport(); err != nil {
			return fmt.Errorf("write session report: %w", err)
		}
		slog.Info("Session report written", "path", app.Config.ReportPath)
	}
	return nil
}

// Close releases the application's long-lived resources.
func (app *Application) Close() error {
	return app.VendorRepo.Close()
}

func (app *Application) startMetricsServer() {
	if app.Config.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	app.metricsServer = &http.Server{
		Addr:    app.Config.MetricsAddr,
		Handler: otelhttp.NewHandler(mux, "metrics"),
	}

	go func() {
		slog.Info("Metrics endpoint listening", "addr", app.Config.MetricsAddr)
		if err := app.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

func (app *Application) stopMetricsServer() {
	if app.metricsServer == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := app.metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Metrics server shutdown", "error", err)
	}
}
