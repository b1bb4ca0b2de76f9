package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lcalzada-xor/airscout/internal/adapters/reporting"
)

// printSummary dumps the catalog to stdout after the UI has released
// the terminal, so the session's findings survive the alternate screen.
func (app *Application) printSummary() {
	devices := app.Catalog.Devices()

	fmt.Printf("Found %d device(s) on %s:\n", len(devices), app.Config.Interface)
	for _, d := range devices {
		flags := make([]string, 0, 1)
		if d.Transmitted {
			flags = append(flags, "sent")
		}
		flagStr := ""
		if len(flags) > 0 {
			flagStr = " [" + strings.Join(flags, ",") + "]"
		}
		fmt.Printf("  %s  %-24s ssid=%s frames=%d%s\n",
			strings.ToUpper(d.Addr.String()), d.VendorName(), d.SSID(), d.Frames, flagStr)
	}

	vendors := app.Catalog.VendorDistribution()
	if len(vendors) == 0 {
		return
	}
	fmt.Println("Manufacturers:")
	for _, v := range vendors {
		fmt.Printf("  %-24s %d\n", v.Vendor, v.Count)
	}
}

// writeReport renders the PDF survey report to the configured path.
func (app *Application) writeReport() error {
	survey := &reporting.Survey{
		SessionID:   app.sessionID,
		Interface:   app.Config.Interface,
		StartedAt:   app.startedAt,
		GeneratedAt: time.Now(),
		Devices:     app.Catalog.Devices(),
		Vendors:     app.Catalog.VendorDistribution(),
	}

	data, err := reporting.NewPDFExporter().ExportSurvey(survey)
	if err != nil {
		return err
	}
	return os.WriteFile(app.Config.ReportPath, data, 0o644)
}
