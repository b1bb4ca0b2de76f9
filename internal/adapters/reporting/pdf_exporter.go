// Package reporting renders end-of-session survey reports.
package reporting

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

// Survey is the material of a session report: the catalog contents at
// the moment the session ended.
type Survey struct {
	SessionID   string
	Interface   string
	StartedAt   time.Time
	GeneratedAt time.Time
	Devices     []domain.Device
	Vendors     []domain.VendorCount
}

// PDFExporter exports survey reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSurvey generates a PDF from a session survey
func (e *PDFExporter) ExportSurvey(survey *Survey) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, survey)
	e.addOverview(pdf, survey)
	e.addVendorDistribution(pdf, survey)
	e.addDeviceTable(pdf, survey)
	e.addFooter(pdf, survey)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report header
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, survey *Survey) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "Wireless Survey Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Interface: %s", survey.Interface), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Session: %s to %s",
		survey.StartedAt.Format("2006-01-02 15:04:05"),
		survey.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")

	pdf.Ln(8)
}

// addOverview adds the device population counters
func (e *PDFExporter) addOverview(pdf *gofpdf.Fpdf, survey *Survey) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Session Overview", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	var transmitting, attributed, named int
	for _, d := range survey.Devices {
		if d.Transmitted {
			transmitting++
		}
		if d.Vendor != nil {
			attributed++
		}
		if d.LastSSID != nil && *d.LastSSID != "" {
			named++
		}
	}

	stats := []struct {
		label string
		value int
	}{
		{"Devices Observed", len(survey.Devices)},
		{"Seen Transmitting", transmitting},
		{"Vendor Attributed", attributed},
		{"Named Networks", named},
	}

	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(0, 102, 204)
		pdf.CellFormat(colWidth-50, 7, fmt.Sprintf("%d", stat.value), "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}

	pdf.Ln(10)
}

// addVendorDistribution adds the manufacturer ranking table
func (e *PDFExporter) addVendorDistribution(pdf *gofpdf.Fpdf, survey *Survey) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Manufacturer Distribution", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(survey.Vendors) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No devices could be attributed to a manufacturer", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(15, 8, "Rank", "1", 0, "C", true, 0, "")
	pdf.CellFormat(115, 8, "Manufacturer", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Devices", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for i, v := range survey.Vendors {
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(115, 7, v.Vendor, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", v.Count), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
}

// addDeviceTable adds the per-device detail rows
func (e *PDFExporter) addDeviceTable(pdf *gofpdf.Fpdf, survey *Survey) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Observed Devices", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(40, 8, "Address", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, "Vendor", "1", 0, "L", true, 0, "")
	pdf.CellFormat(15, 8, "Sent", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 8, "SSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(15, 8, "Frames", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, d := range survey.Devices {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}

		sent := ""
		if d.Transmitted {
			sent = "yes"
		}

		vendor := d.VendorName()
		if len(vendor) > 28 {
			vendor = vendor[:25] + "..."
		}
		ssid := d.SSID()
		if len(ssid) > 28 {
			ssid = ssid[:25] + "..."
		}

		pdf.CellFormat(40, 7, strings.ToUpper(d.Addr.String()), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, vendor, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 7, sent, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, ssid, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", d.Frames), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
}

// addFooter adds the report footer
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, survey *Survey) {
	pdf.SetY(-20)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	id := survey.SessionID
	if len(id) > 8 {
		id = id[:8]
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	footerText := fmt.Sprintf("Generated by airscout | Session ID: %s", id)
	pdf.CellFormat(0, 5, footerText, "", 1, "C", false, 0, "")
}
