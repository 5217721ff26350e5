package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"bilancio/internal/services"
)

// Format names one of the supported report file formats.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Exporter writes period reports to files under one output directory.
type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes the report in the given format and returns the file path.
func (e *Exporter) Export(report services.Report, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return e.exportJSON(report)
	case FormatCSV:
		return e.exportCSV(report)
	case FormatPDF:
		return e.exportPDF(report)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

func (e *Exporter) exportJSON(report services.Report) (string, error) {
	path, err := e.generateFilename(report, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	return path, nil
}

func (e *Exporter) exportCSV(report services.Report) (string, error) {
	path, err := e.generateFilename(report, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	symbol := report.Period.Currency
	t := report.Totals
	rows := [][]string{
		{"Section", "Name", "Amount"},
		{"Summary", "Income", t.Income.Format(symbol)},
		{"Summary", "Expenses", t.Expenses.Format(symbol)},
		{"Summary", "Bills", t.Bills.Format(symbol)},
		{"Summary", "Debt payments", t.Debts.Format(symbol)},
		{"Summary", "Savings", t.Savings.Format(symbol)},
		{"Summary", "Investments", t.Investments.Format(symbol)},
		{"Summary", "Total out", t.TotalOut.Format(symbol)},
		{"Summary", "Left to spend", t.LeftToSpend.Format(symbol)},
	}
	for _, a := range report.Alerts {
		rows = append(rows, []string{"Alert", string(a.Category) + " / " + a.Severity.String(), a.Message})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write csv rows: %w", err)
	}

	return path, nil
}

func (e *Exporter) exportPDF(report services.Report) (string, error) {
	path, err := e.generateFilename(report, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Budget report "+report.Period.Label()), "", 1, "L", true, 0, "")
	pdf.Ln(8)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, title)
		pdf.Ln(7)
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}
	row := func(label, value string) {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(50, 50, 50)
		pdf.CellFormat(95, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, tr(value), "", 1, "R", false, 0, "")
	}

	symbol := report.Period.Currency
	t := report.Totals
	section("Totals")
	row("Income", t.Income.Format(symbol))
	row("Expenses", t.Expenses.Format(symbol))
	row("Bills", t.Bills.Format(symbol))
	row("Debt payments", t.Debts.Format(symbol))
	row("Savings", t.Savings.Format(symbol))
	row("Investments", t.Investments.Format(symbol))
	row("Total out", t.TotalOut.Format(symbol))
	row("Left to spend", t.LeftToSpend.Format(symbol))
	pdf.Ln(6)

	if len(report.Alerts) > 0 {
		section("Alerts")
		for _, a := range report.Alerts {
			pdf.SetFont("Arial", "", 10)
			pdf.SetTextColor(50, 50, 50)
			pdf.MultiCell(190, 5, tr(fmt.Sprintf("[%s/%s] %s", a.Category, a.Severity, a.Message)), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	return path, nil
}

// generateFilename builds a timestamped file name and ensures the output
// directory exists.
func (e *Exporter) generateFilename(report services.Report, ext string) (string, error) {
	dir := e.dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	base := fmt.Sprintf("report_%04d_%02d", report.Period.Year, report.Period.Month)
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, timestamp, ext)), nil
}
