package infra

// pdf.go renders the low-stock report with go-pdf/fpdf: an A4 table of every
// part at or below its minimum, sorted as the caller passes them, with the
// generation timestamp in the header and a total shortfall line at the end.

import (
	"fmt"
	"io"
	"time"

	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/go-pdf/fpdf"
)

// RenderStockAlertReport writes the low-stock report PDF to w.
func RenderStockAlertReport(w io.Writer, alerts []dto.StockAlertResponse, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetTitle("Low stock report", true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, "Low stock report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(alerts) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(contentW, 6, "All parts are above their minimum stock.", "", 1, "L", false, 0, "")
		return output(pdf, w)
	}

	// ── Table ────────────────────────────────────────────────────────────────
	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Part number", 0.20, "L"},
		{"Part name", 0.38, "L"},
		{"Supplier", 0.10, "C"},
		{"Stock", 0.10, "R"},
		{"Min", 0.10, "R"},
		{"Short", 0.12, "R"},
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(contentW*col.width, 6, col.title, "1", ln, col.align, true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	totalShort := 0
	for _, a := range alerts {
		values := []string{
			a.PartNumber,
			truncate(pdf, a.PartName, contentW*cols[1].width-2),
			fmt.Sprintf("%d", a.SupplierID),
			fmt.Sprintf("%d", a.Stock),
			fmt.Sprintf("%d", a.StockMin),
			fmt.Sprintf("%d", a.Shortfall),
		}
		for i, v := range values {
			ln := 0
			if i == len(values)-1 {
				ln = 1
			}
			pdf.CellFormat(contentW*cols[i].width, 6, v, "1", ln, cols[i].align, false, 0, "")
		}
		totalShort += a.Shortfall
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%d parts, total shortfall %d", len(alerts), totalShort), "", 1, "R", false, 0, "")

	return output(pdf, w)
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render report: %w", err)
	}
	return nil
}

// truncate shortens s with an ellipsis until it fits width at the current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
