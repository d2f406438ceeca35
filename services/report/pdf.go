package report

import (
	"context"
	"io"

	"github.com/go-pdf/fpdf"
)

// DailyRotaPDF renders one day's rota as a simple tabular PDF.
func (svc *DefaultReportService) DailyRotaPDF(ctx context.Context, date string, w io.Writer) error {
	rows, err := svc.dayRows(ctx, date)
	if err != nil {
		return err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Daily rota "+date, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{"Carer", "Client", "Start", "End", "Status", "Notes"}
	widths := []float64{55, 55, 22, 22, 30, 85}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		cells := []string{r.CarerName, r.ClientName, r.Start, r.End, r.Status, r.Notes}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
