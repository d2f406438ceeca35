package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// DailyRotaCSV streams one day's rota as CSV.
func (svc *DefaultReportService) DailyRotaCSV(ctx context.Context, date string, w io.Writer) error {
	rows, err := svc.dayRows(ctx, date)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"carer", "client", "start", "end", "status", "notes"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.CarerName, r.ClientName, r.Start, r.End, r.Status, r.Notes}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
