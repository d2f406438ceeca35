package report

import (
	"context"
	"fmt"
	"io"

	bookingRepo "rotacare/database/repository/booking"
	carerRepo "rotacare/database/repository/carer"
	clientRepo "rotacare/database/repository/client"
	"rotacare/models"
	"rotacare/utils"
)

// ReportService produces rota exports and staffing summaries.
type ReportService interface {
	DailyRotaCSV(ctx context.Context, date string, w io.Writer) error
	DailyRotaPDF(ctx context.Context, date string, w io.Writer) error
	CarerHours(ctx context.Context, fromDate, toDate string) ([]models.CarerHours, error)
}

// DefaultReportService implements ReportService.
type DefaultReportService struct {
	Bookings bookingRepo.BookingRepository
	Carers   carerRepo.CarerRepository
	Clients  clientRepo.ClientRepository
}

// rotaRow is one rendered line of a daily rota export.
type rotaRow struct {
	CarerName  string
	ClientName string
	Start      string
	End        string
	Status     string
	Notes      string
}

// dayRows loads one day's bookings and resolves display names.
func (svc *DefaultReportService) dayRows(ctx context.Context, date string) ([]rotaRow, error) {
	dayStart, dayEnd, err := utils.DayWindow(date)
	if err != nil {
		return nil, err
	}
	bookings, err := svc.Bookings.ListInRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	carerNames, clientNames := svc.nameMaps(ctx, bookings)
	rows := make([]rotaRow, 0, len(bookings))
	for _, b := range bookings {
		carerName := carerNames[b.CarerID]
		if b.CarerID == "" {
			carerName = "(unassigned)"
		}
		rows = append(rows, rotaRow{
			CarerName:  carerName,
			ClientName: clientNames[b.ClientID],
			Start:      utils.FormatTimeOfDay(b.Start),
			End:        utils.FormatTimeOfDay(b.End),
			Status:     b.Status,
			Notes:      b.Notes,
		})
	}
	return rows, nil
}

func (svc *DefaultReportService) nameMaps(ctx context.Context, bookings []models.Booking) (map[string]string, map[string]string) {
	carerIDs := map[string]bool{}
	clientIDs := map[string]bool{}
	for _, b := range bookings {
		if b.CarerID != "" {
			carerIDs[b.CarerID] = true
		}
		clientIDs[b.ClientID] = true
	}

	carerNames := map[string]string{}
	if len(carerIDs) > 0 {
		ids := make([]string, 0, len(carerIDs))
		for id := range carerIDs {
			ids = append(ids, id)
		}
		if carers, err := svc.Carers.GetByIDs(ctx, ids); err == nil {
			for _, c := range carers {
				carerNames[c.ID] = c.Name
			}
		}
	}
	clientNames := map[string]string{}
	if len(clientIDs) > 0 {
		ids := make([]string, 0, len(clientIDs))
		for id := range clientIDs {
			ids = append(ids, id)
		}
		if clients, err := svc.Clients.GetByIDs(ctx, ids); err == nil {
			for _, c := range clients {
				clientNames[c.ID] = c.Name
			}
		}
	}
	return carerNames, clientNames
}

// CarerHours aggregates booked time per carer over [fromDate, toDate].
func (svc *DefaultReportService) CarerHours(ctx context.Context, fromDate, toDate string) ([]models.CarerHours, error) {
	from, _, err := utils.DayWindow(fromDate)
	if err != nil {
		return nil, err
	}
	toNext, err := utils.AddDays(toDate, 1)
	if err != nil {
		return nil, err
	}
	to, _, err := utils.DayWindow(toNext)
	if err != nil {
		return nil, err
	}
	if !to.After(from) {
		return nil, fmt.Errorf("date range is empty")
	}

	rows, err := svc.Bookings.CarerHoursInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CarerID)
	}
	names := map[string]string{}
	if len(ids) > 0 {
		if carers, err := svc.Carers.GetByIDs(ctx, ids); err == nil {
			for _, c := range carers {
				names[c.ID] = c.Name
			}
		}
	}
	for i := range rows {
		rows[i].CarerName = names[rows[i].CarerID]
		rows[i].TotalHours = float64(rows[i].TotalMinutes) / 60.0
	}
	return rows, nil
}
