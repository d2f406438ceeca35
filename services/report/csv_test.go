package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"rotacare/models"
)

type stubBookingRepo struct {
	bookings []models.Booking
	hours    []models.CarerHours
}

func (r *stubBookingRepo) Create(ctx context.Context, b *models.Booking) error  { return nil }
func (r *stubBookingRepo) Update(ctx context.Context, b *models.Booking) error  { return nil }
func (r *stubBookingRepo) UpdateStatus(ctx context.Context, id, s string) error { return nil }
func (r *stubBookingRepo) Delete(ctx context.Context, id string) error          { return nil }

func (r *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, fmt.Errorf("not found")
}

func (r *stubBookingRepo) ListForCarerInWindow(ctx context.Context, carerID string, dayStart, dayEnd time.Time, excludeIDs []string, includeCancelled bool) ([]models.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) ListSiblings(ctx context.Context, clientID string, start, end time.Time, serviceID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) ListInRange(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	return r.bookings, nil
}

func (r *stubBookingRepo) CarerHoursInRange(ctx context.Context, from, to time.Time) ([]models.CarerHours, error) {
	return r.hours, nil
}

type stubCarerRepo struct {
	carers map[string]models.Carer
}

func (r *stubCarerRepo) Create(ctx context.Context, c *models.Carer) error { return nil }
func (r *stubCarerRepo) Update(ctx context.Context, c *models.Carer) error { return nil }
func (r *stubCarerRepo) Delete(ctx context.Context, id string) error       { return nil }

func (r *stubCarerRepo) GetByID(ctx context.Context, id string) (*models.Carer, error) {
	if c, ok := r.carers[id]; ok {
		return &c, nil
	}
	return nil, fmt.Errorf("not found")
}

func (r *stubCarerRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Carer, error) {
	var out []models.Carer
	for _, id := range ids {
		if c, ok := r.carers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCarerRepo) List(ctx context.Context, status string) ([]models.Carer, error) {
	return nil, nil
}

type stubClientRepo struct {
	clients map[string]models.Client
}

func (r *stubClientRepo) Create(ctx context.Context, c *models.Client) error { return nil }
func (r *stubClientRepo) Update(ctx context.Context, c *models.Client) error { return nil }
func (r *stubClientRepo) Delete(ctx context.Context, id string) error        { return nil }
func (r *stubClientRepo) List(ctx context.Context) ([]models.Client, error)  { return nil, nil }

func (r *stubClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		return &c, nil
	}
	return nil, fmt.Errorf("not found")
}

func (r *stubClientRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Client, error) {
	var out []models.Client
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func visit(id, carerID, clientID string, h int, status string) models.Booking {
	start := time.Date(2030, 1, 10, h, 0, 0, 0, time.UTC)
	return models.Booking{
		ID: id, CarerID: carerID, ClientID: clientID,
		Date: "2030-01-10", Start: start, End: start.Add(time.Hour), Status: status,
	}
}

func newReportService(bookings []models.Booking) *DefaultReportService {
	return &DefaultReportService{
		Bookings: &stubBookingRepo{bookings: bookings},
		Carers: &stubCarerRepo{carers: map[string]models.Carer{
			"c1": {ID: "c1", Name: "Alice"},
		}},
		Clients: &stubClientRepo{clients: map[string]models.Client{
			"cl1": {ID: "cl1", Name: "Mrs Hughes"},
		}},
	}
}

func TestDailyRotaCSV(t *testing.T) {
	svc := newReportService([]models.Booking{
		visit("b1", "c1", "cl1", 9, models.StatusAssigned),
		visit("b2", "", "cl1", 13, models.StatusUnassigned),
	})

	var buf bytes.Buffer
	if err := svc.DailyRotaCSV(context.Background(), "2030-01-10", &buf); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(records))
	}
	if records[0][0] != "carer" || records[0][5] != "notes" {
		t.Errorf("header wrong: %v", records[0])
	}
	if records[1][0] != "Alice" || records[1][1] != "Mrs Hughes" {
		t.Errorf("names not resolved: %v", records[1])
	}
	if records[2][0] != "(unassigned)" {
		t.Errorf("placeholder row should read (unassigned), got %q", records[2][0])
	}
	if records[1][2] != "09:00" || records[1][3] != "10:00" {
		t.Errorf("times wrong: %v", records[1])
	}
}

func TestDailyRotaCSVBadDate(t *testing.T) {
	svc := newReportService(nil)
	var buf bytes.Buffer
	if err := svc.DailyRotaCSV(context.Background(), "10/01/2030", &buf); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestDailyRotaPDFProducesDocument(t *testing.T) {
	svc := newReportService([]models.Booking{
		visit("b1", "c1", "cl1", 9, models.StatusAssigned),
	})
	var buf bytes.Buffer
	if err := svc.DailyRotaPDF(context.Background(), "2030-01-10", &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestCarerHours(t *testing.T) {
	svc := newReportService(nil)
	svc.Bookings = &stubBookingRepo{hours: []models.CarerHours{
		{CarerID: "c1", TotalMinutes: 90, Bookings: 2},
	}}

	rows, err := svc.CarerHours(context.Background(), "2030-01-05", "2030-01-11")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].CarerName != "Alice" {
		t.Errorf("name not resolved: %+v", rows[0])
	}
	if rows[0].TotalHours != 1.5 {
		t.Errorf("hours = %v, want 1.5", rows[0].TotalHours)
	}
}

func TestCarerHoursEmptyRange(t *testing.T) {
	svc := newReportService(nil)
	if _, err := svc.CarerHours(context.Background(), "2030-01-11", "2030-01-05"); err == nil {
		t.Fatal("expected error for inverted range")
	}
}
