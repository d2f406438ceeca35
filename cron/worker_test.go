package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"rotacare/models"
	"rotacare/services/tasks"

	"github.com/hibiken/asynq"
)

type sweepRepo struct {
	booking *models.Booking
	updates map[string]string
}

func (r *sweepRepo) Create(ctx context.Context, b *models.Booking) error { return nil }
func (r *sweepRepo) Update(ctx context.Context, b *models.Booking) error { return nil }
func (r *sweepRepo) Delete(ctx context.Context, id string) error         { return nil }

func (r *sweepRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if r.booking != nil && r.booking.ID == id {
		b := *r.booking
		return &b, nil
	}
	return nil, fmt.Errorf("booking %s not found", id)
}

func (r *sweepRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.updates[id] = status
	return nil
}

func (r *sweepRepo) ListForCarerInWindow(ctx context.Context, carerID string, dayStart, dayEnd time.Time, excludeIDs []string, includeCancelled bool) ([]models.Booking, error) {
	return nil, nil
}

func (r *sweepRepo) ListSiblings(ctx context.Context, clientID string, start, end time.Time, serviceID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *sweepRepo) ListInRange(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (r *sweepRepo) CarerHoursInRange(ctx context.Context, from, to time.Time) ([]models.CarerHours, error) {
	return nil, nil
}

func sweepTask(t *testing.T, bookingID string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(models.SweepPayload{BookingID: bookingID})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(tasks.TypeBookingSweep, b)
}

func pastBooking(status string) *models.Booking {
	end := time.Now().UTC().Add(-time.Hour)
	return &models.Booking{
		ID: "b1", CarerID: "c1", ClientID: "cl1",
		Date:  end.Format("2006-01-02"),
		Start: end.Add(-time.Hour), End: end, Status: status,
	}
}

func TestSweepMarksMissed(t *testing.T) {
	for _, status := range []string{models.StatusAssigned, models.StatusLate} {
		repo := &sweepRepo{booking: pastBooking(status), updates: map[string]string{}}
		if err := handleSweepTask(repo)(context.Background(), sweepTask(t, "b1")); err != nil {
			t.Fatal(err)
		}
		if repo.updates["b1"] != models.StatusMissed {
			t.Errorf("status %s: swept to %q, want missed", status, repo.updates["b1"])
		}
	}
}

func TestSweepMarksDone(t *testing.T) {
	repo := &sweepRepo{booking: pastBooking(models.StatusInProgress), updates: map[string]string{}}
	if err := handleSweepTask(repo)(context.Background(), sweepTask(t, "b1")); err != nil {
		t.Fatal(err)
	}
	if repo.updates["b1"] != models.StatusDone {
		t.Errorf("swept to %q, want done", repo.updates["b1"])
	}
}

func TestSweepLeavesTerminalStatuses(t *testing.T) {
	for _, status := range []string{models.StatusDone, models.StatusCancelled, models.StatusMissed} {
		repo := &sweepRepo{booking: pastBooking(status), updates: map[string]string{}}
		if err := handleSweepTask(repo)(context.Background(), sweepTask(t, "b1")); err != nil {
			t.Fatal(err)
		}
		if len(repo.updates) != 0 {
			t.Errorf("status %s must not be swept, got %v", status, repo.updates)
		}
	}
}

func TestSweepSkipsFutureBooking(t *testing.T) {
	b := pastBooking(models.StatusAssigned)
	b.End = time.Now().UTC().Add(time.Hour)
	repo := &sweepRepo{booking: b, updates: map[string]string{}}
	if err := handleSweepTask(repo)(context.Background(), sweepTask(t, "b1")); err != nil {
		t.Fatal(err)
	}
	if len(repo.updates) != 0 {
		t.Errorf("future booking must not be swept, got %v", repo.updates)
	}
}

func TestSweepMissingBookingIsDropped(t *testing.T) {
	repo := &sweepRepo{updates: map[string]string{}}
	if err := handleSweepTask(repo)(context.Background(), sweepTask(t, "gone")); err != nil {
		t.Errorf("missing booking must not retry the task: %v", err)
	}
}

func TestReminderReassignedBookingIsDropped(t *testing.T) {
	repo := &sweepRepo{booking: pastBooking(models.StatusAssigned), updates: map[string]string{}}
	payload, err := json.Marshal(models.ReminderPayload{BookingID: "b1", CarerID: "someone-else"})
	if err != nil {
		t.Fatal(err)
	}
	task := asynq.NewTask(tasks.TypeBookingReminder, payload)
	if err := handleReminderTask(repo)(context.Background(), task); err != nil {
		t.Errorf("reassigned booking must be dropped silently: %v", err)
	}
}
