package booking

import (
	"context"
	"time"

	"rotacare/config"
	"rotacare/models"
	"rotacare/services/tasks"
	"rotacare/utils"

	"go.uber.org/zap"
)

// Get returns a single booking row.
func (svc *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	return svc.Repo.GetByID(ctx, bookingID)
}

// ListDay returns every booking intersecting the given agency-local day.
func (svc *DefaultBookingService) ListDay(ctx context.Context, date string) ([]models.Booking, error) {
	dayStart, dayEnd, err := utils.DayWindow(date)
	if err != nil {
		return nil, err
	}
	return svc.Repo.ListInRange(ctx, dayStart, dayEnd)
}

// announce publishes the change and schedules the booking's background
// tasks. It never fails the write it follows.
func (svc *DefaultBookingService) announce(ctx context.Context, action string, booking *models.Booking) {
	if svc.Notifier != nil {
		svc.Notifier.BookingChanged(ctx, action, booking)
	}
	if action == "created" || action == "updated" {
		svc.scheduleTasks(booking)
	}
}

// scheduleTasks enqueues the reminder (start minus lead) and the overdue
// sweep (at end). Past fire times are skipped; the handlers re-check booking
// status at execution, so stale tasks from a later edit are harmless.
func (svc *DefaultBookingService) scheduleTasks(booking *models.Booking) {
	if svc.Queue == nil || booking.CarerID == "" {
		return
	}
	logger := utils.GetLogger()
	now := time.Now().UTC()

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if remindAt := booking.Start.Add(-lead); remindAt.After(now) {
		task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
			BookingID: booking.ID,
			CarerID:   booking.CarerID,
			ClientID:  booking.ClientID,
			Date:      booking.Date,
		}, remindAt)
		if err == nil {
			_, err = svc.Queue.Enqueue(task, opts...)
		}
		if err != nil {
			logger.Warn("failed to enqueue reminder", zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	if booking.End.After(now) {
		task, opts, err := tasks.NewSweepTask(models.SweepPayload{BookingID: booking.ID}, booking.End)
		if err == nil {
			_, err = svc.Queue.Enqueue(task, opts...)
		}
		if err != nil {
			logger.Warn("failed to enqueue sweep", zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
}
