package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rotacare/config"
	bookingRepo "rotacare/database/repository/booking"
	"rotacare/models"
	"rotacare/services/tasks"
	"rotacare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitRotaWorker runs the asynq worker that delivers booking reminders and
// sweeps overdue statuses.
func InitRotaWorker(repo bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(repo))
	mux.HandleFunc(tasks.TypeBookingSweep, handleSweepTask(repo))

	go func() {
		log.Println("[RotaWorker] starting async worker...")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RotaWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[RotaWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask announces an upcoming booking. The booking is re-read
// at fire time; cancelled or reassigned bookings are dropped silently.
func handleReminderTask(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}
		booking, err := repo.GetByID(ctx, p.BookingID)
		if err != nil {
			logger.Warn("reminder for missing booking", zap.String("bookingID", p.BookingID))
			return nil
		}
		if !booking.IsActive() || booking.CarerID != p.CarerID {
			return nil
		}
		logger.Info("booking reminder",
			zap.String("bookingID", booking.ID),
			zap.String("carerID", booking.CarerID),
			zap.String("date", booking.Date),
			zap.String("start", utils.FormatTimeOfDay(booking.Start)))
		return nil
	}
}

// handleSweepTask flips overdue statuses once a booking's interval has
// passed: still-assigned (or late) becomes missed, in-progress becomes done.
func handleSweepTask(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.SweepPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid sweep payload", zap.Error(err))
			return err
		}
		booking, err := repo.GetByID(ctx, p.BookingID)
		if err != nil {
			return nil
		}
		if booking.End.After(time.Now().UTC()) {
			return nil
		}

		var next string
		switch booking.Status {
		case models.StatusAssigned, models.StatusLate:
			next = models.StatusMissed
		case models.StatusInProgress:
			next = models.StatusDone
		default:
			return nil
		}
		if err := repo.UpdateStatus(ctx, booking.ID, next); err != nil {
			logger.Error("sweep status update failed", zap.String("bookingID", booking.ID), zap.Error(err))
			return err
		}
		logger.Info("booking status swept",
			zap.String("bookingID", booking.ID),
			zap.String("from", booking.Status),
			zap.String("to", next))
		return nil
	}
}
