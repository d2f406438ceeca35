package tasks

import (
	"encoding/json"
	"time"

	"rotacare/models"

	"github.com/hibiken/asynq"
)

const (
	// TypeBookingReminder fires shortly before a booking starts.
	TypeBookingReminder = "booking:reminder"
	// TypeBookingSweep fires at a booking's end to flip overdue statuses.
	TypeBookingSweep = "booking:sweep"
)

// NewReminderTask builds a reminder task scheduled for fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeBookingReminder, b), []asynq.Option{asynq.ProcessAt(fireAt)}, nil
}

// NewSweepTask builds a status sweep task scheduled for fireAt.
func NewSweepTask(payload models.SweepPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeBookingSweep, b), []asynq.Option{asynq.ProcessAt(fireAt)}, nil
}

// Enqueuer is the slice of asynq.Client the booking service needs; it lets
// tests swap in a recorder.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
