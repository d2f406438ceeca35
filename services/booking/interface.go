package booking

import (
	"context"

	bookingRepo "rotacare/database/repository/booking"
	carerRepo "rotacare/database/repository/carer"
	clientRepo "rotacare/database/repository/client"
	"rotacare/models"
	"rotacare/services/notification"
	"rotacare/services/scheduling"
	"rotacare/services/tasks"
)

// CreateRequest creates one logical appointment. CarerIDs may list several
// carers (one row is written per carer) or be empty, which writes a single
// unassigned placeholder row.
type CreateRequest struct {
	CarerIDs  []string `json:"carer_ids"`
	ClientID  string   `json:"client_id"`
	ServiceID string   `json:"service_id"`
	Date      string   `json:"date"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Status    string   `json:"status,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// CreateResult reports which carers were booked and which were refused.
type CreateResult struct {
	Created   []models.Booking                    `json:"created"`
	Conflicts map[string][]models.ConflictSummary `json:"conflicts,omitempty"`
	Warnings  []string                            `json:"warnings,omitempty"`
}

// EditRequest edits one booking row. Zero-value time fields keep the
// current interval.
type EditRequest struct {
	BookingID string  `json:"booking_id"`
	CarerID   *string `json:"carer_id,omitempty"`
	Date      string  `json:"date,omitempty"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"`
	Status    string  `json:"status,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// CancelRequest cancels one row or the whole sibling set, optionally
// charging a cancellation fee.
type CancelRequest struct {
	BookingID   string `json:"booking_id"`
	AllSiblings bool   `json:"all_siblings"`
	Reason      string `json:"reason,omitempty"`
	Fee         int64  `json:"fee,omitempty"` // minor units
	Currency    string `json:"currency,omitempty"`
}

// ReplicateRequest copies the bookings of [SourceStart, SourceStart+7d) onto
// the following Weeks weeks, optionally restricted to one client.
type ReplicateRequest struct {
	SourceStart string `json:"source_start"` // "YYYY-MM-DD", start of source week
	Weeks       int    `json:"weeks"`
	ClientID    string `json:"client_id,omitempty"`
}

// BookingService is the write side of the rota: every mutation validates
// through the conflict checker first and announces itself on success.
type BookingService interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResult, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	ListDay(ctx context.Context, date string) ([]models.Booking, error)
	Edit(ctx context.Context, req EditRequest) (*models.Booking, error)
	AddCarer(ctx context.Context, bookingID, carerID string) (*models.Booking, error)
	Cancel(ctx context.Context, req CancelRequest) ([]models.Booking, error)
	Delete(ctx context.Context, bookingID string, allSiblings bool) (int, error)
	MarkLate(ctx context.Context, bookingID string, delayMinutes int, reason string) (*models.Booking, error)
	Replicate(ctx context.Context, req ReplicateRequest) (*models.ReplicationReport, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	CarerRepo  carerRepo.CarerRepository
	ClientRepo clientRepo.ClientRepository
	Validator  scheduling.ConflictValidator
	Notifier   notification.RotaNotifier
	Payments   FeeCharger
	Queue      tasks.Enqueuer
}
