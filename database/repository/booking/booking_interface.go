package bookingRepo

import (
	"context"
	"time"

	"rotacare/models"
)

// BookingRepository defines data access for booking records.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, bookingID, status string) error
	Delete(ctx context.Context, bookingID string) error

	// ListForCarerInWindow returns a carer's bookings intersecting the
	// [dayStart, dayEnd) window, minus excludeIDs. Cancelled bookings are
	// filtered unless includeCancelled is set.
	ListForCarerInWindow(ctx context.Context, carerID string, dayStart, dayEnd time.Time, excludeIDs []string, includeCancelled bool) ([]models.Booking, error)

	// ListSiblings returns the rows representing the same logical
	// appointment: same client, same exact interval, same service.
	ListSiblings(ctx context.Context, clientID string, start, end time.Time, serviceID string) ([]models.Booking, error)

	// ListInRange returns all bookings with Start in [from, to).
	ListInRange(ctx context.Context, from, to time.Time) ([]models.Booking, error)

	// CarerHoursInRange aggregates non-cancelled booked minutes per carer
	// over [from, to).
	CarerHoursInRange(ctx context.Context, from, to time.Time) ([]models.CarerHours, error)
}
