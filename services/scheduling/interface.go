package scheduling

import (
	"context"
	"time"

	bookingRepo "rotacare/database/repository/booking"
	carerRepo "rotacare/database/repository/carer"
	clientRepo "rotacare/database/repository/client"
	"rotacare/models"
)

// AssignmentRequest proposes a (carer, date, interval) assignment for
// validation. StartTime and EndTime are wall-clock "HH:mm" strings; Date is
// "YYYY-MM-DD". ExcludeBookingIDs lists the booking being edited plus all of
// its sibling rows so an edit never conflicts with itself.
type AssignmentRequest struct {
	CarerID           string   `json:"carer_id"`
	Date              string   `json:"date"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	ExcludeBookingIDs []string `json:"exclude_booking_ids,omitempty"`
	CandidateCarerIDs []string `json:"candidate_carer_ids,omitempty"`
}

// ConflictValidator checks proposed assignments against existing bookings.
type ConflictValidator interface {
	// ValidateAssignment is strictly read-only. Input problems and backend
	// failures surface as result kinds, never as a "no conflicts" outcome.
	ValidateAssignment(ctx context.Context, req AssignmentRequest) models.ValidationResult

	// FindSiblings returns all rows of the logical appointment identified by
	// client + exact interval + service.
	FindSiblings(ctx context.Context, clientID string, start, end time.Time, serviceID string) ([]models.Booking, error)
}

// DefaultConflictValidator implements ConflictValidator over the booking
// store, with carer/client lookups used only to decorate results.
type DefaultConflictValidator struct {
	Bookings bookingRepo.BookingRepository
	Carers   carerRepo.CarerRepository
	Clients  clientRepo.ClientRepository
}
