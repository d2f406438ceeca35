package models

import "time"

// Booking statuses. A booking is never hard-deleted by the cancellation
// workflow; it is flipped to StatusCancelled and excluded from conflict checks.
const (
	StatusAssigned   = "assigned"
	StatusUnassigned = "unassigned"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
	StatusMissed     = "missed"
	StatusCancelled  = "cancelled"
	StatusDeparted   = "departed"
	StatusSuspended  = "suspended"
	StatusLate       = "late"
	StatusTraining   = "training"
	StatusMeeting    = "meeting"
)

// Booking assigns a carer to a client for a contiguous interval on a calendar day.
// Start and End are absolute UTC instants resolved once at the parse boundary;
// Date keeps the agency-local day bucket used by day-window queries.
// An empty CarerID marks an unassigned placeholder row.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	CarerID         string    `bson:"carer_id" json:"carer_id"`
	ClientID        string    `bson:"client_id" json:"client_id"`
	ServiceID       string    `bson:"service_id" json:"service_id"`
	Date            string    `bson:"date" json:"date"` // "YYYY-MM-DD" in agency time
	Start           time.Time `bson:"start" json:"start"`
	End             time.Time `bson:"end" json:"end"`
	Status          string    `bson:"status" json:"status"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	LateMinutes     int       `bson:"late_minutes,omitempty" json:"late_minutes,omitempty"`
	LateReason      string    `bson:"late_reason,omitempty" json:"late_reason,omitempty"`
	CancelReason    string    `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CancellationFee int64     `bson:"cancellation_fee,omitempty" json:"cancellation_fee,omitempty"` // minor units
	PaymentIntentID string    `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the booking still occupies its interval for
// conflict purposes.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CarerHours is one row of the carer hours aggregation over a date range.
type CarerHours struct {
	CarerID      string  `bson:"_id" json:"carer_id"`
	CarerName    string  `bson:"-" json:"carer_name,omitempty"`
	TotalMinutes int     `bson:"total_minutes" json:"total_minutes"`
	Bookings     int     `bson:"bookings" json:"bookings"`
	TotalHours   float64 `bson:"-" json:"total_hours"`
}
