package models

// SkippedBooking records one source booking that bulk replication refused
// to copy, with the reason (usually a conflict on the target day).
type SkippedBooking struct {
	SourceID string `json:"source_id"`
	Date     string `json:"date"`
	CarerID  string `json:"carer_id,omitempty"`
	Reason   string `json:"reason"`
}

// ReplicationReport summarizes a bulk rota replication run.
type ReplicationReport struct {
	Created []Booking        `json:"created"`
	Skipped []SkippedBooking `json:"skipped"`
}

// ReminderPayload is the asynq payload for a booking reminder task.
type ReminderPayload struct {
	BookingID string `json:"booking_id"`
	CarerID   string `json:"carer_id"`
	ClientID  string `json:"client_id"`
	Date      string `json:"date"`
}

// SweepPayload is the asynq payload for an overdue status sweep task.
type SweepPayload struct {
	BookingID string `json:"booking_id"`
}
