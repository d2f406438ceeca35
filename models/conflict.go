package models

import "time"

// Validation error kinds carried on a ValidationResult. A conflict is the
// normal "invalid" outcome, not an error kind.
const (
	ValidationErrNone    = ""
	ValidationErrInput   = "missing_parameters"
	ValidationErrBackend = "backend_failure"
)

// ConflictSummary carries enough of a conflicting booking to render an alert.
type ConflictSummary struct {
	BookingID  string    `json:"booking_id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name,omitempty"`
	Date       string    `json:"date"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
}

// CarerSummary identifies an alternate carer found free for a proposed interval.
type CarerSummary struct {
	CarerID string `json:"carer_id"`
	Name    string `json:"name,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ValidationResult is the derived, non-persisted outcome of a conflict check.
// ErrKind distinguishes a failed check from a check that found conflicts:
// a backend failure must never be read as "no conflicts".
type ValidationResult struct {
	Valid           bool              `json:"valid"`
	Conflicts       []ConflictSummary `json:"conflicts,omitempty"`
	AvailableCarers []CarerSummary    `json:"available_carers,omitempty"`
	Warning         string            `json:"warning,omitempty"`
	ErrKind         string            `json:"error_kind,omitempty"`
	ErrMessage      string            `json:"error,omitempty"`
}

// Failed reports whether the check itself could not be completed.
func (r *ValidationResult) Failed() bool {
	return r.ErrKind != ValidationErrNone
}
