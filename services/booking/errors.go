package booking

import (
	"fmt"

	"rotacare/models"
)

// ConflictError carries the validation outcome when a write is refused
// because the proposed interval overlaps existing bookings.
type ConflictError struct {
	CarerID   string
	Message   string
	Conflicts []models.ConflictSummary
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflict for carer %s: %s", e.CarerID, e.Message)
}

// ValidationFailedError signals that the conflict check itself could not be
// completed; the write must not proceed on an unknown validation state.
type ValidationFailedError struct {
	Kind    string
	Message string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation %s: %s", e.Kind, e.Message)
}
