package booking

import (
	"context"
	"fmt"
	"time"

	"rotacare/models"
	"rotacare/services/scheduling"
	"rotacare/utils"

	"github.com/google/uuid"
)

// Edit applies field changes to one booking row. The exclusion set handed to
// the conflict check always contains the row itself plus every sibling of the
// original interval, so an edit never conflicts with the appointment it is
// replacing.
func (svc *DefaultBookingService) Edit(ctx context.Context, req EditRequest) (*models.Booking, error) {
	if req.BookingID == "" {
		return nil, fmt.Errorf("booking id is required")
	}
	current, err := svc.Repo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	siblings, err := svc.Validator.FindSiblings(ctx, current.ClientID, current.Start, current.End, current.ServiceID)
	if err != nil {
		return nil, err
	}
	excludeIDs := scheduling.SiblingIDs(siblings)
	if len(excludeIDs) == 0 {
		excludeIDs = []string{current.ID}
	}

	// Defaults come from the stored row, formatted back through the same
	// boundary layer the inputs are parsed with.
	date := req.Date
	if date == "" {
		date = current.Date
	}
	startTime := req.StartTime
	if startTime == "" {
		startTime = utils.FormatTimeOfDay(current.Start)
	}
	endTime := req.EndTime
	if endTime == "" {
		endTime = utils.FormatTimeOfDay(current.End)
	}
	carerID := current.CarerID
	if req.CarerID != nil {
		carerID = *req.CarerID
	}

	start, end, err := utils.ResolveInterval(date, startTime, endTime)
	if err != nil {
		return nil, err
	}

	if carerID != "" {
		check := svc.Validator.ValidateAssignment(ctx, scheduling.AssignmentRequest{
			CarerID:           carerID,
			Date:              date,
			StartTime:         startTime,
			EndTime:           endTime,
			ExcludeBookingIDs: excludeIDs,
		})
		if check.Failed() {
			return nil, &ValidationFailedError{Kind: check.ErrKind, Message: check.ErrMessage}
		}
		if !check.Valid {
			return nil, &ConflictError{CarerID: carerID, Message: check.ErrMessage, Conflicts: check.Conflicts}
		}
	}

	moved := !start.Equal(current.Start) || !end.Equal(current.End) || carerID != current.CarerID
	before := *current

	current.CarerID = carerID
	current.Date = date
	current.Start = start
	current.End = end
	if req.Status != "" {
		current.Status = req.Status
	} else if carerID == "" {
		current.Status = models.StatusUnassigned
	} else if current.Status == models.StatusUnassigned {
		current.Status = models.StatusAssigned
	}
	if req.Notes != nil {
		current.Notes = *req.Notes
	}
	current.UpdatedAt = time.Now().UTC()

	if err := svc.Repo.Update(ctx, current); err != nil {
		return nil, err
	}
	svc.announce(ctx, "updated", current)
	if moved && svc.Notifier != nil {
		// The pre-edit carer/day cache entry is stale too.
		svc.Notifier.BookingChanged(ctx, "updated", &before)
	}
	return current, nil
}

// AddCarer attaches a further carer to an existing appointment: it promotes
// the sibling set's unassigned placeholder when one exists, otherwise it
// writes a new sibling row.
func (svc *DefaultBookingService) AddCarer(ctx context.Context, bookingID, carerID string) (*models.Booking, error) {
	if bookingID == "" || carerID == "" {
		return nil, fmt.Errorf("booking id and carer id are required")
	}
	anchor, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	siblings, err := svc.Validator.FindSiblings(ctx, anchor.ClientID, anchor.Start, anchor.End, anchor.ServiceID)
	if err != nil {
		return nil, err
	}
	for _, s := range siblings {
		if s.CarerID == carerID && s.IsActive() {
			return nil, fmt.Errorf("carer %s is already on this appointment", carerID)
		}
	}

	check := svc.Validator.ValidateAssignment(ctx, scheduling.AssignmentRequest{
		CarerID:           carerID,
		Date:              anchor.Date,
		StartTime:         utils.FormatTimeOfDay(anchor.Start),
		EndTime:           utils.FormatTimeOfDay(anchor.End),
		ExcludeBookingIDs: scheduling.SiblingIDs(siblings),
	})
	if check.Failed() {
		return nil, &ValidationFailedError{Kind: check.ErrKind, Message: check.ErrMessage}
	}
	if !check.Valid {
		return nil, &ConflictError{CarerID: carerID, Message: check.ErrMessage, Conflicts: check.Conflicts}
	}

	now := time.Now().UTC()
	if placeholder := findPlaceholder(siblings); placeholder != nil {
		placeholder.CarerID = carerID
		placeholder.Status = models.StatusAssigned
		placeholder.UpdatedAt = now
		if err := svc.Repo.Update(ctx, placeholder); err != nil {
			return nil, err
		}
		svc.announce(ctx, "updated", placeholder)
		return placeholder, nil
	}

	row := &models.Booking{
		ID:        uuid.New().String(),
		CarerID:   carerID,
		ClientID:  anchor.ClientID,
		ServiceID: anchor.ServiceID,
		Date:      anchor.Date,
		Start:     anchor.Start,
		End:       anchor.End,
		Status:    models.StatusAssigned,
		Notes:     anchor.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.Repo.Create(ctx, row); err != nil {
		return nil, err
	}
	svc.announce(ctx, "created", row)
	return row, nil
}

// MarkLate records a late arrival on a booking.
func (svc *DefaultBookingService) MarkLate(ctx context.Context, bookingID string, delayMinutes int, reason string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("booking id is required")
	}
	if delayMinutes <= 0 {
		return nil, fmt.Errorf("delay must be positive")
	}
	current, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	current.Status = models.StatusLate
	current.LateMinutes = delayMinutes
	current.LateReason = reason
	current.UpdatedAt = time.Now().UTC()
	if err := svc.Repo.Update(ctx, current); err != nil {
		return nil, err
	}
	svc.announce(ctx, "updated", current)
	return current, nil
}
