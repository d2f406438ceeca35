package booking

import (
	"context"
	"fmt"
	"time"

	"rotacare/models"
	"rotacare/services/scheduling"
	"rotacare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create writes one logical appointment. A multi-carer request fans out to
// one row per carer sharing client, interval and service; carers whose
// conflict check fails are reported in the result, the rest are written.
// When a sibling set already holds an unassigned placeholder, the first
// clean carer promotes it instead of adding a duplicate row.
func (svc *DefaultBookingService) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	logger := utils.GetLogger()

	if req.ClientID == "" || req.ServiceID == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, fmt.Errorf("client, service, date, start time and end time are all required")
	}
	start, end, err := utils.ResolveInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &CreateResult{Conflicts: map[string][]models.ConflictSummary{}}

	// No carers: a single unassigned placeholder holds the slot.
	if len(req.CarerIDs) == 0 {
		placeholder := svc.newRow(req, "", start, end, models.StatusUnassigned, now)
		if err := svc.Repo.Create(ctx, placeholder); err != nil {
			return nil, err
		}
		svc.announce(ctx, "created", placeholder)
		result.Created = append(result.Created, *placeholder)
		return result, nil
	}

	siblings, err := svc.Validator.FindSiblings(ctx, req.ClientID, start, end, req.ServiceID)
	if err != nil {
		return nil, err
	}
	excludeIDs := scheduling.SiblingIDs(siblings)
	placeholder := findPlaceholder(siblings)

	for _, carerID := range req.CarerIDs {
		check := svc.Validator.ValidateAssignment(ctx, scheduling.AssignmentRequest{
			CarerID:           carerID,
			Date:              req.Date,
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			ExcludeBookingIDs: excludeIDs,
		})
		if check.Failed() {
			return nil, &ValidationFailedError{Kind: check.ErrKind, Message: check.ErrMessage}
		}
		if !check.Valid {
			result.Conflicts[carerID] = check.Conflicts
			continue
		}
		if check.Warning != "" {
			result.Warnings = append(result.Warnings, check.Warning)
		}

		status := req.Status
		if status == "" {
			status = models.StatusAssigned
		}

		if placeholder != nil {
			// Promote the unassigned row rather than duplicating it.
			placeholder.CarerID = carerID
			placeholder.Status = status
			placeholder.Notes = req.Notes
			placeholder.UpdatedAt = now
			if err := svc.Repo.Update(ctx, placeholder); err != nil {
				return nil, err
			}
			svc.announce(ctx, "updated", placeholder)
			result.Created = append(result.Created, *placeholder)
			placeholder = nil
			continue
		}

		row := svc.newRow(req, carerID, start, end, status, now)
		if err := svc.Repo.Create(ctx, row); err != nil {
			return nil, err
		}
		svc.announce(ctx, "created", row)
		result.Created = append(result.Created, *row)
	}

	logger.Info("appointment created",
		zap.String("clientID", req.ClientID),
		zap.Int("rows", len(result.Created)),
		zap.Int("refused", len(result.Conflicts)))
	return result, nil
}

func (svc *DefaultBookingService) newRow(req CreateRequest, carerID string, start, end time.Time, status string, now time.Time) *models.Booking {
	return &models.Booking{
		ID:        uuid.New().String(),
		CarerID:   carerID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Start:     start,
		End:       end,
		Status:    status,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func findPlaceholder(siblings []models.Booking) *models.Booking {
	for i := range siblings {
		if siblings[i].CarerID == "" && siblings[i].Status == models.StatusUnassigned {
			return &siblings[i]
		}
	}
	return nil
}
