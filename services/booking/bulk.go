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

// Replicate copies the source week's bookings onto the following weeks.
// Target intervals are re-resolved through the wall-clock boundary so a copy
// lands at the same local time even across a daylight-saving change. Each
// target row is conflict-checked; conflicting targets are skipped and
// reported, never written.
func (svc *DefaultBookingService) Replicate(ctx context.Context, req ReplicateRequest) (*models.ReplicationReport, error) {
	logger := utils.GetLogger()

	if req.SourceStart == "" {
		return nil, fmt.Errorf("source week start date is required")
	}
	if req.Weeks < 1 {
		return nil, fmt.Errorf("weeks must be at least 1")
	}
	weekStart, _, err := utils.DayWindow(req.SourceStart)
	if err != nil {
		return nil, err
	}
	weekEndDate, err := utils.AddDays(req.SourceStart, 7)
	if err != nil {
		return nil, err
	}
	weekEnd, _, err := utils.DayWindow(weekEndDate)
	if err != nil {
		return nil, err
	}

	source, err := svc.Repo.ListInRange(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	report := &models.ReplicationReport{}
	now := time.Now().UTC()

	for week := 1; week <= req.Weeks; week++ {
		for i := range source {
			src := &source[i]
			if !src.IsActive() {
				continue
			}
			if req.ClientID != "" && src.ClientID != req.ClientID {
				continue
			}

			// Same local wall-clock time, N weeks later.
			targetDate, err := utils.AddDays(src.Date, 7*week)
			if err != nil {
				report.Skipped = append(report.Skipped, models.SkippedBooking{
					SourceID: src.ID, Date: src.Date, CarerID: src.CarerID,
					Reason: "unparseable source date",
				})
				continue
			}
			startTime := utils.FormatTimeOfDay(src.Start)
			endTime := utils.FormatTimeOfDay(src.End)
			start, end, err := utils.ResolveInterval(targetDate, startTime, endTime)
			if err != nil {
				report.Skipped = append(report.Skipped, models.SkippedBooking{
					SourceID: src.ID, Date: targetDate, CarerID: src.CarerID,
					Reason: err.Error(),
				})
				continue
			}

			status := models.StatusAssigned
			if src.CarerID == "" {
				status = models.StatusUnassigned
			} else {
				check := svc.Validator.ValidateAssignment(ctx, scheduling.AssignmentRequest{
					CarerID:   src.CarerID,
					Date:      targetDate,
					StartTime: startTime,
					EndTime:   endTime,
				})
				if check.Failed() {
					return nil, &ValidationFailedError{Kind: check.ErrKind, Message: check.ErrMessage}
				}
				if !check.Valid {
					report.Skipped = append(report.Skipped, models.SkippedBooking{
						SourceID: src.ID, Date: targetDate, CarerID: src.CarerID,
						Reason: check.ErrMessage,
					})
					continue
				}
			}

			row := &models.Booking{
				ID:        uuid.New().String(),
				CarerID:   src.CarerID,
				ClientID:  src.ClientID,
				ServiceID: src.ServiceID,
				Date:      targetDate,
				Start:     start,
				End:       end,
				Status:    status,
				Notes:     src.Notes,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := svc.Repo.Create(ctx, row); err != nil {
				return report, err
			}
			svc.announce(ctx, "created", row)
			report.Created = append(report.Created, *row)
		}
	}

	logger.Info("rota replicated",
		zap.String("sourceStart", req.SourceStart),
		zap.Int("weeks", req.Weeks),
		zap.Int("created", len(report.Created)),
		zap.Int("skipped", len(report.Skipped)))
	return report, nil
}
