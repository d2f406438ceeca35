package booking

import (
	"context"
	"fmt"
	"time"

	"rotacare/models"
	"rotacare/utils"

	"go.uber.org/zap"
)

// Cancel flips one row, or the whole sibling set, to cancelled. The rows stay
// in storage and drop out of conflict checks by status. A non-zero fee is
// charged once against the client and recorded on the anchor row.
func (svc *DefaultBookingService) Cancel(ctx context.Context, req CancelRequest) ([]models.Booking, error) {
	logger := utils.GetLogger()

	if req.BookingID == "" {
		return nil, fmt.Errorf("booking id is required")
	}
	anchor, err := svc.Repo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if anchor.Status == models.StatusCancelled {
		return nil, fmt.Errorf("booking %s is already cancelled", anchor.ID)
	}

	rows := []models.Booking{*anchor}
	if req.AllSiblings {
		siblings, err := svc.Validator.FindSiblings(ctx, anchor.ClientID, anchor.Start, anchor.End, anchor.ServiceID)
		if err != nil {
			return nil, err
		}
		rows = rows[:0]
		for _, s := range siblings {
			if s.IsActive() {
				rows = append(rows, s)
			}
		}
	}

	var paymentIntentID string
	if req.Fee > 0 {
		if svc.Payments == nil {
			return nil, fmt.Errorf("cancellation fee requested but no payment backend is configured")
		}
		currency := req.Currency
		if currency == "" {
			currency = "gbp"
		}
		paymentIntentID, err = svc.Payments.ChargeCancellation(ctx, anchor.ClientID, req.Fee, currency, anchor.ID)
		if err != nil {
			return nil, fmt.Errorf("cancellation fee charge failed: %w", err)
		}
	}

	now := time.Now().UTC()
	cancelled := make([]models.Booking, 0, len(rows))
	for i := range rows {
		row := rows[i]
		row.Status = models.StatusCancelled
		row.CancelReason = req.Reason
		row.UpdatedAt = now
		if row.ID == anchor.ID {
			row.CancellationFee = req.Fee
			row.PaymentIntentID = paymentIntentID
		}
		if err := svc.Repo.Update(ctx, &row); err != nil {
			return cancelled, err
		}
		svc.announce(ctx, "cancelled", &row)
		cancelled = append(cancelled, row)
	}

	logger.Info("booking cancelled",
		zap.String("bookingID", anchor.ID),
		zap.Bool("allSiblings", req.AllSiblings),
		zap.Int("rows", len(cancelled)),
		zap.Int64("fee", req.Fee))
	return cancelled, nil
}

// Delete removes one row or the whole sibling set. This is the explicit
// delete-appointment action; cancellation never deletes.
func (svc *DefaultBookingService) Delete(ctx context.Context, bookingID string, allSiblings bool) (int, error) {
	if bookingID == "" {
		return 0, fmt.Errorf("booking id is required")
	}
	anchor, err := svc.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}

	rows := []models.Booking{*anchor}
	if allSiblings {
		siblings, err := svc.Validator.FindSiblings(ctx, anchor.ClientID, anchor.Start, anchor.End, anchor.ServiceID)
		if err != nil {
			return 0, err
		}
		rows = siblings
	}

	deleted := 0
	for i := range rows {
		if err := svc.Repo.Delete(ctx, rows[i].ID); err != nil {
			return deleted, err
		}
		svc.announce(ctx, "deleted", &rows[i])
		deleted++
	}
	return deleted, nil
}
