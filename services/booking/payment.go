package booking

import (
	"context"
	"fmt"

	"rotacare/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// FeeCharger charges a cancellation fee and returns the payment reference.
type FeeCharger interface {
	ChargeCancellation(ctx context.Context, clientID string, amount int64, currency, bookingID string) (string, error)
}

// StripeFeeCharger charges late-cancellation fees through Stripe
// PaymentIntents. The client's Stripe customer ID is resolved through the
// client record's stored reference.
type StripeFeeCharger struct {
	CustomerLookup func(ctx context.Context, clientID string) (customerID, paymentMethodID string, err error)
}

// ChargeCancellation creates and confirms an off-session PaymentIntent.
func (c *StripeFeeCharger) ChargeCancellation(ctx context.Context, clientID string, amount int64, currency, bookingID string) (string, error) {
	logger := utils.GetLogger()

	if amount <= 0 {
		return "", fmt.Errorf("fee amount must be positive")
	}
	customerID, paymentMethodID, err := c.CustomerLookup(ctx, clientID)
	if err != nil {
		return "", fmt.Errorf("no payment details for client %s: %w", clientID, err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(currency),
		Customer:      stripe.String(customerID),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
		Description:   stripe.String("Late cancellation fee"),
	}
	params.AddMetadata("booking_id", bookingID)
	params.AddMetadata("client_id", clientID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent failed: %w", err)
	}

	logger.Info("cancellation fee charged",
		zap.String("clientID", clientID),
		zap.String("paymentIntent", intent.ID),
		zap.Int64("amount", amount))
	return intent.ID, nil
}
