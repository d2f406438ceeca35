package notification

import (
	"context"

	"rotacare/models"
)

// RotaChange describes one booking write, published so connected admin
// clients can drop their cached day views.
type RotaChange struct {
	Action    string `json:"action"` // created | updated | cancelled | deleted
	BookingID string `json:"booking_id"`
	CarerID   string `json:"carer_id,omitempty"`
	ClientID  string `json:"client_id"`
	Date      string `json:"date"`
}

// RotaNotifier fans out booking change events and invalidates the
// server-side carer-day cache entries a write touched.
type RotaNotifier interface {
	BookingChanged(ctx context.Context, action string, booking *models.Booking)
}
