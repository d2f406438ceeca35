package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"rotacare/models"
	"rotacare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RotaChangeChannel is the pub/sub channel booking writes are announced on.
const RotaChangeChannel = "rota:changed"

// RedisRotaNotifier publishes change events and clears carer-day cache keys.
type RedisRotaNotifier struct {
	Client *redis.Client
}

// NewRedisRotaNotifier returns a notifier backed by the generic cache client.
func NewRedisRotaNotifier(client *redis.Client) *RedisRotaNotifier {
	return &RedisRotaNotifier{Client: client}
}

// DayScheduleKey is the cache key for one carer's bookings on one day.
func DayScheduleKey(carerID, date string) string {
	return fmt.Sprintf("rota:day:%s:%s", carerID, date)
}

// BookingChanged publishes the change and drops the affected day cache.
// Failures are logged only; a missed invalidation must never fail the write
// that already happened.
func (n *RedisRotaNotifier) BookingChanged(ctx context.Context, action string, booking *models.Booking) {
	logger := utils.GetLogger()

	change := RotaChange{
		Action:    action,
		BookingID: booking.ID,
		CarerID:   booking.CarerID,
		ClientID:  booking.ClientID,
		Date:      booking.Date,
	}
	payload, err := json.Marshal(change)
	if err != nil {
		logger.Error("failed to marshal rota change", zap.Error(err))
		return
	}
	if err := n.Client.Publish(ctx, RotaChangeChannel, payload).Err(); err != nil {
		logger.Warn("failed to publish rota change", zap.Error(err))
	}

	if booking.CarerID != "" {
		if err := n.Client.Del(ctx, DayScheduleKey(booking.CarerID, booking.Date)).Err(); err != nil {
			logger.Warn("failed to invalidate day schedule cache",
				zap.String("carerID", booking.CarerID),
				zap.String("date", booking.Date),
				zap.Error(err))
		}
	}
}
