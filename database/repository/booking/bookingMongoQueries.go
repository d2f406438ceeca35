package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"rotacare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListForCarerInWindow returns the carer's bookings whose interval intersects
// [dayStart, dayEnd), excluding the given IDs. The intersection filter is the
// same half-open rule the validator applies: start < windowEnd AND end > windowStart,
// so overnight bookings from the previous day still surface.
func (repo *MongoBookingRepo) ListForCarerInWindow(ctx context.Context, carerID string, dayStart, dayEnd time.Time, excludeIDs []string, includeCancelled bool) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"carer_id": carerID,
		"start":    bson.M{"$lt": dayEnd},
		"end":      bson.M{"$gt": dayStart},
	}
	if len(excludeIDs) > 0 {
		filter["id"] = bson.M{"$nin": excludeIDs}
	}
	if !includeCancelled {
		filter["status"] = bson.M{"$ne": models.StatusCancelled}
	}

	cursor, err := repo.coll.Find(ctxWithTimeout, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching carer bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding carer bookings: %w", err)
	}
	return bookings, nil
}

// ListSiblings returns the rows of one logical multi-carer appointment:
// same client, exact same interval, same service. Cancelled rows are kept so
// that callers can promote or exclude them explicitly.
func (repo *MongoBookingRepo) ListSiblings(ctx context.Context, clientID string, start, end time.Time, serviceID string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"client_id":  clientID,
		"start":      start,
		"end":        end,
		"service_id": serviceID,
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching sibling bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding sibling bookings: %w", err)
	}
	return bookings, nil
}

// ListInRange returns all bookings starting in [from, to).
func (repo *MongoBookingRepo) ListInRange(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"start": bson.M{"$gte": from, "$lt": to}}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings in range: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings in range: %w", err)
	}
	return bookings, nil
}

// CarerHoursInRange aggregates non-cancelled booked minutes per carer.
func (repo *MongoBookingRepo) CarerHoursInRange(ctx context.Context, from, to time.Time) ([]models.CarerHours, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"start":    bson.M{"$gte": from, "$lt": to},
			"status":   bson.M{"$ne": models.StatusCancelled},
			"carer_id": bson.M{"$ne": ""},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": "$carer_id",
			"total_minutes": bson.M{"$sum": bson.M{
				"$dateDiff": bson.M{"startDate": "$start", "endDate": "$end", "unit": "minute"},
			}},
			"bookings": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"total_minutes": -1}}},
	}
	cursor, err := repo.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregation error: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var results []models.CarerHours
	if err := cursor.All(ctxWithTimeout, &results); err != nil {
		return nil, fmt.Errorf("error decoding aggregation result: %w", err)
	}
	return results, nil
}
