package bookingRepo

import (
	"context"
	"log"
	"time"

	"rotacare/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingCollection = "bookings"

// MongoBookingRepo is the MongoDB-backed BookingRepository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a repository bound to the bookings collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.Collection(bookingCollection)}
}

// EnsureIndexes creates the indexes the overlap and sibling queries rely on.
func (repo *MongoBookingRepo) EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "carer_id", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "start", Value: 1}, {Key: "end", Value: 1}, {Key: "service_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("failed to ensure booking indexes: %v", err)
	}
}
