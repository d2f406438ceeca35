package carerRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"rotacare/database"
	"rotacare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const carerCollection = "carers"

// MongoCarerRepo is the MongoDB-backed CarerRepository.
type MongoCarerRepo struct {
	coll *mongo.Collection
}

// NewMongoCarerRepo returns a repository bound to the carers collection.
func NewMongoCarerRepo() *MongoCarerRepo {
	return &MongoCarerRepo{coll: database.Collection(carerCollection)}
}

// EnsureIndexes creates the carer lookup indexes.
func (repo *MongoCarerRepo) EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("failed to ensure carer indexes: %v", err)
	}
}

// Create inserts a new carer document.
func (repo *MongoCarerRepo) Create(ctx context.Context, carer *models.Carer) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, carer); err != nil {
		return fmt.Errorf("error creating carer: %w", err)
	}
	return nil
}

// GetByID retrieves a carer by ID.
func (repo *MongoCarerRepo) GetByID(ctx context.Context, carerID string) (*models.Carer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var carer models.Carer
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": carerID}).Decode(&carer); err != nil {
		return nil, fmt.Errorf("carer not found: %w", err)
	}
	return &carer, nil
}

// GetByIDs retrieves carers for a set of IDs.
func (repo *MongoCarerRepo) GetByIDs(ctx context.Context, carerIDs []string) ([]models.Carer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"id": bson.M{"$in": carerIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching carers: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var carers []models.Carer
	if err := cursor.All(ctxWithTimeout, &carers); err != nil {
		return nil, fmt.Errorf("error decoding carers: %w", err)
	}
	return carers, nil
}

// List returns carers, optionally filtered by status.
func (repo *MongoCarerRepo) List(ctx context.Context, status string) ([]models.Carer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing carers: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var carers []models.Carer
	if err := cursor.All(ctxWithTimeout, &carers); err != nil {
		return nil, fmt.Errorf("error decoding carers: %w", err)
	}
	return carers, nil
}

// Update replaces the mutable fields of an existing carer document.
func (repo *MongoCarerRepo) Update(ctx context.Context, carer *models.Carer) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": carer.ID}, bson.M{"$set": carer})
	if err != nil {
		return fmt.Errorf("error updating carer %s: %w", carer.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("carer %s not found", carer.ID)
	}
	return nil
}

// Delete removes a carer document.
func (repo *MongoCarerRepo) Delete(ctx context.Context, carerID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctxWithTimeout, bson.M{"id": carerID}); err != nil {
		return fmt.Errorf("error deleting carer %s: %w", carerID, err)
	}
	return nil
}
