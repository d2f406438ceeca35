package clientRepo

import (
	"context"
	"fmt"
	"time"

	"rotacare/database"
	"rotacare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const clientCollection = "clients"

// ClientRepository defines data access for client records.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, clientID string) (*models.Client, error)
	GetByIDs(ctx context.Context, clientIDs []string) ([]models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, clientID string) error
}

// MongoClientRepo is the MongoDB-backed ClientRepository.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo returns a repository bound to the clients collection.
func NewMongoClientRepo() *MongoClientRepo {
	return &MongoClientRepo{coll: database.Collection(clientCollection)}
}

// Create inserts a new client document.
func (repo *MongoClientRepo) Create(ctx context.Context, client *models.Client) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, client); err != nil {
		return fmt.Errorf("error creating client: %w", err)
	}
	return nil
}

// GetByID retrieves a client by ID.
func (repo *MongoClientRepo) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": clientID}).Decode(&client); err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	return &client, nil
}

// GetByIDs retrieves clients for a set of IDs.
func (repo *MongoClientRepo) GetByIDs(ctx context.Context, clientIDs []string) ([]models.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"id": bson.M{"$in": clientIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching clients: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var clients []models.Client
	if err := cursor.All(ctxWithTimeout, &clients); err != nil {
		return nil, fmt.Errorf("error decoding clients: %w", err)
	}
	return clients, nil
}

// List returns all clients sorted by name.
func (repo *MongoClientRepo) List(ctx context.Context) ([]models.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var clients []models.Client
	if err := cursor.All(ctxWithTimeout, &clients); err != nil {
		return nil, fmt.Errorf("error decoding clients: %w", err)
	}
	return clients, nil
}

// Update replaces the mutable fields of an existing client document.
func (repo *MongoClientRepo) Update(ctx context.Context, client *models.Client) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": client.ID}, bson.M{"$set": client})
	if err != nil {
		return fmt.Errorf("error updating client %s: %w", client.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("client %s not found", client.ID)
	}
	return nil
}

// Delete removes a client document.
func (repo *MongoClientRepo) Delete(ctx context.Context, clientID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctxWithTimeout, bson.M{"id": clientID}); err != nil {
		return fmt.Errorf("error deleting client %s: %w", clientID, err)
	}
	return nil
}
