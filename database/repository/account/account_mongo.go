package accountRepo

import (
	"context"
	"fmt"
	"time"

	"rotacare/database"
	"rotacare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const accountCollection = "accounts"

// AccountRepository defines data access for coordinator accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, accountID string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// MongoAccountRepo is the MongoDB-backed AccountRepository.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo returns a repository bound to the accounts collection.
func NewMongoAccountRepo() *MongoAccountRepo {
	return &MongoAccountRepo{coll: database.Collection(accountCollection)}
}

// Create inserts a new account document.
func (repo *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, account); err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID.
func (repo *MongoAccountRepo) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": accountID}).Decode(&account); err != nil {
		return nil, fmt.Errorf("account not found: %w", err)
	}
	return &account, nil
}

// GetByEmail retrieves an account by email.
func (repo *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"email": email}).Decode(&account); err != nil {
		return nil, fmt.Errorf("account not found: %w", err)
	}
	return &account, nil
}
