package account

import (
	"context"
	"fmt"
	"time"

	accountRepo "rotacare/database/repository/account"
	"rotacare/models"
	"rotacare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// InvalidCredentialsError hides whether the email or the password was wrong.
type InvalidCredentialsError struct{}

func (InvalidCredentialsError) Error() string { return "invalid email or password" }

// AccountService handles coordinator sign-in and provisioning.
type AccountService interface {
	SignIn(ctx context.Context, email, password string) (string, *models.Account, error)
	SignOut(ctx context.Context, token string) error
	Create(ctx context.Context, email, name, role, password string) (*models.Account, error)
	Get(ctx context.Context, accountID string) (*models.Account, error)
}

// DefaultAccountService implements AccountService. Revoked tokens are held
// by hash in the auth cache until they would have expired anyway.
type DefaultAccountService struct {
	Repo      accountRepo.AccountRepository
	AuthCache *redis.Client
}

// SignIn verifies credentials and issues a JWT.
func (svc *DefaultAccountService) SignIn(ctx context.Context, email, password string) (string, *models.Account, error) {
	if email == "" || password == "" {
		return "", nil, InvalidCredentialsError{}
	}
	acct, err := svc.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, InvalidCredentialsError{}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", nil, InvalidCredentialsError{}
	}
	token, err := utils.GenerateToken(acct.ID, acct.Role, tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, acct, nil
}

// SignOut revokes the presented token by hash.
func (svc *DefaultAccountService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("no token presented")
	}
	if err := svc.AuthCache.Set(ctx, "revoked:"+utils.HashToken(token), "1", tokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token hash has been revoked.
func (svc *DefaultAccountService) IsRevoked(ctx context.Context, token string) bool {
	n, err := svc.AuthCache.Exists(ctx, "revoked:"+utils.HashToken(token)).Result()
	return err == nil && n > 0
}

// Create provisions a coordinator account.
func (svc *DefaultAccountService) Create(ctx context.Context, email, name, role, password string) (*models.Account, error) {
	if email == "" || name == "" || password == "" {
		return nil, fmt.Errorf("email, name and password are all required")
	}
	if role == "" {
		role = models.RoleCoordinator
	}
	if _, err := svc.Repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("account with email %s already exists", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now().UTC()
	acct := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := svc.Repo.Create(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// Get returns one account.
func (svc *DefaultAccountService) Get(ctx context.Context, accountID string) (*models.Account, error) {
	return svc.Repo.GetByID(ctx, accountID)
}
