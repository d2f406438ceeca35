package carerRepo

import (
	"context"

	"rotacare/models"
)

// CarerRepository defines data access for carer records.
type CarerRepository interface {
	Create(ctx context.Context, carer *models.Carer) error
	GetByID(ctx context.Context, carerID string) (*models.Carer, error)
	GetByIDs(ctx context.Context, carerIDs []string) ([]models.Carer, error)
	List(ctx context.Context, status string) ([]models.Carer, error)
	Update(ctx context.Context, carer *models.Carer) error
	Delete(ctx context.Context, carerID string) error
}
