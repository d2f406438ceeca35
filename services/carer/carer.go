package carer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "rotacare/database/repository/booking"
	carerRepo "rotacare/database/repository/carer"
	"rotacare/models"
	"rotacare/services/notification"
	"rotacare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dayScheduleTTL = 5 * time.Minute

var validStatuses = map[string]bool{
	models.CarerActive:   true,
	models.CarerInactive: true,
	models.CarerOnLeave:  true,
	models.CarerTraining: true,
}

// CarerService manages care staff and their day schedules.
type CarerService interface {
	Create(ctx context.Context, carer *models.Carer) (*models.Carer, error)
	Get(ctx context.Context, carerID string) (*models.Carer, error)
	List(ctx context.Context, status string) ([]models.Carer, error)
	Update(ctx context.Context, carer *models.Carer) (*models.Carer, error)
	SetStatus(ctx context.Context, carerID, status string) (*models.Carer, error)
	Delete(ctx context.Context, carerID string) error
	DaySchedule(ctx context.Context, carerID, date string) ([]models.Booking, error)
}

// DefaultCarerService implements CarerService. The day schedule read is
// cached in Redis under the key the notifier invalidates on booking writes.
type DefaultCarerService struct {
	Repo     carerRepo.CarerRepository
	Bookings bookingRepo.BookingRepository
	Cache    *redis.Client
}

// Create registers a new carer, defaulting to active.
func (svc *DefaultCarerService) Create(ctx context.Context, carer *models.Carer) (*models.Carer, error) {
	if carer.Name == "" {
		return nil, fmt.Errorf("carer name is required")
	}
	if carer.Status == "" {
		carer.Status = models.CarerActive
	}
	if !validStatuses[carer.Status] {
		return nil, fmt.Errorf("invalid carer status %q", carer.Status)
	}
	carer.ID = uuid.New().String()
	now := time.Now().UTC()
	carer.CreatedAt = now
	carer.UpdatedAt = now
	if err := svc.Repo.Create(ctx, carer); err != nil {
		return nil, err
	}
	return carer, nil
}

// Get returns one carer.
func (svc *DefaultCarerService) Get(ctx context.Context, carerID string) (*models.Carer, error) {
	return svc.Repo.GetByID(ctx, carerID)
}

// List returns carers, optionally filtered by status.
func (svc *DefaultCarerService) List(ctx context.Context, status string) ([]models.Carer, error) {
	if status != "" && !validStatuses[status] {
		return nil, fmt.Errorf("invalid carer status %q", status)
	}
	return svc.Repo.List(ctx, status)
}

// Update replaces a carer's editable fields.
func (svc *DefaultCarerService) Update(ctx context.Context, carer *models.Carer) (*models.Carer, error) {
	if carer.ID == "" {
		return nil, fmt.Errorf("carer id is required")
	}
	current, err := svc.Repo.GetByID(ctx, carer.ID)
	if err != nil {
		return nil, err
	}
	if carer.Status != "" && !validStatuses[carer.Status] {
		return nil, fmt.Errorf("invalid carer status %q", carer.Status)
	}
	if carer.Status == "" {
		carer.Status = current.Status
	}
	carer.CreatedAt = current.CreatedAt
	carer.UpdatedAt = time.Now().UTC()
	if err := svc.Repo.Update(ctx, carer); err != nil {
		return nil, err
	}
	return carer, nil
}

// SetStatus transitions a carer's availability status.
func (svc *DefaultCarerService) SetStatus(ctx context.Context, carerID, status string) (*models.Carer, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid carer status %q", status)
	}
	current, err := svc.Repo.GetByID(ctx, carerID)
	if err != nil {
		return nil, err
	}
	current.Status = status
	current.UpdatedAt = time.Now().UTC()
	if err := svc.Repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete removes a carer record.
func (svc *DefaultCarerService) Delete(ctx context.Context, carerID string) error {
	if carerID == "" {
		return fmt.Errorf("carer id is required")
	}
	return svc.Repo.Delete(ctx, carerID)
}

// DaySchedule returns a carer's non-cancelled bookings for one day, served
// from cache when the entry has not been invalidated by a write.
func (svc *DefaultCarerService) DaySchedule(ctx context.Context, carerID, date string) ([]models.Booking, error) {
	logger := utils.GetLogger()
	key := notification.DayScheduleKey(carerID, date)

	if svc.Cache != nil {
		if cached, err := svc.Cache.Get(ctx, key).Result(); err == nil {
			var bookings []models.Booking
			if err := json.Unmarshal([]byte(cached), &bookings); err == nil {
				return bookings, nil
			}
		}
	}

	dayStart, dayEnd, err := utils.DayWindow(date)
	if err != nil {
		return nil, err
	}
	bookings, err := svc.Bookings.ListForCarerInWindow(ctx, carerID, dayStart, dayEnd, nil, false)
	if err != nil {
		return nil, err
	}

	if svc.Cache != nil {
		if data, err := json.Marshal(bookings); err == nil {
			if err := svc.Cache.Set(ctx, key, data, dayScheduleTTL).Err(); err != nil {
				logger.Debug("failed to cache day schedule", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return bookings, nil
}
