package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/google/uuid"
)

type CheckInsRepository struct {
	mu    sync.RWMutex
	items []domain.CheckIn
}

func NewCheckInsRepository() *CheckInsRepository {
	return &CheckInsRepository{}
}

func (r *CheckInsRepository) Create(_ context.Context, params domain.CreateCheckInParams) (*domain.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	c := domain.CheckIn{
		ID:          uuid.NewString(),
		GymID:       params.GymID,
		UserID:      params.UserID,
		CreatedAt:   createdAt,
		ValidatedAt: params.ValidatedAt,
	}
	r.items = append(r.items, c)
	return &c, nil
}

func (r *CheckInsRepository) Save(_ context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == checkIn.ID {
			r.items[i] = *checkIn
			saved := r.items[i]
			return &saved, nil
		}
	}
	r.items = append(r.items, *checkIn)
	saved := *checkIn
	return &saved, nil
}

func (r *CheckInsRepository) FindByID(_ context.Context, id string) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

// FindByUserIDOnDate returns the user's first check-in within date's calendar day, in date's location.
func (r *CheckInsRepository) FindByUserIDOnDate(_ context.Context, userID string, date time.Time) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start, end := domain.DayBounds(date)
	for _, c := range r.items {
		if c.UserID != userID {
			continue
		}
		if !c.CreatedAt.Before(start) && c.CreatedAt.Before(end) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CheckInsRepository) FindManyByUserID(_ context.Context, userID string, page int) ([]domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]domain.CheckIn, 0)
	for _, c := range r.items {
		if c.UserID == userID {
			owned = append(owned, c)
		}
	}
	return paginate(owned, page), nil
}

func (r *CheckInsRepository) CountByUserID(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, c := range r.items {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}
