package inmemory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/diagnosis/gympass/pkg/geo"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

type GymsRepository struct {
	mu    sync.RWMutex
	items []domain.Gym
}

func NewGymsRepository() *GymsRepository {
	return &GymsRepository{}
}

func (r *GymsRepository) Create(_ context.Context, params domain.CreateGymParams) (*domain.Gym, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := domain.Gym{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		Phone:       params.Phone,
		Latitude:    params.Latitude,
		Longitude:   params.Longitude,
		CreatedAt:   time.Now(),
	}
	r.items = append(r.items, g)
	return &g, nil
}

func (r *GymsRepository) FindByID(_ context.Context, id string) (*domain.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.items {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

// SearchMany matches titles containing query, ignoring case, in insertion order.
func (r *GymsRepository) SearchMany(_ context.Context, query string, page int) ([]domain.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fold := cases.Fold()
	needle := fold.String(query)

	matches := make([]domain.Gym, 0)
	for _, g := range r.items {
		if strings.Contains(fold.String(g.Title), needle) {
			matches = append(matches, g)
		}
	}
	return paginate(matches, page), nil
}

func (r *GymsRepository) FindManyNearby(_ context.Context, at geo.Coordinate) ([]domain.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nearby := make([]domain.Gym, 0)
	for _, g := range r.items {
		if geo.Distance(at, g.Location()) <= domain.NearbyRadiusKm {
			nearby = append(nearby, g)
		}
	}
	return nearby, nil
}

func paginate[T any](items []T, page int) []T {
	offset := domain.PageOffset(page)
	if offset >= len(items) {
		return make([]T, 0)
	}
	end := min(offset+domain.PageSize, len(items))
	return items[offset:end]
}
