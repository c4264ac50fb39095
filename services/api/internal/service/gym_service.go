package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/diagnosis/gympass/pkg/geo"
	"github.com/diagnosis/gympass/pkg/logger"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/diagnosis/gympass/services/api/internal/repository"
)

type GymService interface {
	CreateGym(ctx context.Context, req *domain.CreateGymRequest) (*domain.Gym, error)
	SearchGyms(ctx context.Context, query string, page int) ([]domain.Gym, error)
	FetchNearbyGyms(ctx context.Context, at geo.Coordinate) ([]domain.Gym, error)
}

type gymService struct {
	gyms repository.GymsRepository
}

func NewGymService(gyms repository.GymsRepository) GymService {
	return &gymService{gyms: gyms}
}

func (s *gymService) CreateGym(ctx context.Context, req *domain.CreateGymRequest) (*domain.Gym, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	gym, err := s.gyms.Create(ctx, req.Params())
	if err != nil {
		return nil, fmt.Errorf("failed to create gym: %w", err)
	}

	logger.InfoContext(ctx, "Gym created", "gym_id", gym.ID, "title", gym.Title)
	return gym, nil
}

// SearchGyms pages through gyms whose title contains query, case-insensitively. An empty query matches every gym.
func (s *gymService) SearchGyms(ctx context.Context, query string, page int) ([]domain.Gym, error) {
	if page < 1 {
		page = 1
	}

	gyms, err := s.gyms.SearchMany(ctx, strings.TrimSpace(query), page)
	if err != nil {
		return nil, fmt.Errorf("failed to search gyms: %w", err)
	}
	return gyms, nil
}

func (s *gymService) FetchNearbyGyms(ctx context.Context, at geo.Coordinate) ([]domain.Gym, error) {
	if err := domain.ValidateCoordinate(at); err != nil {
		return nil, err
	}

	gyms, err := s.gyms.FindManyNearby(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nearby gyms: %w", err)
	}
	return gyms, nil
}
