package service

import (
	"context"
	"fmt"

	"github.com/diagnosis/gympass/pkg/events"
	"github.com/diagnosis/gympass/pkg/geo"
	"github.com/diagnosis/gympass/pkg/logger"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/diagnosis/gympass/services/api/internal/observability"
	"github.com/diagnosis/gympass/services/api/internal/repository"
)

type CheckInService interface {
	CheckIn(ctx context.Context, input domain.CheckInInput) (*domain.CheckIn, error)
	ValidateCheckIn(ctx context.Context, checkInID string) (*domain.CheckIn, error)
	FetchUserCheckInsHistory(ctx context.Context, userID string, page int) ([]domain.CheckIn, error)
	GetUserMetrics(ctx context.Context, userID string) (int, error)
}

type checkInService struct {
	checkIns      repository.CheckInsRepository
	gyms          repository.GymsRepository
	users         repository.UsersRepository
	bus           events.Publisher
	clock         Clock
	maxDistanceKm float64
}

type CheckInOption func(*checkInService)

// WithMaxDistance overrides the check-in radius in kilometers. Non-positive values are ignored.
func WithMaxDistance(km float64) CheckInOption {
	return func(s *checkInService) {
		if km > 0 {
			s.maxDistanceKm = km
		}
	}
}

// WithUsers lets validation events carry the member's name and email for notifications.
func WithUsers(users repository.UsersRepository) CheckInOption {
	return func(s *checkInService) {
		s.users = users
	}
}

func WithClock(clock Clock) CheckInOption {
	return func(s *checkInService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewCheckInService(
	checkIns repository.CheckInsRepository,
	gyms repository.GymsRepository,
	bus events.Publisher,
	opts ...CheckInOption,
) CheckInService {
	s := &checkInService{
		checkIns:      checkIns,
		gyms:          gyms,
		bus:           bus,
		clock:         SystemClock{},
		maxDistanceKm: domain.MaxCheckInDistanceKm,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *checkInService) CheckIn(ctx context.Context, input domain.CheckInInput) (*domain.CheckIn, error) {
	userID, gymID, at := input.UserID, input.GymID, input.UserLocation()
	if err := domain.ValidateCoordinate(at); err != nil {
		return nil, err
	}

	gym, err := s.gyms.FindByID(ctx, gymID)
	if err != nil {
		observability.RecordCheckIn(observability.OutcomeInternalError)
		return nil, fmt.Errorf("failed to find gym: %w", err)
	}
	if gym == nil {
		observability.RecordCheckIn(observability.OutcomeNotFound)
		return nil, domain.ErrResourceNotFound
	}

	distance := geo.Distance(at, gym.Location())
	if distance > s.maxDistanceKm {
		observability.RecordCheckIn(observability.OutcomeTooFar)
		logger.DebugContext(ctx, "Check-in rejected by distance", "gym_id", gymID, "distance_km", distance)
		return nil, domain.ErrMaxDistanceExceeded
	}

	now := s.clock.Now()

	// Two concurrent requests can both pass this lookup; the second write is not rejected by storage.
	sameDay, err := s.checkIns.FindByUserIDOnDate(ctx, userID, now)
	if err != nil {
		observability.RecordCheckIn(observability.OutcomeInternalError)
		return nil, fmt.Errorf("failed to look up today's check-in: %w", err)
	}
	if sameDay != nil {
		observability.RecordCheckIn(observability.OutcomeAlreadyToday)
		return nil, domain.ErrMaxNumberOfCheckIns
	}

	checkIn, err := s.checkIns.Create(ctx, domain.CreateCheckInParams{
		GymID:     gymID,
		UserID:    userID,
		CreatedAt: now,
	})
	if err != nil {
		observability.RecordCheckIn(observability.OutcomeInternalError)
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	observability.RecordCheckIn(observability.OutcomeSuccess)
	logger.InfoContext(ctx, "Check-in created", "check_in_id", checkIn.ID, "gym_id", gymID)

	event := events.CheckInCreatedEvent{
		CheckInID: checkIn.ID,
		UserID:    checkIn.UserID,
		GymID:     checkIn.GymID,
		CreatedAt: checkIn.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.CheckInCreated, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish check-in created event", "error", err, "check_in_id", checkIn.ID)
	}

	return checkIn, nil
}

// ValidateCheckIn stamps validated_at. Validating again inside the window overwrites the timestamp.
func (s *checkInService) ValidateCheckIn(ctx context.Context, checkInID string) (*domain.CheckIn, error) {
	checkIn, err := s.checkIns.FindByID(ctx, checkInID)
	if err != nil {
		observability.RecordValidation(observability.OutcomeInternalError)
		return nil, fmt.Errorf("failed to find check-in: %w", err)
	}
	if checkIn == nil {
		observability.RecordValidation(observability.OutcomeNotFound)
		return nil, domain.ErrResourceNotFound
	}

	now := s.clock.Now()
	if !checkIn.CanBeValidatedAt(now) {
		observability.RecordValidation(observability.OutcomeLate)
		return nil, domain.ErrLateCheckInValidation
	}

	checkIn.ValidatedAt = &now
	saved, err := s.checkIns.Save(ctx, checkIn)
	if err != nil {
		observability.RecordValidation(observability.OutcomeInternalError)
		return nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	observability.RecordValidation(observability.OutcomeSuccess)
	logger.InfoContext(ctx, "Check-in validated", "check_in_id", saved.ID)

	event := events.CheckInValidatedEvent{
		CheckInID:   saved.ID,
		UserID:      saved.UserID,
		GymID:       saved.GymID,
		ValidatedAt: now,
	}
	if s.users != nil {
		if user, err := s.users.FindByID(ctx, saved.UserID); err == nil && user != nil {
			event.UserName = user.Name
			event.UserEmail = user.Email
		}
	}
	if err := s.bus.Publish(ctx, events.CheckInValidated, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish check-in validated event", "error", err, "check_in_id", saved.ID)
	}

	return saved, nil
}

func (s *checkInService) FetchUserCheckInsHistory(ctx context.Context, userID string, page int) ([]domain.CheckIn, error) {
	if page < 1 {
		page = 1
	}

	checkIns, err := s.checkIns.FindManyByUserID(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-in history: %w", err)
	}
	return checkIns, nil
}

func (s *checkInService) GetUserMetrics(ctx context.Context, userID string) (int, error) {
	count, err := s.checkIns.CountByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return count, nil
}
