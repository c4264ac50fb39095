package repository

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/gympass/pkg/geo"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Lookups return (nil, nil) when nothing matches.

type UsersRepository interface {
	Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type GymsRepository interface {
	Create(ctx context.Context, params domain.CreateGymParams) (*domain.Gym, error)
	FindByID(ctx context.Context, id string) (*domain.Gym, error)
	SearchMany(ctx context.Context, query string, page int) ([]domain.Gym, error)
	FindManyNearby(ctx context.Context, at geo.Coordinate) ([]domain.Gym, error)
}

type CheckInsRepository interface {
	Create(ctx context.Context, params domain.CreateCheckInParams) (*domain.CheckIn, error)
	Save(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error)
	FindByID(ctx context.Context, id string) (*domain.CheckIn, error)
	FindByUserIDOnDate(ctx context.Context, userID string, date time.Time) (*domain.CheckIn, error)
	FindManyByUserID(ctx context.Context, userID string, page int) ([]domain.CheckIn, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
}

const queryTimeout = 3 * time.Second

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// validID filters out strings postgres would reject as a uuid, so they read as "not found".
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
