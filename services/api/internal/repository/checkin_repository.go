package repository

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type checkInRepository struct {
	pool *pgxpool.Pool
}

func NewCheckInRepository(pool *pgxpool.Pool) CheckInsRepository {
	return &checkInRepository{pool: pool}
}

const checkInCols = `id::text, gym_id::text, user_id::text, created_at, validated_at`

func scanCheckIn(row pgx.Row) (*domain.CheckIn, error) {
	var c domain.CheckIn
	if err := row.Scan(&c.ID, &c.GymID, &c.UserID, &c.CreatedAt, &c.ValidatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *checkInRepository) Create(ctx context.Context, params domain.CreateCheckInParams) (*domain.CheckIn, error) {
	const q = `
		INSERT INTO check_ins (gym_id, user_id, created_at, validated_at)
		VALUES ($1, $2, COALESCE($3, now()), $4)
		RETURNING ` + checkInCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var createdAt *time.Time
	if !params.CreatedAt.IsZero() {
		createdAt = &params.CreatedAt
	}

	return scanCheckIn(r.pool.QueryRow(ctx, q, params.GymID, params.UserID, createdAt, params.ValidatedAt))
}

// Save upserts the full record by id.
func (r *checkInRepository) Save(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	const q = `
		INSERT INTO check_ins (id, gym_id, user_id, created_at, validated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			gym_id       = EXCLUDED.gym_id,
			user_id      = EXCLUDED.user_id,
			created_at   = EXCLUDED.created_at,
			validated_at = EXCLUDED.validated_at
		RETURNING ` + checkInCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanCheckIn(r.pool.QueryRow(ctx, q,
		checkIn.ID, checkIn.GymID, checkIn.UserID, checkIn.CreatedAt, checkIn.ValidatedAt,
	))
}

func (r *checkInRepository) FindByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	if !validID(id) {
		return nil, nil
	}

	const q = `SELECT ` + checkInCols + ` FROM check_ins WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	c, err := scanCheckIn(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *checkInRepository) FindByUserIDOnDate(ctx context.Context, userID string, date time.Time) (*domain.CheckIn, error) {
	if !validID(userID) {
		return nil, nil
	}

	const q = `
		SELECT ` + checkInCols + `
		FROM check_ins
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at
		LIMIT 1`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start, end := domain.DayBounds(date)
	c, err := scanCheckIn(r.pool.QueryRow(ctx, q, userID, start, end))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *checkInRepository) FindManyByUserID(ctx context.Context, userID string, page int) ([]domain.CheckIn, error) {
	checkIns := make([]domain.CheckIn, 0)
	if !validID(userID) {
		return checkIns, nil
	}

	const q = `
		SELECT ` + checkInCols + `
		FROM check_ins
		WHERE user_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID, domain.PageSize, domain.PageOffset(page))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, *c)
	}
	return checkIns, rows.Err()
}

func (r *checkInRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	if !validID(userID) {
		return 0, nil
	}

	const q = `SELECT count(*) FROM check_ins WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
