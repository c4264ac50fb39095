package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/diagnosis/gympass/pkg/geo"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type gymRepository struct {
	pool *pgxpool.Pool
}

func NewGymRepository(pool *pgxpool.Pool) GymsRepository {
	return &gymRepository{pool: pool}
}

const gymCols = `id::text, title, description, phone, latitude::float8, longitude::float8, created_at`

func scanGym(row pgx.Row) (*domain.Gym, error) {
	var g domain.Gym
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Phone, &g.Latitude, &g.Longitude, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func collectGyms(rows pgx.Rows) ([]domain.Gym, error) {
	defer rows.Close()

	gyms := make([]domain.Gym, 0)
	for rows.Next() {
		g, err := scanGym(rows)
		if err != nil {
			return nil, err
		}
		gyms = append(gyms, *g)
	}
	return gyms, rows.Err()
}

func (r *gymRepository) Create(ctx context.Context, params domain.CreateGymParams) (*domain.Gym, error) {
	const q = `
		INSERT INTO gyms (title, description, phone, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + gymCols

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanGym(r.pool.QueryRow(ctx, q,
		params.Title, params.Description, params.Phone, params.Latitude, params.Longitude,
	))
}

func (r *gymRepository) FindByID(ctx context.Context, id string) (*domain.Gym, error) {
	if !validID(id) {
		return nil, nil
	}

	const q = `SELECT ` + gymCols + ` FROM gyms WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	g, err := scanGym(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *gymRepository) SearchMany(ctx context.Context, query string, page int) ([]domain.Gym, error) {
	const q = `
		SELECT ` + gymCols + `
		FROM gyms
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, likeEscaper.Replace(query), domain.PageSize, domain.PageOffset(page))
	if err != nil {
		return nil, err
	}
	return collectGyms(rows)
}

func (r *gymRepository) FindManyNearby(ctx context.Context, at geo.Coordinate) ([]domain.Gym, error) {
	// Spherical law of cosines; LEAST clamps rounding drift above 1 for identical points.
	const q = `
		SELECT ` + gymCols + `
		FROM gyms
		WHERE 6371 * acos(LEAST(1.0,
			cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude) - radians($2))
			+ sin(radians($1)) * sin(radians(latitude))
		)) <= $3
		ORDER BY created_at, id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, at.Latitude, at.Longitude, domain.NearbyRadiusKm)
	if err != nil {
		return nil, err
	}
	return collectGyms(rows)
}
