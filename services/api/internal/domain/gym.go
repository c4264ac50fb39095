package domain

import (
	"math"
	"strings"
	"time"

	"github.com/diagnosis/gympass/pkg/geo"
)

type Gym struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Phone       *string   `json:"phone"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *Gym) Location() geo.Coordinate {
	return geo.Coordinate{Latitude: g.Latitude, Longitude: g.Longitude}
}

// CreateGymParams is what a GymsRepository needs to persist a gym.
type CreateGymParams struct {
	Title       string
	Description *string
	Phone       *string
	Latitude    float64
	Longitude   float64
}

type CreateGymRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func (r *CreateGymRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimOptional(r.Description)
	r.Phone = trimOptional(r.Phone)
}

func (r *CreateGymRequest) Validate() error {
	if r.Title == "" {
		return invalid("title", "is required")
	}
	return validateCoordinate(r.Latitude, r.Longitude)
}

func (r *CreateGymRequest) Params() CreateGymParams {
	return CreateGymParams{
		Title:       r.Title,
		Description: r.Description,
		Phone:       r.Phone,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

func validateCoordinate(lat, lon float64) error {
	c := geo.Coordinate{Latitude: lat, Longitude: lon}
	if !c.Valid() {
		if c.Latitude < -90 || c.Latitude > 90 || math.IsNaN(c.Latitude) {
			return invalid("latitude", "must be between -90 and 90")
		}
		return invalid("longitude", "must be between -180 and 180")
	}
	return nil
}

// ValidateCoordinate checks a raw coordinate pair from query parameters.
func ValidateCoordinate(c geo.Coordinate) error {
	return validateCoordinate(c.Latitude, c.Longitude)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
