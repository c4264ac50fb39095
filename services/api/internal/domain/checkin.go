package domain

import (
	"time"

	"github.com/diagnosis/gympass/pkg/geo"
)

// Business Rules
const (
	MaxCheckInDistanceKm    = 10.0
	NearbyRadiusKm          = 10.0
	CheckInValidationWindow = 20 * time.Minute
	PageSize                = 20
)

type CheckIn struct {
	ID          string     `json:"id"`
	GymID       string     `json:"gym_id"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	ValidatedAt *time.Time `json:"validated_at"`
}

// IsValidated reports whether the check-in went through validation.
func (c *CheckIn) IsValidated() bool {
	return c.ValidatedAt != nil
}

// CanBeValidatedAt reports whether now is still inside the validation window.
// A check-in is validatable up to and including exactly CheckInValidationWindow after creation.
func (c *CheckIn) CanBeValidatedAt(now time.Time) bool {
	return now.Sub(c.CreatedAt) <= CheckInValidationWindow
}

// CreateCheckInParams is what a CheckInsRepository needs to persist a check-in.
type CreateCheckInParams struct {
	GymID       string
	UserID      string
	CreatedAt   time.Time
	ValidatedAt *time.Time
}

// CheckInInput is a member's check-in attempt at a gym from where they stand.
type CheckInInput struct {
	GymID         string
	UserID        string
	UserLatitude  float64
	UserLongitude float64
}

func (in CheckInInput) UserLocation() geo.Coordinate {
	return geo.Coordinate{Latitude: in.UserLatitude, Longitude: in.UserLongitude}
}

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	return validateCoordinate(r.Latitude, r.Longitude)
}

// DayBounds returns the start of t's calendar day in t's location and the start of the following day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// PageOffset converts a 1-indexed page into a row offset, treating pages below 1 as the first page.
func PageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}
