package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr string
	}{
		{"valid", RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "password"}, ""},
		{"missing name", RegisterRequest{Email: "john@example.com", Password: "password"}, "name"},
		{"bad email", RegisterRequest{Name: "John", Email: "not-an-email", Password: "password"}, "email"},
		{"no tld", RegisterRequest{Name: "John", Email: "john@localhost", Password: "password"}, "email"},
		{"short password", RegisterRequest{Name: "John", Email: "john@example.com", Password: "12345"}, "password"},
		{"72 byte password", RegisterRequest{Name: "John", Email: "john@example.com", Password: strings.Repeat("a", 72)}, ""},
		{"password over bcrypt limit", RegisterRequest{Name: "John", Email: "john@example.com", Password: strings.Repeat("a", 80)}, "password"},
		{"multibyte password over bcrypt limit", RegisterRequest{Name: "John", Email: "john@example.com", Password: strings.Repeat("é", 40)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantErr, vErr.Field)
		})
	}
}

func TestAuthenticateRequestValidate(t *testing.T) {
	ok := AuthenticateRequest{Email: "john@example.com", Password: "123456"}
	assert.NoError(t, ok.Validate())

	long := AuthenticateRequest{Email: "john@example.com", Password: strings.Repeat("a", 80)}
	var vErr *ValidationError
	require.True(t, errors.As(long.Validate(), &vErr))
	assert.Equal(t, "password", vErr.Field)
}

func TestRegisterRequestNormalize(t *testing.T) {
	req := RegisterRequest{Name: "  John ", Email: " John@Example.COM "}
	req.Normalize()
	assert.Equal(t, "John", req.Name)
	assert.Equal(t, "john@example.com", req.Email)
}

func TestCreateGymRequestValidate(t *testing.T) {
	blank := "   "
	req := CreateGymRequest{Title: " Powerlifter Gym ", Description: &blank, Latitude: -23.63, Longitude: -46.78}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "Powerlifter Gym", req.Title)
	assert.Nil(t, req.Description)

	req.Latitude = 91
	var vErr *ValidationError
	require.True(t, errors.As(req.Validate(), &vErr))
	assert.Equal(t, "latitude", vErr.Field)

	req.Latitude = 0
	req.Longitude = -181
	require.True(t, errors.As(req.Validate(), &vErr))
	assert.Equal(t, "longitude", vErr.Field)
}

func TestCheckInValidationWindowBoundary(t *testing.T) {
	created := time.Date(2023, time.January, 1, 13, 40, 0, 0, time.UTC)
	c := CheckIn{CreatedAt: created}

	assert.True(t, c.CanBeValidatedAt(created.Add(19*time.Minute)))
	assert.True(t, c.CanBeValidatedAt(created.Add(20*time.Minute)))
	assert.False(t, c.CanBeValidatedAt(created.Add(20*time.Minute+time.Second)))
	assert.False(t, c.CanBeValidatedAt(created.Add(20*time.Minute+59*time.Second)))
	assert.False(t, c.CanBeValidatedAt(created.Add(21*time.Minute)))
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	start, end := DayBounds(time.Date(2022, time.January, 20, 23, 59, 0, 0, loc))

	assert.Equal(t, time.Date(2022, time.January, 20, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2022, time.January, 21, 0, 0, 0, 0, loc), end)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, PageOffset(0))
	assert.Equal(t, 0, PageOffset(1))
	assert.Equal(t, 20, PageOffset(2))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}
