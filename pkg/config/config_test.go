package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "ACCESS_TOKEN_TTL", "BCRYPT_COST", "CHECKIN_MAX_DISTANCE_KM", "CORS_ALLOWED_ORIGINS", "TRUST_PROXY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "3333", cfg.Server.Port)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 6, cfg.Auth.BcryptCost)
	assert.Equal(t, 10.0, cfg.CheckIn.MaxDistanceKm)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Server.TrustProxy)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_DRIVER", StorageDriverMemory)
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("CHECKIN_MAX_DISTANCE_KM", "0.1")
	t.Setenv("SECURE_COOKIES", "false")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 0.1, cfg.CheckIn.MaxDistanceKm)
	assert.False(t, cfg.Auth.SecureCookies)
	assert.True(t, cfg.Server.TrustProxy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("REFRESH_TOKEN_TTL", "a week")
	t.Setenv("DB_AUTO_MIGRATE", "maybe")

	cfg := Load()

	assert.Equal(t, 6, cfg.Auth.BcryptCost)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.False(t, cfg.Database.AutoMigrate)
}
