package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diagnosis/gympass/pkg/auth"
	"github.com/diagnosis/gympass/pkg/config"
	"github.com/diagnosis/gympass/pkg/events"
	"github.com/diagnosis/gympass/pkg/logger"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/diagnosis/gympass/services/api/internal/observability"
	"github.com/diagnosis/gympass/services/api/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, req *domain.AuthenticateRequest) (*domain.User, error)
	GetUserProfile(ctx context.Context, userID string) (*domain.User, error)
	IssueTokens(user *domain.User) (*TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type authService struct {
	users  repository.UsersRepository
	hasher auth.PasswordHasher
	bus    events.Publisher
	config config.AuthConfig
}

func NewAuthService(
	users repository.UsersRepository,
	hasher auth.PasswordHasher,
	bus events.Publisher,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		bus:    bus,
		config: cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	observability.RecordRegistration()
	logger.InfoContext(ctx, "User registered", "user_id", user.ID)

	event := events.UserRegisteredEvent{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.UserRegistered, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish user registered event", "error", err, "user_id", user.ID)
	}

	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, req *domain.AuthenticateRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		observability.RecordAuthentication(observability.OutcomeInternalError)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		observability.RecordAuthentication(observability.OutcomeInvalid)
		return nil, domain.ErrInvalidCredentials
	}

	valid, err := s.hasher.Compare(req.Password, user.PasswordHash)
	if err != nil {
		observability.RecordAuthentication(observability.OutcomeInternalError)
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		observability.RecordAuthentication(observability.OutcomeInvalid)
		return nil, domain.ErrInvalidCredentials
	}

	observability.RecordAuthentication(observability.OutcomeSuccess)
	return user, nil
}

func (s *authService) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrResourceNotFound
	}
	return user, nil
}

func (s *authService) IssueTokens(user *domain.User) (*TokenPair, error) {
	return s.issue(user.ID, string(user.Role))
}

// RefreshTokens exchanges a valid refresh token for a new pair, keeping the role it was issued with.
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := auth.Parse(refreshToken, s.config.JWTSecret)
	if err != nil || claims.Type != auth.TokenTypeRefresh || claims.Subject == "" {
		logger.DebugContext(ctx, "Rejected refresh token", "error", err)
		return nil, auth.ErrInvalidToken
	}
	return s.issue(claims.Subject, claims.Role)
}

func (s *authService) issue(sub, role string) (*TokenPair, error) {
	access, err := auth.NewAccessToken(sub, role, s.config.JWTSecret, ttlOr(s.config.AccessTokenTTL, 10*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := auth.NewRefreshToken(sub, role, s.config.JWTSecret, ttlOr(s.config.RefreshTokenTTL, 7*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func ttlOr(configured, fallback time.Duration) time.Duration {
	if configured <= 0 {
		return fallback
	}
	return configured
}
