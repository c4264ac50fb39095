package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/diagnosis/gympass/pkg/auth"
	"github.com/diagnosis/gympass/pkg/config"
	"github.com/diagnosis/gympass/pkg/logger"
	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/diagnosis/gympass/services/api/internal/service"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

const refreshCookieName = "refreshToken"

type Handlers struct {
	authService    service.AuthService
	gymService     service.GymService
	checkInService service.CheckInService
	config         *config.Config
}

func New(
	authService service.AuthService,
	gymService service.GymService,
	checkInService service.CheckInService,
	config *config.Config,
) *Handlers {
	return &Handlers{
		authService:    authService,
		gymService:     gymService,
		checkInService: checkInService,
		config:         config,
	}
}

// RequireJWT authenticates the bearer access token and stores its claims on the context.
func (h *Handlers) RequireJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header", "UNAUTHORIZED")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil || claims.Type != auth.TokenTypeAccess {
			writeError(w, http.StatusUnauthorized, "Invalid token", "INVALID_TOKEN")
			return
		}

		ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, ctxClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole must run after RequireJWT. A role mismatch answers 401 like a missing token.
func (h *Handlers) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := getClaims(r)
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED")
				return
			}
			for _, role := range roles {
				if claims.Role == string(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED")
		})
	}
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ctxClaims).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func userID(r *http.Request) string {
	if claims := getClaims(r); claims != nil {
		return claims.Subject
	}
	return ""
}

// writeServiceError maps use case failures onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error(), "INVALID_INPUT")
	case errors.Is(err, domain.ErrResourceNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, domain.ErrMaxDistanceExceeded):
		writeError(w, http.StatusBadRequest, err.Error(), "MAX_DISTANCE")
	case errors.Is(err, domain.ErrMaxNumberOfCheckIns):
		writeError(w, http.StatusConflict, err.Error(), "MAX_CHECK_INS")
	case errors.Is(err, domain.ErrLateCheckInValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "LATE_VALIDATION")
	default:
		logger.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message, code string) {
	response := map[string]string{
		"error": message,
		"code":  code,
	}
	writeJSON(w, statusCode, response)
}

// parsePage reads a 1-indexed page, defaulting to 1.
func parsePage(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("page")
	if v == "" {
		return 1, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	if n < 1 {
		n = 1
	}
	return n, true
}

func parseFloatParam(r *http.Request, name string) (float64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}
