package handlers

import (
	"net/http"

	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/diagnosis/gympass/services/api/internal/service"
)

// Register handles user registration
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.authService.Register(r.Context(), &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Authenticate exchanges credentials for an access token and sets the refresh cookie.
func (h *Handlers) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req domain.AuthenticateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Authenticate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tokens, err := h.authService.IssueTokens(user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.setRefreshCookie(w, tokens)
	writeJSON(w, http.StatusOK, map[string]string{"token": tokens.AccessToken})
}

// RefreshToken rotates the refresh cookie and returns a fresh access token.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "Missing refresh token", "UNAUTHORIZED")
		return
	}

	tokens, err := h.authService.RefreshTokens(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token", "INVALID_TOKEN")
		return
	}

	h.setRefreshCookie(w, tokens)
	writeJSON(w, http.StatusOK, map[string]string{"token": tokens.AccessToken})
}

// Profile returns the authenticated user without the password hash.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserProfile(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user.ToProfile()})
}

func (h *Handlers) setRefreshCookie(w http.ResponseWriter, tokens *service.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    tokens.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.config.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.config.Auth.RefreshTokenTTL.Seconds()),
	})
}
