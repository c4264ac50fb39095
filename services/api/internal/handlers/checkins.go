package handlers

import (
	"net/http"

	"github.com/diagnosis/gympass/services/api/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	checkIn, err := h.checkInService.CheckIn(r.Context(), domain.CheckInInput{
		GymID:         chi.URLParam(r, "gymId"),
		UserID:        userID(r),
		UserLatitude:  req.Latitude,
		UserLongitude: req.Longitude,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"checkIn": checkIn})
}

// ValidateCheckIn confirms a check-in (admin only)
func (h *Handlers) ValidateCheckIn(w http.ResponseWriter, r *http.Request) {
	if _, err := h.checkInService.ValidateCheckIn(r.Context(), chi.URLParam(r, "checkInId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CheckInHistory(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "page must be a number", "INVALID_INPUT")
		return
	}

	checkIns, err := h.checkInService.FetchUserCheckInsHistory(r.Context(), userID(r), page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"checkIns": checkIns})
}

func (h *Handlers) CheckInMetrics(w http.ResponseWriter, r *http.Request) {
	count, err := h.checkInService.GetUserMetrics(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"checkInsCount": count})
}
