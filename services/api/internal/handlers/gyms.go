package handlers

import (
	"net/http"

	"github.com/diagnosis/gympass/pkg/geo"
	"github.com/diagnosis/gympass/services/api/internal/domain"
)

// CreateGym registers a gym (admin only)
func (h *Handlers) CreateGym(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGymRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	gym, err := h.gymService.CreateGym(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"gym": gym})
}

func (h *Handlers) SearchGyms(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "page must be a number", "INVALID_INPUT")
		return
	}

	gyms, err := h.gymService.SearchGyms(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"gyms": gyms})
}

func (h *Handlers) NearbyGyms(w http.ResponseWriter, r *http.Request) {
	lat, okLat := parseFloatParam(r, "latitude")
	lon, okLon := parseFloatParam(r, "longitude")
	if !okLat || !okLon {
		writeError(w, http.StatusBadRequest, "latitude and longitude are required numbers", "INVALID_INPUT")
		return
	}

	gyms, err := h.gymService.FetchNearbyGyms(r.Context(), geo.Coordinate{Latitude: lat, Longitude: lon})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"gyms": gyms})
}
