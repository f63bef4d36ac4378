package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cimillas/surplus-market/internal/app"
	"github.com/cimillas/surplus-market/internal/domain"
)

// CapacityReleaser is the minimal interface needed to release restaurant capacity.
type CapacityReleaser interface {
	ReleaseCapacity(ctx context.Context, in app.ReleaseCapacityInput) (app.ReleaseCapacityResult, error)
}

// HandleReleaseCapacity returns an HTTP handler for restaurant capacity releases.
func HandleReleaseCapacity(svc CapacityReleaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		restaurantID, ok := parseReleaseCapacityPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req releaseCapacityRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, domain.ErrInvalidQuantity.Error())
			return
		}

		res, err := svc.ReleaseCapacity(r.Context(), app.ReleaseCapacityInput{
			RestaurantID: restaurantID,
			Quantity:     req.Quantity,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidQuantity:
				writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
			case domain.ErrInvalidID, domain.ErrRestaurantNotFound:
				writeError(w, http.StatusNotFound, codeRestaurantNotFound, domain.ErrRestaurantNotFound.Error())
			case domain.ErrCapacityExceeded:
				writeError(w, http.StatusConflict, codeCapacityExceeded, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := releaseCapacityResponse{
			Message:       "capacity release processed",
			RemainingBags: res.RemainingBags,
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func parseReleaseCapacityPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "restaurants" || parts[2] != "release" {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type releaseCapacityRequest struct {
	Quantity int `json:"quantity"`
}

type releaseCapacityResponse struct {
	Message       string `json:"message"`
	RemainingBags int    `json:"remaining_bags"`
}
