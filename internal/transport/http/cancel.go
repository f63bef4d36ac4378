package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cimillas/surplus-market/internal/app"
	"github.com/cimillas/surplus-market/internal/domain"
)

// OrderCanceller is the minimal interface needed to cancel purchase orders.
type OrderCanceller interface {
	CancelOrder(ctx context.Context, in app.CancelOrderInput) (app.CancelOrderResult, error)
}

// HandleCancelOrder returns an HTTP handler for customer cancellations.
func HandleCancelOrder(svc OrderCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orderID, ok := parseCancelOrderPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req cancelOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Contact == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "contact is required")
			return
		}

		res, err := svc.CancelOrder(r.Context(), app.CancelOrderInput{
			OrderID: orderID,
			Contact: req.Contact,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidID, domain.ErrOrderNotFound:
				writeError(w, http.StatusNotFound, codeOrderNotFound, domain.ErrOrderNotFound.Error())
			case domain.ErrOrderAlreadyCancelled:
				writeError(w, http.StatusConflict, codeOrderAlreadyCancelled, err.Error())
			case domain.ErrOrderNotOwned:
				writeError(w, http.StatusForbidden, codeOrderNotOwned, err.Error())
			case domain.ErrContactRequired:
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
			case domain.ErrRestaurantNotFound:
				writeError(w, http.StatusNotFound, codeRestaurantNotFound, err.Error())
			case domain.ErrCapacityExceeded:
				writeError(w, http.StatusConflict, codeCapacityExceeded, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := cancelOrderResponse{
			Message:       "cancellation processed",
			RemainingBags: res.RemainingBags,
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func parseCancelOrderPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "orders" || parts[2] != "cancel" {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type cancelOrderRequest struct {
	Contact string `json:"contact"`
}

type cancelOrderResponse struct {
	Message       string `json:"message"`
	RemainingBags int    `json:"remaining_bags"`
}
