package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/surplus-market/internal/app"
	"github.com/cimillas/surplus-market/internal/domain"
)

// OrderPlacer is the minimal interface needed to place purchase orders.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in app.PlaceOrderInput) (app.PlaceOrderResult, error)
}

// HandlePlaceOrder returns an HTTP handler for placing purchase orders.
func HandlePlaceOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req placeOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if code, msg, ok := req.validate(); !ok {
			writeError(w, http.StatusBadRequest, code, msg)
			return
		}

		res, err := svc.PlaceOrder(r.Context(), app.PlaceOrderInput{
			RestaurantID: req.RestaurantID,
			Quantity:     req.Quantity,
			Contact:      req.Contact,
			Location:     req.Location,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidQuantity:
				writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
			case domain.ErrContactRequired, domain.ErrLocationRequired:
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrRestaurantNotFound:
				writeError(w, http.StatusNotFound, codeRestaurantNotFound, err.Error())
			case domain.ErrInsufficientBags:
				writeError(w, http.StatusConflict, codeInsufficientBags, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := placeOrderResponse{
			Message:       "purchase successful",
			OrderID:       res.Order.ID,
			RemainingBags: res.RemainingBags,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type placeOrderRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Quantity     int    `json:"quantity"`
	Contact      string `json:"contact"`
	Location     string `json:"location"`
}

func (r placeOrderRequest) validate() (code, msg string, ok bool) {
	if r.RestaurantID == "" {
		return codeMissingRequiredField, "restaurant_id is required", false
	}
	if r.Contact == "" {
		return codeMissingRequiredField, "contact is required", false
	}
	if r.Location == "" {
		return codeMissingRequiredField, "location is required", false
	}
	if r.Quantity <= 0 {
		return codeInvalidQuantity, domain.ErrInvalidQuantity.Error(), false
	}
	return "", "", true
}

type placeOrderResponse struct {
	Message       string `json:"message"`
	OrderID       string `json:"order_id"`
	RemainingBags int    `json:"remaining_bags"`
}
