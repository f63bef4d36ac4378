package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/surplus-market/internal/app"
	"github.com/cimillas/surplus-market/internal/domain"
)

// Inquirer is the minimal interface needed to serve customer inquiries.
type Inquirer interface {
	Inquire(ctx context.Context, in app.InquiryInput) ([]app.RestaurantSummary, error)
}

// HandleInquiry returns an HTTP handler for customer inquiries.
func HandleInquiry(svc Inquirer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req inquiryRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Email == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "email is required")
			return
		}
		if req.Location == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "location is required")
			return
		}
		if req.Strategy == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "selection_strategy is required")
			return
		}

		matches, err := svc.Inquire(r.Context(), app.InquiryInput{
			Email:    req.Email,
			Location: req.Location,
			Strategy: req.Strategy,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidEmail:
				writeError(w, http.StatusBadRequest, codeInvalidEmail, err.Error())
			case domain.ErrLocationRequired:
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
			case domain.ErrCustomerNotFound:
				writeError(w, http.StatusNotFound, codeCustomerNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := make([]inquiryMatch, 0, len(matches))
		for _, match := range matches {
			resp = append(resp, inquiryMatch{
				Name:          match.Name,
				RemainingBags: match.RemainingBags,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type inquiryRequest struct {
	Email    string `json:"email"`
	Location string `json:"location"`
	Strategy string `json:"selection_strategy"`
}

type inquiryMatch struct {
	Name          string `json:"name"`
	RemainingBags int    `json:"remaining_bags"`
}
