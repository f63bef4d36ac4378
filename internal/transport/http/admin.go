package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/surplus-market/internal/app"
	"github.com/cimillas/surplus-market/internal/domain"
)

// AdminRestaurantService is the minimal interface needed for the restaurant
// catalog endpoints.
type AdminRestaurantService interface {
	CreateRestaurant(ctx context.Context, in app.CreateRestaurantInput) (domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
}

// AdminCustomerService is the minimal interface needed for customer registration.
type AdminCustomerService interface {
	CreateCustomer(ctx context.Context, in app.CreateCustomerInput) (domain.Customer, error)
}

// HandleAdminRestaurants returns an HTTP handler for restaurant creation/listing.
func HandleAdminRestaurants(svc AdminRestaurantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			restaurants, err := svc.ListRestaurants(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]restaurantResponse, 0, len(restaurants))
			for _, rst := range restaurants {
				resp = append(resp, toRestaurantResponse(rst))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createRestaurantRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, codeRestaurantNameRequired, domain.ErrRestaurantNameRequired.Error())
				return
			}
			if req.NumOfBags <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, domain.ErrInvalidCapacity.Error())
				return
			}

			rst, err := svc.CreateRestaurant(r.Context(), app.CreateRestaurantInput{
				Name:          req.Name,
				Locations:     req.Locations,
				NumOfBags:     req.NumOfBags,
				RemainingBags: req.RemainingBags,
				OverallRating: req.OverallRating,
				OpensAt:       req.OpensAt,
				ClosesAt:      req.ClosesAt,
			})
			if err != nil {
				switch err {
				case domain.ErrRestaurantNameRequired:
					writeError(w, http.StatusBadRequest, codeRestaurantNameRequired, err.Error())
				case domain.ErrInvalidCapacity:
					writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
				case domain.ErrInvalidRating:
					writeError(w, http.StatusBadRequest, codeInvalidRating, err.Error())
				case domain.ErrInvalidOpeningHours:
					writeError(w, http.StatusBadRequest, codeInvalidOpeningHours, err.Error())
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toRestaurantResponse(rst))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleAdminCustomers returns an HTTP handler for customer registration.
func HandleAdminCustomers(svc AdminCustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createCustomerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, codeCustomerNameRequired, domain.ErrCustomerNameRequired.Error())
			return
		}
		if req.Email == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "email is required")
			return
		}

		customer, err := svc.CreateCustomer(r.Context(), app.CreateCustomerInput{
			Name:         req.Name,
			Email:        req.Email,
			MobileNumber: req.MobileNumber,
		})
		if err != nil {
			switch err {
			case domain.ErrCustomerNameRequired:
				writeError(w, http.StatusBadRequest, codeCustomerNameRequired, err.Error())
			case domain.ErrInvalidEmail:
				writeError(w, http.StatusBadRequest, codeInvalidEmail, err.Error())
			case domain.ErrEmailAlreadyRegistered:
				writeError(w, http.StatusConflict, codeEmailAlreadyRegistered, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := customerResponse{
			ID:           customer.ID,
			Name:         customer.Name,
			Email:        customer.Email,
			MobileNumber: customer.MobileNumber,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createRestaurantRequest struct {
	Name          string   `json:"name"`
	Locations     []string `json:"locations"`
	NumOfBags     int      `json:"num_of_bags"`
	RemainingBags *int     `json:"remaining_bags,omitempty"`
	OverallRating float64  `json:"overall_rating"`
	OpensAt       string   `json:"opens_at,omitempty"`
	ClosesAt      string   `json:"closes_at,omitempty"`
}

type restaurantResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Locations     []string `json:"locations"`
	NumOfBags     int      `json:"num_of_bags"`
	RemainingBags int      `json:"remaining_bags"`
	OverallRating float64  `json:"overall_rating"`
	OpensAt       string   `json:"opens_at,omitempty"`
	ClosesAt      string   `json:"closes_at,omitempty"`
}

func toRestaurantResponse(rst domain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:            rst.ID,
		Name:          rst.Name,
		Locations:     rst.Locations,
		NumOfBags:     rst.NumOfBags,
		RemainingBags: rst.RemainingBags,
		OverallRating: rst.OverallRating,
		OpensAt:       rst.OpensAt,
		ClosesAt:      rst.ClosesAt,
	}
}

type createCustomerRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number,omitempty"`
}

type customerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number,omitempty"`
}
