package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cimillas/surplus-market/internal/app"
	"github.com/cimillas/surplus-market/internal/domain"
)

func TestHandleAdminRestaurants(t *testing.T) {
	t.Parallel()

	restaurant := domain.Restaurant{
		ID:            "rst-1",
		Name:          "Pizza Palace",
		Locations:     []string{"CAIRO"},
		NumOfBags:     10,
		RemainingBags: 10,
		OverallRating: 4.2,
		OpensAt:       "09:00",
		ClosesAt:      "22:30",
	}

	tests := []struct {
		name           string
		method         string
		body           string
		created        domain.Restaurant
		listed         []domain.Restaurant
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "created",
			method:         http.MethodPost,
			body:           `{"name":"Pizza Palace","locations":["CAIRO"],"num_of_bags":10,"overall_rating":4.2,"opens_at":"09:00","closes_at":"22:30"}`,
			created:        restaurant,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"remaining_bags":10`,
		},
		{
			name:           "listed",
			method:         http.MethodGet,
			listed:         []domain.Restaurant{restaurant},
			expectedStatus: http.StatusOK,
			expectedSubstr: `"name":"Pizza Palace"`,
		},
		{
			name:           "empty list yields empty array",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedSubstr: `[]`,
		},
		{
			name:           "method not allowed",
			method:         http.MethodDelete,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "invalid body",
			method:         http.MethodPost,
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			method:         http.MethodPost,
			body:           `{"num_of_bags":10}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "restaurant_name_required",
		},
		{
			name:           "zero capacity",
			method:         http.MethodPost,
			body:           `{"name":"Pizza Palace","num_of_bags":0}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_capacity",
		},
		{
			name:           "invalid rating",
			method:         http.MethodPost,
			body:           `{"name":"Pizza Palace","num_of_bags":10,"overall_rating":6}`,
			serviceErr:     domain.ErrInvalidRating,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_rating",
		},
		{
			name:           "invalid opening hours",
			method:         http.MethodPost,
			body:           `{"name":"Pizza Palace","num_of_bags":10,"opens_at":"9am"}`,
			serviceErr:     domain.ErrInvalidOpeningHours,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_opening_hours",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubAdminService{
				restaurant: tt.created,
				listed:     tt.listed,
				err:        tt.serviceErr,
			}

			req := httptest.NewRequest(tt.method, "/admin/restaurants", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleAdminRestaurants(svc).ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				body := rec.Body.String()
				if !strings.Contains(body, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, body)
				}
			}
		})
	}
}

func TestHandleAdminCustomers(t *testing.T) {
	t.Parallel()

	customer := domain.Customer{
		ID:           "cst-1",
		Name:         "Amina",
		Email:        "amina@example.com",
		MobileNumber: "+20100000001",
	}

	tests := []struct {
		name           string
		method         string
		body           string
		created        domain.Customer
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "created",
			method:         http.MethodPost,
			body:           `{"name":"Amina","email":"amina@example.com","mobile_number":"+20100000001"}`,
			created:        customer,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"email":"amina@example.com"`,
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "missing name",
			method:         http.MethodPost,
			body:           `{"email":"amina@example.com"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "customer_name_required",
		},
		{
			name:           "missing email",
			method:         http.MethodPost,
			body:           `{"name":"Amina"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "email is required",
		},
		{
			name:           "malformed email",
			method:         http.MethodPost,
			body:           `{"name":"Amina","email":"nope"}`,
			serviceErr:     domain.ErrInvalidEmail,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_email",
		},
		{
			name:           "duplicate email",
			method:         http.MethodPost,
			body:           `{"name":"Amina","email":"amina@example.com"}`,
			serviceErr:     domain.ErrEmailAlreadyRegistered,
			expectedStatus: http.StatusConflict,
			expectedSubstr: "email_already_registered",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubAdminService{
				customer: tt.created,
				err:      tt.serviceErr,
			}

			req := httptest.NewRequest(tt.method, "/admin/customers", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleAdminCustomers(svc).ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				body := rec.Body.String()
				if !strings.Contains(body, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, body)
				}
			}
		})
	}
}

type stubAdminService struct {
	restaurant domain.Restaurant
	listed     []domain.Restaurant
	customer   domain.Customer
	err        error
}

func (s *stubAdminService) CreateRestaurant(_ context.Context, _ app.CreateRestaurantInput) (domain.Restaurant, error) {
	return s.restaurant, s.err
}

func (s *stubAdminService) ListRestaurants(_ context.Context) ([]domain.Restaurant, error) {
	return s.listed, s.err
}

func (s *stubAdminService) CreateCustomer(_ context.Context, _ app.CreateCustomerInput) (domain.Customer, error) {
	return s.customer, s.err
}
