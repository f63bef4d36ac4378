package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed       = "method_not_allowed"
	codeNotFound               = "not_found"
	codeInvalidRequestBody     = "invalid_request_body"
	codeMissingRequiredField   = "missing_required_field"
	codeInvalidID              = "invalid_id"
	codeInvalidQuantity        = "invalid_quantity"
	codeInvalidCapacity        = "invalid_capacity"
	codeInvalidRating          = "invalid_rating"
	codeInvalidOpeningHours    = "invalid_opening_hours"
	codeInvalidEmail           = "invalid_email"
	codeRestaurantNameRequired = "restaurant_name_required"
	codeCustomerNameRequired   = "customer_name_required"
	codeRestaurantNotFound     = "restaurant_not_found"
	codeCustomerNotFound       = "customer_not_found"
	codeOrderNotFound          = "order_not_found"
	codeOrderAlreadyCancelled  = "order_already_cancelled"
	codeOrderNotOwned          = "order_not_owned"
	codeInsufficientBags       = "insufficient_bags"
	codeCapacityExceeded       = "capacity_exceeded"
	codeEmailAlreadyRegistered = "email_already_registered"
	codeForbidden              = "forbidden"
	codeInternalError          = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
