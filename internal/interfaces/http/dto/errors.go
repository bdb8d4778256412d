package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown     = "ERR_UNKNOWN"
	ErrCodeInternal    = "ERR_INTERNAL"
	ErrCodeUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Input error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeInvalidQuantity = "ERR_INVALID_QUANTITY"
	ErrCodeInvalidPrice    = "ERR_INVALID_PRICE_BAND"
	ErrCodeInvalidSort     = "ERR_INVALID_SORT"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Session error codes
const (
	// ErrCodeSessionInvalid is used when the session token is missing,
	// malformed, expired or refers to a discarded session
	ErrCodeSessionInvalid = "ERR_SESSION_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Cart and checkout error codes
const (
	ErrCodeEmptyCart          = "ERR_EMPTY_CART"
	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeCheckoutInProgress = "ERR_CHECKOUT_IN_PROGRESS"
	ErrCodeUnknownRegion      = "ERR_UNKNOWN_REGION"
	ErrCodePickupUnavailable  = "ERR_PICKUP_UNAVAILABLE"
	ErrCodeOfficeNotInRegion  = "ERR_OFFICE_NOT_IN_REGION"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:     http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeUnavailable: http.StatusServiceUnavailable,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeInvalidQuantity: http.StatusBadRequest,
	ErrCodeInvalidPrice:    http.StatusBadRequest,
	ErrCodeInvalidSort:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeSessionInvalid: http.StatusUnauthorized,
	ErrCodeNotFound:       http.StatusNotFound,

	// The form cannot be submitted as it stands -> 400
	ErrCodeEmptyCart:         http.StatusBadRequest,
	ErrCodeUnknownRegion:     http.StatusBadRequest,
	ErrCodePickupUnavailable: http.StatusBadRequest,
	ErrCodeOfficeNotInRegion: http.StatusBadRequest,

	// Not allowed in the current checkout state -> 422
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeCheckoutInProgress: http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps the codes domain errors carry to API codes
var domainErrorCodes = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"EMPTY_CART":           ErrCodeEmptyCart,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CHECKOUT_IN_PROGRESS": ErrCodeCheckoutInProgress,
	"SESSION_INVALID":      ErrCodeSessionInvalid,
	"UNAUTHORIZED":         ErrCodeSessionInvalid,
	"RATE_LIMITED":         ErrCodeRateLimited,
	"INVALID_QUANTITY":     ErrCodeInvalidQuantity,
	"INVALID_PRICE_BAND":   ErrCodeInvalidPrice,
	"INVALID_SORT":         ErrCodeInvalidSort,
	"UNKNOWN_REGION":       ErrCodeUnknownRegion,
	"PICKUP_UNAVAILABLE":   ErrCodePickupUnavailable,
	"OFFICE_NOT_IN_REGION": ErrCodeOfficeNotInRegion,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodes[code]; ok {
		return apiCode
	}
	return code
}
