package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/pricing"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/repository"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidStoreLocation),
		errors.Is(err, service.ErrInvalidPickupAddress),
		errors.Is(err, service.ErrInvalidTip),
		errors.Is(err, service.ErrInvalidBoxSize),
		errors.Is(err, service.ErrInvalidOrderNumber),
		errors.Is(err, service.ErrInvalidTrackingNumber),
		errors.Is(err, service.ErrDropoffBeforePickup):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrOrderNotClaimable),
		errors.Is(err, service.ErrOrderAlreadyClaimed),
		errors.Is(err, service.ErrOrderNotAssigned),
		errors.Is(err, service.ErrOrderNotPickedUp),
		errors.Is(err, service.ErrOrderAlreadyCompleted),
		errors.Is(err, service.ErrOrderAlreadyCancelled),
		errors.Is(err, service.ErrOrderCannotBeCancelled):
		return http.StatusConflict

	// Identifier generation exhausted its collision retries. Retryable:
	// the caller should simply try booking again.
	case errors.Is(err, pricing.ErrOrderNumberExhausted),
		errors.Is(err, pricing.ErrTrackingNumberExhausted):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
