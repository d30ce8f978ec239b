// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable; clients branch on them rather
// than on messages. Every error response carries an HTTP status and one of
// these codes:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "too_many_requests",
//	  "message": "Please wait a moment before generating another soulmate"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeGenerationFailed = "generation_failed"
	ErrCodeMisconfigured    = "service_misconfigured"
	ErrCodeInvalidSignature = "invalid_signature"
)

// CooldownMessage is shown when a soulmate is requested too soon.
const CooldownMessage = "Please wait a moment before generating another soulmate"

// failFor maps a service error onto the envelope. Unknown errors are 500s
// and their text is not leaked.
func failFor(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrCooldown):
		fail(c, http.StatusTooManyRequests, ErrCodeRateLimited, CooldownMessage)
	case errors.Is(err, services.ErrMisconfigured):
		fail(c, http.StatusServiceUnavailable, ErrCodeMisconfigured, "service is not configured")
	case errors.Is(err, services.ErrImageGeneration):
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "Image generation failed")
	case errors.Is(err, services.ErrImageUpload):
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "Image upload failed")
	case errors.Is(err, services.ErrAnalysis):
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "Compatibility analysis failed")
	case errors.Is(err, services.ErrGenerationFailed):
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "Failed to generate soulmate")
	case errors.Is(err, services.ErrSoulmateNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrNoSubscription):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidSignature):
		fail(c, http.StatusBadRequest, ErrCodeInvalidSignature, "invalid webhook signature")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
