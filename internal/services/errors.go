// Package services holds the business logic behind the HTTP surface:
// soulmate generation, onboarding profiles, saved people, themed chat,
// city autocomplete and subscriptions. This file centralizes the
// service-level error values so handlers can map them to HTTP results with
// errors.Is.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/sidus-backend/internal/billing"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/storage"
)

var (
	// ErrInvalidInput wraps every request validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCooldown is returned when a user asks for another soulmate inside
	// the cooldown window.
	ErrCooldown = errors.New("soulmate generated too recently")

	// ErrGenerationFailed is the transient failure of an external generator
	// or the uploader. The step-specific errors below wrap it.
	ErrGenerationFailed = errors.New("generation failed")
	ErrImageGeneration  = fmt.Errorf("%w: image generation", ErrGenerationFailed)
	ErrImageUpload      = fmt.Errorf("%w: image upload", ErrGenerationFailed)
	ErrAnalysis         = fmt.Errorf("%w: compatibility analysis", ErrGenerationFailed)

	// ErrMisconfigured marks missing or rejected credentials for an
	// external collaborator.
	ErrMisconfigured = errors.New("service misconfigured")

	ErrSoulmateNotFound = errors.New("soulmate not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNoSubscription   = errors.New("no active subscription found")

	// ErrInvalidSignature is returned for webhooks that fail verification.
	ErrInvalidSignature = billing.ErrInvalidSignature
)

// invalid wraps a validation message in ErrInvalidInput.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// isConfigError reports whether err comes from missing or rejected
// credentials rather than a transient failure.
func isConfigError(err error) bool {
	return errors.Is(err, llm.ErrNotConfigured) ||
		errors.Is(err, llm.ErrUnauthorized) ||
		errors.Is(err, storage.ErrNotConfigured) ||
		errors.Is(err, billing.ErrNotConfigured)
}

// classify turns a collaborator error into ErrMisconfigured or the given
// step error, keeping the cause in the chain.
func classify(step error, err error) error {
	if isConfigError(err) {
		return fmt.Errorf("%w: %w", ErrMisconfigured, err)
	}
	return fmt.Errorf("%w: %w", step, err)
}
