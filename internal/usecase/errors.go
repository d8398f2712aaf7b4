package usecase

import (
	"errors"
	"fmt"

	"watch-store/pkg/utils"
)

// Sentinel errors returned by services. Adaptors translate them to HTTP
// statuses with errors.Is instead of matching message strings.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrDuplicateIdentity  = errors.New("already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrProductUnavailable = errors.New("product is unavailable")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrOTPInvalid         = errors.New("invalid or expired code")
	ErrOTPTooManyAttempts = errors.New("too many incorrect attempts")
	ErrOTPCooldown        = errors.New("a code was sent recently, try again later")
	ErrMailDelivery       = errors.New("could not deliver email")
)

// ValidationError carries per-field messages produced by the request
// validator.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
