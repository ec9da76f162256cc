package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation")
	ErrNotFound       = errors.New("not found")
	ErrEmptyCart      = errors.New("empty cart")
	ErrCheckoutFailed = errors.New("checkout failed")
	ErrStorage        = errors.New("storage")
)

var (
	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be more than zero", ErrValidation)
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrValidation)
)

// Checkout wraps cause so that both ErrCheckoutFailed and the cause match errors.Is.
func Checkout(cause error) error {
	return fmt.Errorf("%w: %w", ErrCheckoutFailed, cause)
}
