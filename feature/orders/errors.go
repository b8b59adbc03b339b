package orders

import "errors"

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrOrderNotFound is returned when the order id does not resolve.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStockNotFound is returned when the referenced stock does not exist.
	ErrStockNotFound = errors.New("stock not found")
)

// ValidationError describes a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
