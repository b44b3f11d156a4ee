package common

import "errors"

// Error kinds raised by the pricing core. Callers match them with errors.Is.
var (
	// ErrValidation indicates a product failed its construction bounds.
	ErrValidation = errors.New("validation error")
	// ErrConfig indicates an unrecognised or malformed promotion/coupon configuration.
	ErrConfig = errors.New("config error")
	// ErrNotFound indicates a product lookup missed.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuantity indicates a non-positive quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrQuantityLimit indicates a line item would exceed its maximum count.
	ErrQuantityLimit = errors.New("quantity limit exceeded")
)

// Error codes attached to AppError.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeConfig          = "CONFIG_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidQuantity = "INVALID_QUANTITY"
	CodeQuantityLimit   = "QUANTITY_LIMIT"
)

// AppError represents an error with an attached code and human readable message.
type AppError struct {
	Code    string
	Message string
	Err     error
	Details any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ValidationError wraps ErrValidation.
func ValidationError(message string) *AppError {
	return NewAppError(CodeValidation, message, ErrValidation)
}

// ConfigError wraps ErrConfig.
func ConfigError(message string) *AppError {
	return NewAppError(CodeConfig, message, ErrConfig)
}

// NotFoundError wraps ErrNotFound.
func NotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, message, ErrNotFound)
}

// InvalidQuantityError wraps ErrInvalidQuantity.
func InvalidQuantityError(message string) *AppError {
	return NewAppError(CodeInvalidQuantity, message, ErrInvalidQuantity)
}

// QuantityLimitError wraps ErrQuantityLimit.
func QuantityLimitError(message string) *AppError {
	return NewAppError(CodeQuantityLimit, message, ErrQuantityLimit)
}

// CodeOf returns the code of the first AppError in the chain, or "" when there is none.
func CodeOf(err error) string {
	var target *AppError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}
