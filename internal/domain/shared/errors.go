package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrCartEmpty           = NewDomainError("CART_EMPTY", "Cart has no items")
	ErrTokenInvalid        = NewDomainError("TOKEN_INVALID", "Token is invalid")
	ErrTokenExpired        = NewDomainError("TOKEN_EXPIRED", "Token has expired")
	ErrInternalError       = NewDomainError("INTERNAL_ERROR", "Internal server error")
)

// IsNotFound reports whether err is the not-found domain error
func IsNotFound(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == ErrNotFound.Code
}

// IsAlreadyExists reports whether err is the already-exists domain error
func IsAlreadyExists(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == ErrAlreadyExists.Code
}
