package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON            = "INVALID_JSON"
	ErrCodeInvalidCoupon          = "INVALID_COUPON"
	ErrCodeEmptyCart              = "EMPTY_CART"
	ErrCodeShippingIncomplete     = "SHIPPING_INCOMPLETE"
	ErrCodeInvalidPaymentDetails  = "INVALID_PAYMENT_DETAILS"
	ErrCodePersistenceFailure     = "PERSISTENCE_FAILURE"
	ErrCodeCheckoutInProgress     = "CHECKOUT_IN_PROGRESS"
	ErrCodeProductNotFound        = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity        = "INVALID_QUANTITY"
	ErrCodeInvalidPaginationParam = "INVALID_PAGINATION_PARAM"
	ErrCodeUnauthorised           = "UNAUTHORIZED"
	ErrCodeInternalError          = "INTERNAL_ERROR"
)

// DomainError carries a stable machine-readable code alongside the message.
type DomainError struct {
	Code    string
	Message string
}

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
	// ErrInvalidCoupon and ErrEmptyCouponCode share a code: an empty code is
	// rejected before lookup and differs from an unknown code only in the
	// message shown to the user.
	ErrInvalidCoupon   = NewDomainError(ErrCodeInvalidCoupon, "Coupon code not recognised")
	ErrEmptyCouponCode = NewDomainError(ErrCodeInvalidCoupon, "Coupon code is empty")

	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrCheckoutInProgress = NewDomainError(ErrCodeCheckoutInProgress, "A checkout is already in progress")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
)

// ShippingIncomplete reports the first missing required shipping field.
func ShippingIncomplete(field string) *DomainError {
	return NewDomainError(ErrCodeShippingIncomplete, "Missing required shipping field: "+field)
}

// InvalidPaymentDetails reports a payment validation failure for the
// selected method.
func InvalidPaymentDetails(reason string) *DomainError {
	return NewDomainError(ErrCodeInvalidPaymentDetails, reason)
}

// PersistenceFailure wraps a storage write error. The in-memory state has
// been rolled back by the time this is returned.
func PersistenceFailure(op string) *DomainError {
	return NewDomainError(ErrCodePersistenceFailure, "Failed to persist "+op)
}
