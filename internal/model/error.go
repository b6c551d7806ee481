package model

// Standard error codes surfaced to the presentation layer
const (
	ErrCodeNegativePrice      = "NEGATIVE_PRICE"
	ErrCodeNegativeTaxRate    = "NEGATIVE_TAX_RATE"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeDiscountOutOfRange = "DISCOUNT_OUT_OF_RANGE"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeInvalidMode        = "INVALID_MODE"
	ErrCodeInvalidPayment     = "INVALID_PAYMENT"
	ErrCodeItemNotFound       = "ITEM_NOT_FOUND"
	ErrCodeExportUnavailable  = "EXPORT_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
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
	ErrNegativePrice      = NewDomainError(ErrCodeNegativePrice, "Unit price must not be negative")
	ErrNegativeTaxRate    = NewDomainError(ErrCodeNegativeTaxRate, "Tax rate must not be negative")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrDiscountOutOfRange = NewDomainError(ErrCodeDiscountOutOfRange, "Discount must be between 0 and 100 percent")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cannot complete an order with an empty cart")
	ErrInvalidMode        = NewDomainError(ErrCodeInvalidMode, "Order mode must be Dine-In or Takeaway")
	ErrInvalidPayment     = NewDomainError(ErrCodeInvalidPayment, "Payment method must be Cash, Card or UPI")
	ErrItemNotFound       = NewDomainError(ErrCodeItemNotFound, "Menu item not found")
	ErrExportUnavailable  = NewDomainError(ErrCodeExportUnavailable, "Requested export format is not available")
)
