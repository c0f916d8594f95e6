package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrProspectNotFound = errors.New("prospect not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrNameRequired     = errors.New("name is required")
	ErrNameTooLong      = errors.New("name exceeds maximum length")
	ErrPhoneRequired    = errors.New("phone is required")
	ErrInvalidPhone     = errors.New("invalid phone number")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrInvalidView      = errors.New("view must be monthly or yearly")
	ErrInvalidYear      = errors.New("invalid year")
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
	ErrInvalidAmount    = errors.New("amount must be a non-negative integer of cents")
	ErrInvalidRate      = errors.New("commission rate must be between 0 and 100 with at most 2 decimals")
	ErrInvalidOverride  = errors.New("commission override must be a non-negative integer of cents")
	ErrInvalidSplit     = errors.New("split ratio must be between 0 and 1 with at most 4 decimals")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter ISO code")
	ErrOccurredAtNeeded = errors.New("occurredAt is required")
	ErrInvalidFormat    = errors.New("format must be xlsx or pdf")
	ErrStorageDisabled  = errors.New("report storage is not configured")
)

// Validation constants
const (
	MaxNameLength = 255
	MinYear       = 2000
	MaxYear       = 2100
)
