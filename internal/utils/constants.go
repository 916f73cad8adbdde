package utils

// Application Constants
const (
	AppName    = "RideFare"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrNotFound         = "not found"
	ErrConflict         = "conflict"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CachePricingPrefix   = "pricing:"
	CacheRateLimitPrefix = "rate_limit:"
)
