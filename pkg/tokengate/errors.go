package tokengate

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidCapacity is returned when bucket capacity is zero or negative
	ErrInvalidCapacity = errors.New("bucket capacity must be positive")

	// ErrInvalidRefillInterval is returned when the refill interval is zero or negative
	ErrInvalidRefillInterval = errors.New("refill interval must be positive")

	// ErrInvalidAccount is returned when the account identifier is empty
	ErrInvalidAccount = errors.New("account identifier cannot be empty")

	// ErrNilBucket is returned when registering a nil bucket
	ErrNilBucket = errors.New("bucket cannot be nil")

	// ErrAccountNotFound is returned when an operation references an unregistered account
	ErrAccountNotFound = errors.New("account not registered")

	// ErrAccountExtractionFailed is returned when an account ID cannot be extracted from a request
	ErrAccountExtractionFailed = errors.New("failed to extract account from request")
)
