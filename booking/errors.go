package booking

import "errors"

// Error taxonomy surfaced by the engine. Validation errors are detected
// before any I/O; ErrSlotUnavailable is an expected business outcome, not a
// system fault; ErrStoreUnavailable wraps any underlying persistence failure.
var (
	ErrInvalidInterval   = errors.New("check-in must be strictly before check-out")
	ErrInvalidGuestCount = errors.New("guests count must be positive")
	ErrInvalidFinancials = errors.New("deposit must be between zero and the total amount")
	ErrSlotUnavailable   = errors.New("the requested dates are no longer available")
	ErrStoreUnavailable  = errors.New("reservation store unavailable")
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
)
