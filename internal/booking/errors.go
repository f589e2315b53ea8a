package booking

import "errors"

var (
	// ErrInvalidRange rejects a malformed or misaligned time range.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrSlotConflict means the requested range overlaps an existing
	// reservation or hold. Retrying with the same range will not help.
	ErrSlotConflict = errors.New("time slot is already taken")

	// ErrDuplicatePayment is returned by the ledger when a reservation with
	// the same payment reference already exists. The controller resolves it
	// by returning the original reservation (idempotent replay).
	ErrDuplicatePayment = errors.New("payment reference already used")

	// ErrLedgerWrite means payment verification succeeded but the
	// reservation could not be persisted. The payment is captured, so the
	// caller must pursue a refund.
	ErrLedgerWrite = errors.New("reservation could not be recorded after payment")

	// ErrInvalidTransition rejects a status change whose precondition does
	// not hold (e.g. completing a reservation that is not confirmed).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPastRange rejects cancelling a reservation whose range has already
	// started.
	ErrPastRange = errors.New("range already started")

	ErrNotFound      = errors.New("reservation not found")
	ErrForbidden     = errors.New("not allowed for this reservation")
	ErrVenueNotFound = errors.New("venue not found")
	ErrVenueInactive = errors.New("venue is not active")
	ErrBadCode       = errors.New("check-in code does not match")
)
