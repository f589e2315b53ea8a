package payments

import "errors"

var (
	// ErrAmountMismatch means the gateway's recorded amount differs from the
	// server-side recomputed total. Not retryable with the same payment.
	ErrAmountMismatch = errors.New("payment amount does not match expected total")

	// ErrNotCaptured means the payment exists but is not in a captured or
	// authorized state.
	ErrNotCaptured = errors.New("payment is not captured")

	// ErrCurrencyMismatch means the payment was made in a currency the
	// platform does not settle in.
	ErrCurrencyMismatch = errors.New("payment currency does not match")

	// ErrPaymentNotFound means the gateway has no record for the claimed
	// reference.
	ErrPaymentNotFound = errors.New("payment reference not found at gateway")

	// ErrGatewayUnreachable is a transient transport failure, including
	// timeouts. Retryable by the caller with backoff; never treated as
	// success.
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")
)
