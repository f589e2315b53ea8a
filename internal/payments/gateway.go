package payments

import "context"

// Gateway defines a common interface for all payment providers
type Gateway interface {
	FetchPayment(ctx context.Context, paymentRef string) (PaymentRecord, error)
}
