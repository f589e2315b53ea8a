package payments

import (
	"context"
	"fmt"

	"turfbook/internal/pricing"
)

// Verifier validates a claimed payment against the gateway's authoritative
// record. It never trusts a client-supplied amount or status: the expected
// amount is recomputed server-side and compared in paise with zero
// tolerance.
type Verifier struct {
	gateway  Gateway
	currency string
}

func NewVerifier(gateway Gateway, currency string) *Verifier {
	return &Verifier{gateway: gateway, currency: currency}
}

// Verify fetches the payment and checks state, currency and exact amount.
// expectedAmount is in major units rounded to 2 decimals; the comparison
// happens in integer paise.
func (v *Verifier) Verify(ctx context.Context, paymentRef string, expectedAmount float64) (PaymentRecord, error) {
	rec, err := v.gateway.FetchPayment(ctx, paymentRef)
	if err != nil {
		return PaymentRecord{}, err
	}

	if !rec.Captured() {
		return PaymentRecord{}, fmt.Errorf("%w: status=%s", ErrNotCaptured, rec.Status)
	}
	if rec.Currency != v.currency {
		return PaymentRecord{}, fmt.Errorf("%w: got %s, want %s", ErrCurrencyMismatch, rec.Currency, v.currency)
	}

	expectedPaise := pricing.ToPaise(expectedAmount)
	if rec.AmountPaise != expectedPaise {
		return PaymentRecord{}, fmt.Errorf("%w: gateway=%d paise, expected=%d paise", ErrAmountMismatch, rec.AmountPaise, expectedPaise)
	}

	return rec, nil
}
