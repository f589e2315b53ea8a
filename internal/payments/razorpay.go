package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const razorpayBaseURL = "https://api.razorpay.com"

// RazorpayAdapter fetches payment records from Razorpay's REST API using
// key-id/key-secret basic auth. Amounts are in paise (integer), which is
// what makes the verifier's comparison exact.
type RazorpayAdapter struct {
	KeyID     string
	KeySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayAdapter(keyID, keySecret string, timeout time.Duration) *RazorpayAdapter {
	return &RazorpayAdapter{
		KeyID:     keyID,
		KeySecret: keySecret,
		baseURL:   razorpayBaseURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// NewRazorpayAdapterWithBaseURL points the adapter at a custom endpoint.
// Used by tests to stand in a fake gateway.
func NewRazorpayAdapterWithBaseURL(keyID, keySecret, baseURL string, timeout time.Duration) *RazorpayAdapter {
	a := NewRazorpayAdapter(keyID, keySecret, timeout)
	a.baseURL = baseURL
	return a
}

func (a *RazorpayAdapter) FetchPayment(ctx context.Context, paymentRef string) (PaymentRecord, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", a.baseURL, paymentRef)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("razorpay fetch request: %w", err)
	}
	httpReq.SetBasicAuth(a.KeyID, a.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		// Timeouts and transport failures are transient; they must never
		// pass for a verified payment.
		if errors.Is(err, context.DeadlineExceeded) {
			return PaymentRecord{}, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
		}
		return PaymentRecord{}, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return PaymentRecord{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentRef)
	case resp.StatusCode >= 500:
		return PaymentRecord{}, fmt.Errorf("%w: http=%d", ErrGatewayUnreachable, resp.StatusCode)
	default:
		return PaymentRecord{}, fmt.Errorf("razorpay fetch failed: http=%d body=%s", resp.StatusCode, string(raw))
	}

	var res struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"` // paise
		Currency string `json:"currency"`
		Status   string `json:"status"` // created, authorized, captured, refunded, failed
		Method   string `json:"method"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return PaymentRecord{}, fmt.Errorf("razorpay fetch decode: %w body=%s", err, string(raw))
	}

	return PaymentRecord{
		Ref:         res.ID,
		AmountPaise: res.Amount,
		Currency:    res.Currency,
		Status:      res.Status,
		Method:      res.Method,
	}, nil
}
