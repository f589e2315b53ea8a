package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayment struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
}

// stubGateway serves a fixed set of payments under the Razorpay path and
// checks that the adapter authenticates.
func stubGateway(t *testing.T, records map[string]stubPayment) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "adapter must send basic auth")
		require.Equal(t, "rzp_test_key", user)
		require.Equal(t, "rzp_test_secret", pass)

		id := r.URL.Path[len("/v1/payments/"):]
		rec, found := records[id]
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	}))
}

func newTestVerifier(t *testing.T, srv *httptest.Server) *Verifier {
	t.Helper()
	adapter := NewRazorpayAdapterWithBaseURL("rzp_test_key", "rzp_test_secret", srv.URL, 2*time.Second)
	return NewVerifier(adapter, "INR")
}

func TestVerify_CapturedPayment(t *testing.T) {
	srv := stubGateway(t, map[string]stubPayment{
		"pay_ok": {ID: "pay_ok", Amount: 206692, Currency: "INR", Status: "captured", Method: "upi"},
	})
	defer srv.Close()

	rec, err := newTestVerifier(t, srv).Verify(context.Background(), "pay_ok", 2066.92)
	require.NoError(t, err)
	assert.Equal(t, "pay_ok", rec.Ref)
	assert.Equal(t, int64(206692), rec.AmountPaise)
	assert.Equal(t, "upi", rec.Method)
}

func TestVerify_AuthorizedCountsAsSecured(t *testing.T) {
	srv := stubGateway(t, map[string]stubPayment{
		"pay_auth": {ID: "pay_auth", Amount: 104622, Currency: "INR", Status: "authorized"},
	})
	defer srv.Close()

	_, err := newTestVerifier(t, srv).Verify(context.Background(), "pay_auth", 1046.22)
	assert.NoError(t, err)
}

func TestVerify_NotCaptured(t *testing.T) {
	srv := stubGateway(t, map[string]stubPayment{
		"pay_created": {ID: "pay_created", Amount: 206692, Currency: "INR", Status: "created"},
		"pay_failed":  {ID: "pay_failed", Amount: 206692, Currency: "INR", Status: "failed"},
		"pay_refund":  {ID: "pay_refund", Amount: 206692, Currency: "INR", Status: "refunded"},
	})
	defer srv.Close()

	v := newTestVerifier(t, srv)
	for _, ref := range []string{"pay_created", "pay_failed", "pay_refund"} {
		_, err := v.Verify(context.Background(), ref, 2066.92)
		assert.ErrorIs(t, err, ErrNotCaptured, ref)
	}
}

func TestVerify_AmountMismatch(t *testing.T) {
	srv := stubGateway(t, map[string]stubPayment{
		"pay_short": {ID: "pay_short", Amount: 206691, Currency: "INR", Status: "captured"},
	})
	defer srv.Close()

	// One paisa short. Comparison is exact; no tolerance.
	_, err := newTestVerifier(t, srv).Verify(context.Background(), "pay_short", 2066.92)
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestVerify_CurrencyMismatch(t *testing.T) {
	srv := stubGateway(t, map[string]stubPayment{
		"pay_usd": {ID: "pay_usd", Amount: 206692, Currency: "USD", Status: "captured"},
	})
	defer srv.Close()

	_, err := newTestVerifier(t, srv).Verify(context.Background(), "pay_usd", 2066.92)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestVerify_UnknownPayment(t *testing.T) {
	srv := stubGateway(t, nil)
	defer srv.Close()

	_, err := newTestVerifier(t, srv).Verify(context.Background(), "pay_ghost", 100.00)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestVerify_GatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestVerifier(t, srv).Verify(context.Background(), "pay_ok", 100.00)
	assert.ErrorIs(t, err, ErrGatewayUnreachable)
}

func TestVerify_GatewayTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	adapter := NewRazorpayAdapterWithBaseURL("rzp_test_key", "rzp_test_secret", srv.URL, 50*time.Millisecond)
	_, err := NewVerifier(adapter, "INR").Verify(context.Background(), "pay_slow", 100.00)
	assert.ErrorIs(t, err, ErrGatewayUnreachable)
}
