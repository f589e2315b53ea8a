package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRate rejects a non-positive hourly rate.
	ErrInvalidRate = errors.New("hourly rate must be positive")

	// ErrInvalidDuration rejects a duration that is not a positive multiple
	// of the half-hour granularity.
	ErrInvalidDuration = errors.New("duration must be a positive multiple of 30 minutes")
)

// Config carries the platform's settlement constants. It is immutable after
// construction; both the platform commission and the gateway fee rate come
// from a single source so the platform share and the gateway fee can never
// drift apart.
type Config struct {
	// PlatformCommission is a flat amount added on top of the base price,
	// e.g. 25.00.
	PlatformCommission float64
	// GatewayFeeRate is the gateway's cut of (base + commission),
	// e.g. 0.0207 for 2.07%.
	GatewayFeeRate float64
}

// Breakdown is the itemized monetary split for a booking. Every field is
// rounded to 2 decimal places at computation time so sums reproduce exactly
// wherever they are recomputed.
//
// Invariants:
//
//	TotalCharged = BaseAmount + PlatformCommission + GatewayFee
//	OwnerShare   = BaseAmount
//
// The owner is paid the full base amount; the platform keeps the commission
// net of the gateway's cut on it, so PlatformShare is
// PlatformCommission * (1 - GatewayFeeRate).
type Breakdown struct {
	BaseAmount         float64 `json:"base_amount"`
	PlatformCommission float64 `json:"platform_commission"`
	GatewayFee         float64 `json:"gateway_fee"`
	TotalCharged       float64 `json:"total_charged"`
	OwnerShare         float64 `json:"owner_share"`
	PlatformShare      float64 `json:"platform_share"`
}

// Engine computes breakdowns. It is a pure function of its config: identical
// inputs always produce identical output, which is what lets the server
// recompute and compare the amount the client paid.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Quote prices a booking of the given duration at the given hourly rate.
func (e *Engine) Quote(hourlyRate float64, durationMinutes int) (Breakdown, error) {
	if hourlyRate <= 0 {
		return Breakdown{}, fmt.Errorf("%w: got %.2f", ErrInvalidRate, hourlyRate)
	}
	if durationMinutes <= 0 || durationMinutes%30 != 0 {
		return Breakdown{}, fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, durationMinutes)
	}

	hours := float64(durationMinutes) / 60.0
	base := Round2(hourlyRate * hours)
	subtotal := base + e.cfg.PlatformCommission
	fee := Round2(subtotal * e.cfg.GatewayFeeRate)

	return Breakdown{
		BaseAmount:         base,
		PlatformCommission: e.cfg.PlatformCommission,
		GatewayFee:         fee,
		TotalCharged:       Round2(subtotal + fee),
		OwnerShare:         base,
		PlatformShare:      Round2(e.cfg.PlatformCommission * (1 - e.cfg.GatewayFeeRate)),
	}, nil
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToPaise converts a 2-decimal amount to integer minor currency units for
// the gateway boundary, where comparison must be exact.
func ToPaise(v float64) int64 {
	return int64(math.Round(v * 100))
}
