package booking

import (
	"context"
	"time"

	"turfbook/internal/payments"
	"turfbook/internal/pricing"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Reservation is a paid occupation of a venue's time range. The range is
// immutable once confirmed; status transitions are the only mutation path.
type Reservation struct {
	ID         string            `json:"id"`
	Code       string            `json:"code"`
	VenueID    int64             `json:"venue_id"`
	PayerID    int64             `json:"payer_id"`
	Slot       TimeRange         `json:"slot"`
	Breakdown  pricing.Breakdown `json:"breakdown"`
	PaymentRef string            `json:"payment_ref"`
	Status     Status            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Hold is an owner/admin-placed block on a range. It carries no payment but
// counts as unavailable exactly like an active reservation.
type Hold struct {
	ID       int64     `json:"id"`
	VenueID  int64     `json:"venue_id"`
	Slot     TimeRange `json:"slot"`
	PlacedBy int64     `json:"placed_by"`
	Reason   *string   `json:"reason,omitempty"`
}

// VenueInfo is the slice of a venue the admission path needs. The hourly
// rate here is the persisted one; client-supplied prices are never trusted.
type VenueInfo struct {
	ID         int64
	HourlyRate float64
	IsActive   bool
}

// Ledger is the durable record of reservations and the source of truth the
// availability index reads from. Implementations must back InsertIfAbsent
// with a storage-level uniqueness guarantee so that concurrent admissions
// for the same slot cannot both commit.
type Ledger interface {
	Begin(ctx context.Context) (LedgerTx, error)
	ReadRangesFor(ctx context.Context, venueID int64, date time.Time) ([]TimeRange, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	GetByPaymentRef(ctx context.Context, paymentRef string) (*Reservation, error)
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	ListByPayer(ctx context.Context, payerID int64) ([]Reservation, error)
}

// LedgerTx scopes the availability re-read and the insert to one
// transaction. ReadRangesFor must return a single consistent snapshot of
// active reservations and holds. Rollback after Commit is a no-op.
type LedgerTx interface {
	ReadRangesFor(ctx context.Context, venueID int64, date time.Time) ([]TimeRange, error)
	InsertIfAbsent(ctx context.Context, r *Reservation) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// VenueDirectory is the read-only venue collaborator.
type VenueDirectory interface {
	GetVenue(ctx context.Context, venueID int64) (VenueInfo, error)
}

// PaymentVerifier checks a claimed payment against the gateway's
// authoritative record before admission may finalize.
type PaymentVerifier interface {
	Verify(ctx context.Context, paymentRef string, expectedAmount float64) (payments.PaymentRecord, error)
}
