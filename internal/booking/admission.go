package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turfbook/internal/pricing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdmitRequest is one admission attempt. PaymentRef is the gateway's id for
// an already-captured payment; the amount is never taken from the client.
type AdmitRequest struct {
	VenueID    int64
	PayerID    int64
	Slot       TimeRange
	PaymentRef string
}

// Controller is the transactional gate in front of the ledger. It accepts
// or rejects a reservation request atomically: the availability re-read and
// the insert share one serializable ledger transaction, and the ledger's
// uniqueness guarantee decides the winner when two admissions race.
type Controller struct {
	ledger   Ledger
	venues   VenueDirectory
	verifier PaymentVerifier
	pricing  *pricing.Engine
	codes    *CodeGenerator
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewController(ledger Ledger, venues VenueDirectory, verifier PaymentVerifier, engine *pricing.Engine, codes *CodeGenerator, logger *zap.SugaredLogger) *Controller {
	return &Controller{
		ledger:   ledger,
		venues:   venues,
		verifier: verifier,
		pricing:  engine,
		codes:    codes,
		logger:   logger,
		now:      time.Now,
	}
}

// Admit runs the full check-verify-insert sequence. Exactly one of two
// concurrent overlapping requests wins; the loser gets ErrSlotConflict
// whichever side of the race it was on. There are no automatic retries:
// a failed admission is re-run from scratch by the caller or not at all.
func (c *Controller) Admit(ctx context.Context, req AdmitRequest) (*Reservation, error) {
	if err := req.Slot.Validate(); err != nil {
		return nil, err
	}

	venue, err := c.venues.GetVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsActive {
		return nil, fmt.Errorf("%w: venue %d", ErrVenueInactive, req.VenueID)
	}

	// Expected amount comes from the persisted rate, never from the client.
	breakdown, err := c.pricing.Quote(venue.HourlyRate, req.Slot.Minutes())
	if err != nil {
		return nil, err
	}

	// Fast path for retried requests: the same payment reference always maps
	// to the same reservation.
	if prior, err := c.ledger.GetByPaymentRef(ctx, req.PaymentRef); err == nil && prior != nil {
		if prior.VenueID == req.VenueID && prior.PayerID == req.PayerID && prior.Slot.Equal(req.Slot) && prior.Status != StatusCancelled {
			return prior, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePayment, req.PaymentRef)
	}

	tx, err := c.ledger.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin admission: %w", err)
	}
	defer tx.Rollback(ctx)

	taken, err := tx.ReadRangesFor(ctx, req.VenueID, req.Slot.Date)
	if err != nil {
		return nil, fmt.Errorf("read unavailable ranges: %w", err)
	}
	if !IsAvailable(req.Slot, taken) {
		// Friendly early rejection. The insert constraint below is the one
		// that holds under concurrency.
		return nil, fmt.Errorf("%w: %s", ErrSlotConflict, req.Slot)
	}

	if _, err := c.verifier.Verify(ctx, req.PaymentRef, breakdown.TotalCharged); err != nil {
		return nil, err
	}

	code, err := c.codes.Generate(req.VenueID, req.Slot)
	if err != nil {
		return nil, fmt.Errorf("generate check-in code: %w", err)
	}

	res := &Reservation{
		ID:         uuid.NewString(),
		Code:       code,
		VenueID:    req.VenueID,
		PayerID:    req.PayerID,
		Slot:       req.Slot,
		Breakdown:  breakdown,
		PaymentRef: req.PaymentRef,
		Status:     StatusConfirmed,
	}

	if err := tx.InsertIfAbsent(ctx, res); err != nil {
		return c.resolveInsertFailure(ctx, req, err)
	}
	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, ErrSlotConflict) {
			return nil, err
		}
		// Payment already captured; surface distinctly so the caller can
		// pursue a refund.
		return nil, fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	c.logger.Infow("reservation admitted",
		"reservation_id", res.ID,
		"venue_id", res.VenueID,
		"slot", res.Slot.String(),
		"total", res.Breakdown.TotalCharged,
	)
	return res, nil
}

// resolveInsertFailure maps a failed insert after successful verification.
// A duplicate payment reference resolves to the original reservation; a
// slot constraint loss stays a conflict; anything else is a ledger write
// failure against a captured payment.
func (c *Controller) resolveInsertFailure(ctx context.Context, req AdmitRequest, insertErr error) (*Reservation, error) {
	switch {
	case errors.Is(insertErr, ErrSlotConflict):
		return nil, insertErr
	case errors.Is(insertErr, ErrDuplicatePayment):
		prior, err := c.ledger.GetByPaymentRef(ctx, req.PaymentRef)
		if err == nil && prior != nil && prior.VenueID == req.VenueID && prior.PayerID == req.PayerID && prior.Slot.Equal(req.Slot) {
			return prior, nil
		}
		return nil, insertErr
	default:
		c.logger.Errorw("ledger insert failed after payment verification",
			"venue_id", req.VenueID, "payment_ref", req.PaymentRef, "err", insertErr)
		return nil, fmt.Errorf("%w: %v", ErrLedgerWrite, insertErr)
	}
}

// Cancel transitions a confirmed reservation to cancelled, freeing its
// range. Only the payer may cancel, and only before the range starts.
func (c *Controller) Cancel(ctx context.Context, reservationID string, requestedBy int64) error {
	res, err := c.ledger.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.PayerID != requestedBy {
		return fmt.Errorf("%w: reservation %s", ErrForbidden, reservationID)
	}
	if !c.now().Before(res.Slot.StartTime()) {
		return fmt.Errorf("%w: cannot cancel %s", ErrPastRange, res.Slot)
	}
	return c.ledger.UpdateStatus(ctx, reservationID, StatusConfirmed, StatusCancelled)
}

// Complete marks a confirmed reservation as used at check-in. The presented
// code must match. A second completion is rejected, not silently ignored.
func (c *Controller) Complete(ctx context.Context, reservationID, code string) error {
	res, err := c.ledger.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.Code != code {
		return fmt.Errorf("%w: reservation %s", ErrBadCode, reservationID)
	}
	return c.ledger.UpdateStatus(ctx, reservationID, StatusConfirmed, StatusCompleted)
}

// UnavailableRanges returns the union of ranges held by active reservations
// and holds for a venue on a date. Computed fresh per call from one
// consistent ledger read; never cached.
func (c *Controller) UnavailableRanges(ctx context.Context, venueID int64, date time.Time) ([]TimeRange, error) {
	return c.ledger.ReadRangesFor(ctx, venueID, date)
}

// QuoteFor recomputes the price of a slot from the persisted venue rate.
// This is the figure the verifier will hold the payment against.
func (c *Controller) QuoteFor(ctx context.Context, venueID int64, slot TimeRange) (pricing.Breakdown, error) {
	if err := slot.Validate(); err != nil {
		return pricing.Breakdown{}, err
	}
	venue, err := c.venues.GetVenue(ctx, venueID)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	if !venue.IsActive {
		return pricing.Breakdown{}, fmt.Errorf("%w: venue %d", ErrVenueInactive, venueID)
	}
	return c.pricing.Quote(venue.HourlyRate, slot.Minutes())
}

// ListByPayer returns a payer's reservations, newest first.
func (c *Controller) ListByPayer(ctx context.Context, payerID int64) ([]Reservation, error) {
	return c.ledger.ListByPayer(ctx, payerID)
}
