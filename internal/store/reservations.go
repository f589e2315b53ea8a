package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turfbook/internal/booking"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationStore is the durable reservation ledger. Concurrency safety
// does not live in this process: conflicting admissions are ordered by the
// database, through the serializable transaction opened in Begin and the
// uniq_active_reservation_slot constraint enforced at insert.
type ReservationStore struct {
	db *pgxpool.Pool
}

const rangesForQuery = `
        SELECT slot_date, start_min, end_min
        FROM reservations
        WHERE venue_id = $1 AND slot_date = $2 AND status IN ('pending', 'confirmed')
        UNION ALL
        SELECT slot_date, start_min, end_min
        FROM holds
        WHERE venue_id = $1 AND slot_date = $2
    `

// Begin opens the serializable transaction an admission runs inside.
func (s *ReservationStore) Begin(ctx context.Context) (booking.LedgerTx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	return &reservationTx{tx: tx}, nil
}

// ReadRangesFor returns every range occupied by an active reservation or a
// hold for the venue/date. One statement, so reservations and holds come
// from a single consistent snapshot.
func (s *ReservationStore) ReadRangesFor(ctx context.Context, venueID int64, date time.Time) ([]booking.TimeRange, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, rangesForQuery, venueID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRanges(rows)
}

func scanRanges(rows pgx.Rows) ([]booking.TimeRange, error) {
	var out []booking.TimeRange
	for rows.Next() {
		var r booking.TimeRange
		if err := rows.Scan(&r.Date, &r.Start, &r.End); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const reservationColumns = `
        id, code, venue_id, payer_id, slot_date, start_min, end_min,
        base_amount, platform_commission, gateway_fee, total_charged,
        owner_share, platform_share, payment_ref, status, created_at, updated_at
    `

func scanReservation(row pgx.Row) (*booking.Reservation, error) {
	var res booking.Reservation
	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.VenueID,
		&res.PayerID,
		&res.Slot.Date,
		&res.Slot.Start,
		&res.Slot.End,
		&res.Breakdown.BaseAmount,
		&res.Breakdown.PlatformCommission,
		&res.Breakdown.GatewayFee,
		&res.Breakdown.TotalCharged,
		&res.Breakdown.OwnerShare,
		&res.Breakdown.PlatformShare,
		&res.PaymentRef,
		&res.Status,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (s *ReservationStore) GetByID(ctx context.Context, id string) (*booking.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return scanReservation(s.db.QueryRow(ctx, query, id))
}

func (s *ReservationStore) GetByPaymentRef(ctx context.Context, paymentRef string) (*booking.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE payment_ref = $1`
	return scanReservation(s.db.QueryRow(ctx, query, paymentRef))
}

// UpdateStatus moves a reservation from one status to another with
// compare-and-swap semantics: the update applies only if the current status
// equals from. This is the only mutation path for persisted reservations.
func (s *ReservationStore) UpdateStatus(ctx context.Context, id string, from, to booking.Status) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
      UPDATE reservations
      SET status     = $3,
          updated_at = NOW()
      WHERE id     = $1
        AND status = $2
    `
	res, err := s.db.Exec(ctx, q, id, from, to)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		// Distinguish a missing row from a lost CAS.
		var current booking.Status
		err := s.db.QueryRow(ctx, `SELECT status FROM reservations WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: status is %q, want %q", booking.ErrInvalidTransition, current, from)
	}
	return nil
}

func (s *ReservationStore) ListByPayer(ctx context.Context, payerID int64) ([]booking.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE payer_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query, payerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// reservationTx is one admission's transaction scope.
type reservationTx struct {
	tx pgx.Tx
}

func (t *reservationTx) ReadRangesFor(ctx context.Context, venueID int64, date time.Time) ([]booking.TimeRange, error) {
	rows, err := t.tx.Query(ctx, rangesForQuery, venueID, date)
	if err != nil {
		return nil, mapAdmissionError(err)
	}
	defer rows.Close()
	return scanRanges(rows)
}

// InsertIfAbsent writes a reservation keyed by (venue_id, slot_date,
// start_min, end_min). The partial unique index over active statuses makes
// the check-then-insert atomic: the loser of a race gets a constraint
// violation here, surfaced as the same conflict the pre-check produces.
func (t *reservationTx) InsertIfAbsent(ctx context.Context, r *booking.Reservation) error {
	const q = `
        INSERT INTO reservations (
            id, code, venue_id, payer_id, slot_date, start_min, end_min,
            base_amount, platform_commission, gateway_fee, total_charged,
            owner_share, platform_share, payment_ref, status
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING created_at, updated_at
    `
	err := t.tx.QueryRow(ctx, q,
		r.ID,
		r.Code,
		r.VenueID,
		r.PayerID,
		r.Slot.Date,
		r.Slot.Start,
		r.Slot.End,
		r.Breakdown.BaseAmount,
		r.Breakdown.PlatformCommission,
		r.Breakdown.GatewayFee,
		r.Breakdown.TotalCharged,
		r.Breakdown.OwnerShare,
		r.Breakdown.PlatformShare,
		r.PaymentRef,
		r.Status,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return mapAdmissionError(err)
	}
	return nil
}

func (t *reservationTx) Commit(ctx context.Context) error {
	// Serialization failures can surface at commit rather than at the
	// statements that caused them.
	return mapAdmissionError(t.tx.Commit(ctx))
}

func (t *reservationTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// mapAdmissionError translates database-level race outcomes into the
// booking taxonomy: unique-slot violations and serialization failures are
// both a SlotConflict, a reused payment reference is a DuplicatePayment.
func mapAdmissionError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "40001":
			return fmt.Errorf("%w: lost serialization race", booking.ErrSlotConflict)
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uniq_active_reservation_slot":
			return fmt.Errorf("%w: slot constraint", booking.ErrSlotConflict)
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uniq_reservation_payment_ref":
			return booking.ErrDuplicatePayment
		}
	}
	return err
}
