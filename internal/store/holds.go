package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turfbook/internal/booking"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HoldStore persists owner/admin-placed blocks. A hold occupies its range
// for availability exactly like a confirmed reservation but carries no
// payment.
type HoldStore struct {
	db *pgxpool.Pool
}

func (s *HoldStore) Create(ctx context.Context, h *booking.Hold) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
        INSERT INTO holds (venue_id, slot_date, start_min, end_min, placed_by, reason)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return s.db.QueryRow(ctx, q,
		h.VenueID,
		h.Slot.Date,
		h.Slot.Start,
		h.Slot.End,
		h.PlacedBy,
		h.Reason,
	).Scan(&h.ID)
}

func (s *HoldStore) Delete(ctx context.Context, venueID, holdID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx, `DELETE FROM holds WHERE id = $1 AND venue_id = $2`, holdID, venueID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: hold %d for venue %d", ErrNotFound, holdID, venueID)
	}
	return nil
}

func (s *HoldStore) ListForDate(ctx context.Context, venueID int64, date time.Time) ([]booking.Hold, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
        SELECT id, venue_id, slot_date, start_min, end_min, placed_by, reason
        FROM holds
        WHERE venue_id = $1 AND slot_date = $2
        ORDER BY start_min
    `
	rows, err := s.db.Query(ctx, q, venueID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Hold
	for rows.Next() {
		var h booking.Hold
		if err := rows.Scan(&h.ID, &h.VenueID, &h.Slot.Date, &h.Slot.Start, &h.Slot.End, &h.PlacedBy, &h.Reason); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *HoldStore) GetByID(ctx context.Context, holdID int64) (*booking.Hold, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
        SELECT id, venue_id, slot_date, start_min, end_min, placed_by, reason
        FROM holds
        WHERE id = $1
    `
	var h booking.Hold
	err := s.db.QueryRow(ctx, q, holdID).Scan(&h.ID, &h.VenueID, &h.Slot.Date, &h.Slot.Start, &h.Slot.End, &h.PlacedBy, &h.Reason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}
