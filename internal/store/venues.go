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

// Venue represents a venue in the database. The booking core reads it but
// never writes it; mutation goes through owner/admin paths only.
type Venue struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	HourlyRate float64   `json:"hourly_rate"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type VenueStore struct {
	db *pgxpool.Pool
}

func (s *VenueStore) Create(ctx context.Context, venue *Venue) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
        INSERT INTO venues (owner_id, name, address, hourly_rate, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, is_verified, created_at, updated_at
    `
	return s.db.QueryRow(ctx, q,
		venue.OwnerID,
		venue.Name,
		venue.Address,
		venue.HourlyRate,
		venue.IsActive,
	).Scan(&venue.ID, &venue.IsVerified, &venue.CreatedAt, &venue.UpdatedAt)
}

func (s *VenueStore) GetByID(ctx context.Context, id int64) (*Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
        SELECT id, owner_id, name, address, hourly_rate, is_active, is_verified, created_at, updated_at
        FROM venues
        WHERE id = $1
    `
	var v Venue
	err := s.db.QueryRow(ctx, q, id).Scan(
		&v.ID,
		&v.OwnerID,
		&v.Name,
		&v.Address,
		&v.HourlyRate,
		&v.IsActive,
		&v.IsVerified,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// GetVenue is the read-only collaborator view the admission path uses. The
// hourly rate returned here is the one every server-side quote is computed
// from.
func (s *VenueStore) GetVenue(ctx context.Context, venueID int64) (booking.VenueInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var info booking.VenueInfo
	err := s.db.QueryRow(ctx,
		`SELECT id, hourly_rate, is_active FROM venues WHERE id = $1`, venueID,
	).Scan(&info.ID, &info.HourlyRate, &info.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.VenueInfo{}, fmt.Errorf("%w: %d", booking.ErrVenueNotFound, venueID)
		}
		return booking.VenueInfo{}, err
	}
	return info, nil
}

func (s *VenueStore) SetActive(ctx context.Context, id int64, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := s.db.Exec(ctx,
		`UPDATE venues SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return booking.ErrVenueNotFound
	}
	return nil
}
