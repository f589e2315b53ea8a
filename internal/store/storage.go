package store

import (
	"context"
	"errors"
	"time"

	"turfbook/internal/booking"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Reservations *ReservationStore
	Holds        *HoldStore
	Venues       interface {
		Create(ctx context.Context, v *Venue) error
		GetByID(ctx context.Context, id int64) (*Venue, error)
		GetVenue(ctx context.Context, venueID int64) (booking.VenueInfo, error)
		SetActive(ctx context.Context, id int64, active bool) error
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Reservations: &ReservationStore{db},
		Holds:        &HoldStore{db},
		Venues:       &VenueStore{db},
	}
}
