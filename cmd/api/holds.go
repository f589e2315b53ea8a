package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"turfbook/internal/booking"
	"turfbook/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateHoldPayload struct {
	Date     string `json:"date" validate:"required,caldate"`
	Start    string `json:"start" validate:"required,clock"`
	End      string `json:"end" validate:"required,clock"`
	PlacedBy int64  `json:"placed_by" validate:"required,gt=0"`
	Reason   string `json:"reason" validate:"omitempty,max=255"`
}

// CreateHold godoc
//
//	@Summary		Place a manual hold on a venue time range
//	@Description	Blocks the range for availability exactly like a confirmed reservation, with no payment attached. Used by owners for maintenance, walk-ins and offline bookings.
//	@Tags			Venue-Owner
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		int					true	"Venue ID"
//	@Param			payload	body		CreateHoldPayload	true	"Hold details"
//	@Success		201		{object}	booking.Hold		"Hold created"
//	@Failure		400		{object}	error				"Bad Request"
//	@Failure		500		{object}	error				"Internal Server Error"
//	@Security		BasicAuth
//	@Router			/venues/{venueID}/holds [post]
func (app *application) createHoldHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateHoldPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	date, err := booking.ParseDate(payload.Date)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	start, err := booking.ParseClock(payload.Start)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	end, err := booking.ParseClock(payload.End)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	slot := booking.NewTimeRange(date, start, end)
	if err := slot.Validate(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var reasonPtr *string
	if strings.TrimSpace(payload.Reason) != "" {
		reasonPtr = &payload.Reason
	}

	hold := &booking.Hold{
		VenueID:  venueID,
		Slot:     slot,
		PlacedBy: payload.PlacedBy,
		Reason:   reasonPtr,
	}
	if err := app.store.Holds.Create(r.Context(), hold); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, hold)
}

// DeleteHold godoc
//
//	@Summary		Remove a manual hold
//	@Description	Deletes the hold, freeing its range for booking immediately.
//	@Tags			Venue-Owner
//	@Produce		json
//	@Param			venueID	path	int	true	"Venue ID"
//	@Param			holdID	path	int	true	"Hold ID"
//	@Success		204
//	@Failure		400	{object}	error	"Bad Request"
//	@Failure		404	{object}	error	"Not Found"
//	@Security		BasicAuth
//	@Router			/venues/{venueID}/holds/{holdID} [delete]
func (app *application) deleteHoldHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	holdID, err := strconv.ParseInt(chi.URLParam(r, "holdID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Holds.Delete(r.Context(), venueID, holdID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListHolds godoc
//
//	@Summary		List holds for a venue on a date
//	@Tags			Venue-Owner
//	@Produce		json
//	@Param			venueID	path		int		true	"Venue ID"
//	@Param			date	query		string	true	"Date in YYYY-MM-DD format"
//	@Success		200		{array}		booking.Hold
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		500		{object}	error	"Internal Server Error"
//	@Security		BasicAuth
//	@Router			/venues/{venueID}/holds [get]
func (app *application) listHoldsHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		app.badRequestResponse(w, r, errors.New("missing date"))
		return
	}
	date, err := booking.ParseDate(dateStr)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	holds, err := app.store.Holds.ListForDate(r.Context(), venueID, date)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, holds)
}
