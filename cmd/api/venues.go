package main

import (
	"errors"
	"net/http"
	"strconv"

	"turfbook/internal/booking"
	"turfbook/internal/store"

	"github.com/go-chi/chi/v5"
)

type CreateVenuePayload struct {
	OwnerID    int64   `json:"owner_id" validate:"required,gt=0"`
	Name       string  `json:"name" validate:"required,max=100"`
	Address    string  `json:"address" validate:"required,max=255"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

// CreateVenue godoc
//
//	@Summary		Register a venue
//	@Description	Creates a venue with its hourly rate. The rate stored here is the one every admission quote is computed from.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateVenuePayload	true	"Venue details"
//	@Success		201		{object}	store.Venue			"Venue created"
//	@Failure		400		{object}	error				"Bad Request"
//	@Failure		500		{object}	error				"Internal Server Error"
//	@Router			/venues [post]
func (app *application) createVenueHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue := &store.Venue{
		OwnerID:    payload.OwnerID,
		Name:       payload.Name,
		Address:    payload.Address,
		HourlyRate: payload.HourlyRate,
		IsActive:   true,
	}
	if err := app.store.Venues.Create(r.Context(), venue); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, venue)
}

// GetVenue godoc
//
//	@Summary		Fetch a venue
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path		int	true	"Venue ID"
//	@Success		200		{object}	store.Venue
//	@Failure		404		{object}	error	"Not Found"
//	@Router			/venues/{venueID} [get]
func (app *application) getVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue, err := app.store.Venues.GetByID(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, booking.ErrVenueNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, venue)
}

type SetActivePayload struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// SetVenueActive godoc
//
//	@Summary		Activate or deactivate a venue
//	@Description	Inactive venues reject new admissions; existing reservations are untouched.
//	@Tags			Venue-Owner
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path	int					true	"Venue ID"
//	@Param			payload	body	SetActivePayload	true	"Active flag"
//	@Success		204
//	@Failure		404	{object}	error	"Not Found"
//	@Security		BasicAuth
//	@Router			/venues/{venueID}/active [patch]
func (app *application) setVenueActiveHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload SetActivePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Venues.SetActive(r.Context(), venueID, *payload.IsActive); err != nil {
		if errors.Is(err, booking.ErrVenueNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
