package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"turfbook/internal/booking"
	"turfbook/internal/pricing"

	"github.com/go-chi/chi/v5"
)

// RangeView is one unavailable time range within the queried date.
type RangeView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReservationSummary is what the booking UI gets back after admission.
type ReservationSummary struct {
	ID         string            `json:"id"`
	Code       string            `json:"code"`
	VenueID    int64             `json:"venue_id"`
	PayerID    int64             `json:"payer_id"`
	Date       string            `json:"date"`
	Start      string            `json:"start"`
	End        string            `json:"end"`
	Breakdown  pricing.Breakdown `json:"breakdown"`
	PaymentRef string            `json:"payment_ref"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

func toSummary(res *booking.Reservation) ReservationSummary {
	return ReservationSummary{
		ID:         res.ID,
		Code:       res.Code,
		VenueID:    res.VenueID,
		PayerID:    res.PayerID,
		Date:       res.Slot.Date.Format("2006-01-02"),
		Start:      booking.FormatClock(res.Slot.Start),
		End:        booking.FormatClock(res.Slot.End),
		Breakdown:  res.Breakdown,
		PaymentRef: res.PaymentRef,
		Status:     string(res.Status),
		CreatedAt:  res.CreatedAt,
	}
}

// parseSlotQuery reads date/start/end query params into a TimeRange.
func parseSlotQuery(r *http.Request) (booking.TimeRange, error) {
	q := r.URL.Query()

	date, err := booking.ParseDate(q.Get("date"))
	if err != nil {
		return booking.TimeRange{}, err
	}
	start, err := booking.ParseClock(q.Get("start"))
	if err != nil {
		return booking.TimeRange{}, err
	}
	end, err := booking.ParseClock(q.Get("end"))
	if err != nil {
		return booking.TimeRange{}, err
	}
	return booking.NewTimeRange(date, start, end), nil
}

// UnavailableRanges godoc
//
//	@Summary		List unavailable time ranges for a venue
//	@Description	Returns the union of ranges taken by active reservations and holds on the given date. Computed fresh per call.
//	@Tags			Booking
//	@Produce		json
//	@Param			venueID	path		int			true	"Venue ID"
//	@Param			date	query		string		true	"Date in YYYY-MM-DD format"
//	@Success		200		{array}		RangeView	"Unavailable ranges"
//	@Failure		400		{object}	error		"Bad Request"
//	@Failure		500		{object}	error		"Internal Server Error"
//	@Router			/venues/{venueID}/unavailable-ranges [get]
func (app *application) unavailableRangesHandler(w http.ResponseWriter, r *http.Request) {
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

	ranges, err := app.admissions.UnavailableRanges(r.Context(), venueID, date)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	out := make([]RangeView, 0, len(ranges))
	for _, tr := range ranges {
		out = append(out, RangeView{
			Start: booking.FormatClock(tr.Start),
			End:   booking.FormatClock(tr.End),
		})
	}

	app.jsonResponse(w, http.StatusOK, out)
}

// Quote godoc
//
//	@Summary		Price a time range at the persisted venue rate
//	@Description	Recomputes the itemized breakdown server-side. This is the amount the payment will be verified against; a client-displayed price is only a mirror of it.
//	@Tags			Booking
//	@Produce		json
//	@Param			venueID	path		int		true	"Venue ID"
//	@Param			date	query		string	true	"Date in YYYY-MM-DD format"
//	@Param			start	query		string	true	"Start time, 15:04"
//	@Param			end		query		string	true	"End time, 15:04"
//	@Success		200		{object}	pricing.Breakdown
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		404		{object}	error	"Venue not found"
//	@Router			/venues/{venueID}/quote [get]
func (app *application) quoteHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	slot, err := parseSlotQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	breakdown, err := app.admissions.QuoteFor(r.Context(), venueID, slot)
	if err != nil {
		app.admissionErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, breakdown)
}

// CreateReservationPayload carries one admission attempt. The payment must
// already be captured at the gateway; its amount is verified server-side
// against the recomputed quote, never taken from this payload.
type CreateReservationPayload struct {
	Date       string `json:"date" validate:"required,caldate"`
	Start      string `json:"start" validate:"required,clock"`
	End        string `json:"end" validate:"required,clock"`
	PayerID    int64  `json:"payer_id" validate:"required,gt=0"`
	PaymentRef string `json:"payment_ref" validate:"required,max=64"`
}

// CreateReservation godoc
//
//	@Summary		Admit a reservation for a venue time slot
//	@Description	Atomically checks availability, verifies the claimed payment against the gateway, and inserts the reservation. Exactly one of two racing requests for overlapping ranges wins. Safe to retry: the same payment reference maps to the same reservation or the same error.
//	@Tags			Booking
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		int							true	"Venue ID"
//	@Param			payload	body		CreateReservationPayload	true	"Reservation request"
//	@Success		201		{object}	ReservationSummary			"Reservation admitted"
//	@Failure		400		{object}	error						"Bad Request: invalid range or rate"
//	@Failure		404		{object}	error						"Venue not found"
//	@Failure		409		{object}	error						"Conflict: slot already taken"
//	@Failure		422		{object}	error						"Payment invalid: amount mismatch or not captured"
//	@Failure		502		{object}	error						"Payment gateway unreachable"
//	@Router			/venues/{venueID}/reservations [post]
func (app *application) createReservationHandler(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateReservationPayload
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

	res, err := app.admissions.Admit(r.Context(), booking.AdmitRequest{
		VenueID:    venueID,
		PayerID:    payload.PayerID,
		Slot:       booking.NewTimeRange(date, start, end),
		PaymentRef: payload.PaymentRef,
	})
	if err != nil {
		app.admissionErrorResponse(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, toSummary(res))
}

type CancelReservationPayload struct {
	RequestedBy int64 `json:"requested_by" validate:"required,gt=0"`
}

// CancelReservation godoc
//
//	@Summary		Cancel a confirmed reservation
//	@Description	Transitions confirmed to cancelled and frees the range immediately. Only the payer may cancel, and only before the range starts.
//	@Tags			Booking
//	@Accept			json
//	@Produce		json
//	@Param			reservationID	path	string						true	"Reservation ID"
//	@Param			payload			body	CancelReservationPayload	true	"Cancellation request"
//	@Success		204
//	@Failure		403	{object}	error	"Not the payer"
//	@Failure		404	{object}	error	"Not Found"
//	@Failure		409	{object}	error	"Already started or not confirmed"
//	@Router			/reservations/{reservationID}/cancel [post]
func (app *application) cancelReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "reservationID")

	var payload CancelReservationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.admissions.Cancel(r.Context(), reservationID, payload.RequestedBy); err != nil {
		app.admissionErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type CheckinPayload struct {
	Code string `json:"code" validate:"required,max=32"`
}

// CheckinReservation godoc
//
//	@Summary		Complete a reservation at check-in
//	@Description	Marks a confirmed reservation as completed when the customer's QR code is scanned. A second check-in is rejected, not silently ignored.
//	@Tags			Venue-Owner
//	@Accept			json
//	@Produce		json
//	@Param			reservationID	path	string			true	"Reservation ID"
//	@Param			payload			body	CheckinPayload	true	"Scanned check-in code"
//	@Success		204
//	@Failure		404	{object}	error	"Not Found"
//	@Failure		409	{object}	error	"Not confirmed (already completed or cancelled)"
//	@Failure		422	{object}	error	"Code mismatch"
//	@Security		BasicAuth
//	@Router			/reservations/{reservationID}/checkin [post]
func (app *application) checkinReservationHandler(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "reservationID")

	var payload CheckinPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.admissions.Complete(r.Context(), reservationID, payload.Code); err != nil {
		app.admissionErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPayerReservations godoc
//
//	@Summary		List a payer's reservations
//	@Description	Returns every reservation made by the payer, newest first.
//	@Tags			Booking
//	@Produce		json
//	@Param			payerID	path		int	true	"Payer ID"
//	@Success		200		{array}		ReservationSummary
//	@Failure		400		{object}	error	"Bad Request"
//	@Failure		500		{object}	error	"Internal Server Error"
//	@Router			/payers/{payerID}/reservations [get]
func (app *application) listPayerReservationsHandler(w http.ResponseWriter, r *http.Request) {
	payerID, err := strconv.ParseInt(chi.URLParam(r, "payerID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid payerID: %w", err))
		return
	}

	reservations, err := app.admissions.ListByPayer(r.Context(), payerID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	out := make([]ReservationSummary, 0, len(reservations))
	for i := range reservations {
		out = append(out, toSummary(&reservations[i]))
	}

	app.jsonResponse(w, http.StatusOK, out)
}
