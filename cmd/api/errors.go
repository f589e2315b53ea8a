package main

import (
	"errors"
	"net/http"

	"turfbook/internal/booking"
	"turfbook/internal/payments"
	"turfbook/internal/pricing"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict response", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusConflict, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) unprocessableEntityResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unprocessable entity", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
}

func (app *application) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("upstream gateway failure", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadGateway, "payment gateway unreachable, retry later")
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusForbidden, "forbidden")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// admissionErrorResponse maps the booking/payments error taxonomy onto HTTP.
// Every failure stays typed on the way out; nothing is downgraded to a
// generic 500 unless it genuinely is one.
func (app *application) admissionErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidRange),
		errors.Is(err, pricing.ErrInvalidRate),
		errors.Is(err, pricing.ErrInvalidDuration):
		app.badRequestResponse(w, r, err)

	case errors.Is(err, booking.ErrSlotConflict):
		// The client should refresh its available slots.
		app.conflictResponse(w, r, err)

	case errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrPastRange),
		errors.Is(err, booking.ErrDuplicatePayment):
		app.conflictResponse(w, r, err)

	case errors.Is(err, payments.ErrAmountMismatch),
		errors.Is(err, payments.ErrNotCaptured),
		errors.Is(err, payments.ErrCurrencyMismatch),
		errors.Is(err, payments.ErrPaymentNotFound),
		errors.Is(err, booking.ErrVenueInactive),
		errors.Is(err, booking.ErrBadCode):
		// Payment integrity failures need a fresh payment, not a retry.
		app.unprocessableEntityResponse(w, r, err)

	case errors.Is(err, payments.ErrGatewayUnreachable):
		app.badGatewayResponse(w, r, err)

	case errors.Is(err, booking.ErrNotFound), errors.Is(err, booking.ErrVenueNotFound):
		app.notFoundResponse(w, r, err)

	case errors.Is(err, booking.ErrForbidden):
		app.forbiddenResponse(w, r)

	case errors.Is(err, booking.ErrLedgerWrite):
		// Payment captured but no reservation recorded: surfaced distinctly
		// so support can run the refund path.
		app.logger.Errorw("ledger write failed after capture", "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, err.Error())

	default:
		app.internalServerError(w, r, err)
	}
}
