package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turfbook/docs" //this is required to generate swagger docs
	"turfbook/internal/booking"
	"turfbook/internal/pricing"
	"turfbook/internal/ratelimiter"
	"turfbook/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config      config
	store       store.Storage
	logger      *zap.SugaredLogger
	admissions  *booking.Controller
	rateLimiter *ratelimiter.FixedWindowRateLimiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	auth        authConfig
	gateway     gatewayConfig
	pricing     pricing.Config
	codeSalt    string
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

type gatewayConfig struct {
	provider  string
	keyID     string
	keySecret string
	currency  string
	timeout   time.Duration
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/venues", func(r chi.Router) {
			r.Post("/", app.createVenueHandler)

			r.Route("/{venueID}", func(r chi.Router) {
				r.Get("/", app.getVenueHandler)
				r.Get("/unavailable-ranges", app.unavailableRangesHandler)
				r.Get("/quote", app.quoteHandler)
				r.Post("/reservations", app.createReservationHandler)

				// Owner/admin surface.
				r.Group(func(r chi.Router) {
					r.Use(app.BasicAuthMiddleware())
					r.Patch("/active", app.setVenueActiveHandler)
					r.Get("/holds", app.listHoldsHandler)
					r.Post("/holds", app.createHoldHandler)
					r.Delete("/holds/{holdID}", app.deleteHoldHandler)
				})
			})
		})

		r.Route("/reservations/{reservationID}", func(r chi.Router) {
			r.Post("/cancel", app.cancelReservationHandler)
			r.With(app.BasicAuthMiddleware()).Post("/checkin", app.checkinReservationHandler)
		})

		r.Get("/payers/{payerID}/reservations", app.listPayerReservationsHandler)
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
