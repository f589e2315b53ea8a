package main

import (
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"turfbook/internal/booking"
	"turfbook/internal/db"
	"turfbook/internal/payments"
	"turfbook/internal/pricing"
	"turfbook/internal/ratelimiter"
	"turfbook/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel
	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)
	return logger.Sugar(), nil
}

// envFloat parses a required float env var, e.g. the settlement constants.
func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return v
}

var version = "0.3.0"

//	@title			Turfbook API
//	@description	Booking admission and payment-settlement service for turf venues.

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.basic	BasicAuth

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	maxConnsStr := os.Getenv("DB_MAX_CONNS")
	maxConns, err := strconv.Atoi(maxConnsStr)
	if err != nil {
		log.Fatalf("Invalid value for DB_MAX_CONNS: %v", err)
	}

	gatewayTimeout := 10 * time.Second
	if v := os.Getenv("GATEWAY_TIMEOUT"); v != "" {
		gatewayTimeout, err = time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid value for GATEWAY_TIMEOUT: %v", err)
		}
	}

	cfg := config{
		addr:        os.Getenv("ADDR"),
		env:         os.Getenv("ENV"),
		frontendURL: os.Getenv("FRONTEND_URL"),
		apiURL:      os.Getenv("EXTERNAL_URL"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    maxConns,
			maxIdleTime: os.Getenv("DB_MAX_IDLE_TIME"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		gateway: gatewayConfig{
			provider:  os.Getenv("PAYMENT_PROVIDER"),
			keyID:     os.Getenv("RAZORPAY_KEY_ID"),
			keySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			currency:  os.Getenv("PAYMENT_CURRENCY"),
			timeout:   gatewayTimeout,
		},
		pricing: pricing.Config{
			PlatformCommission: envFloat("PLATFORM_COMMISSION"),
			GatewayFeeRate:     envFloat("GATEWAY_FEE_RATE"),
		},
		codeSalt:    os.Getenv("CHECKIN_CODE_SALT"),
		rateLimiter: LoadRateLimiterConfig(),
	}

	// Logger
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	// Database
	database, err := db.New(
		cfg.db.addr,
		int32(cfg.db.maxConns),
		cfg.db.maxIdleTime,
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close()
	logger.Info("database connection pool established")

	//storage
	storage := store.NewStorage(database)

	// Payment gateway + verifier
	manager := payments.NewManager()
	manager.RegisterGateway("razorpay", payments.NewRazorpayAdapter(
		cfg.gateway.keyID,
		cfg.gateway.keySecret,
		cfg.gateway.timeout,
	))
	gateway, err := manager.Gateway(cfg.gateway.provider)
	if err != nil {
		logger.Fatal(err)
	}
	verifier := payments.NewVerifier(gateway, cfg.gateway.currency)

	// Pricing engine + check-in codes
	engine := pricing.NewEngine(cfg.pricing)
	codes, err := booking.NewCodeGenerator(cfg.codeSalt)
	if err != nil {
		logger.Fatal(err)
	}

	// Admission controller
	admissions := booking.NewController(
		storage.Reservations,
		storage.Venues,
		verifier,
		engine,
		codes,
		logger,
	)

	// Rate limiter
	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:      cfg,
		logger:      logger,
		store:       storage,
		admissions:  admissions,
		rateLimiter: rateLimiter,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := database.Stat()
		return map[string]any{
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
