package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-ticket-service/internal/domain"
	"github.com/metinatakli/cinema-ticket-service/internal/payment"
	"github.com/metinatakli/cinema-ticket-service/internal/repository"
	"github.com/metinatakli/cinema-ticket-service/internal/ticket"
	appvalidator "github.com/metinatakli/cinema-ticket-service/internal/validator"
	"github.com/metinatakli/cinema-ticket-service/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const serviceName = "cinema-ticket-service"

const (
	ReservationBackendPostgres = "postgres"
	ReservationBackendRedis    = "redis"

	PaymentProviderStripe = "stripe"
	PaymentProviderMock   = "mock"
)

var (
	version = vcs.Version()
)

type Application struct {
	config        Config
	logger        *slog.Logger
	validator     *validator.Validate
	ticketService *ticket.Service

	purchaseCounter metric.Int64Counter
}

type Config struct {
	Port               int
	Env                string
	ReservationBackend string
	PaymentProvider    string
	OtelCollectorUrl   string
	DB                 DBConfig
	Redis              RedisConfig
	Stripe             StripeConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type StripeConfig struct {
	SecretKey     string
	Currency      string
	PaymentMethod string
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	ticketService *ticket.Service) *Application {

	app := &Application{
		config:        cfg,
		logger:        logger,
		validator:     validator,
		ticketService: ticketService,
	}

	counter, err := newPurchaseCounter(otel.GetMeterProvider())
	if err != nil {
		logger.Warn("failed to create purchase counter", "error", err)
	}
	app.purchaseCounter = counter

	return app
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.ReservationBackend, "reservation-backend", ReservationBackendPostgres, "Seat reservation backend (postgres|redis)")
	flag.StringVar(&cfg.PaymentProvider, "payment-provider", PaymentProviderMock, "Payment provider (stripe|mock)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	flag.StringVar(&cfg.Stripe.Currency, "stripe-currency", "gbp", "Stripe charge currency")
	flag.StringVar(&cfg.Stripe.PaymentMethod, "stripe-payment-method", "pm_card_visa", "Stripe payment method used for charges")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(
			logger.Handler(),
			otelslog.NewHandler(serviceName),
		))
	}

	paymentService, err := newPaymentService(cfg)
	if err != nil {
		return err
	}

	reservationService, closeReservations, err := newReservationService(cfg)
	if err != nil {
		return err
	}
	defer closeReservations()

	app := NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		ticket.NewService(paymentService, reservationService),
	)

	return app.run()
}

func newPaymentService(cfg Config) (domain.TicketPaymentService, error) {
	switch cfg.PaymentProvider {
	case PaymentProviderStripe:
		if cfg.Stripe.SecretKey == "" {
			return nil, errors.New("stripe payment provider requires -stripe-key")
		}

		return payment.NewStripePaymentProvider(cfg.Stripe.Currency, cfg.Stripe.PaymentMethod), nil
	case PaymentProviderMock:
		return payment.NewMockPaymentProvider(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}

func newReservationService(cfg Config) (domain.SeatReservationService, func(), error) {
	switch cfg.ReservationBackend {
	case ReservationBackendPostgres:
		db, err := NewDatabasePool(cfg)
		if err != nil {
			return nil, nil, err
		}

		return repository.NewPostgresSeatReservationRepository(db), db.Close, nil
	case ReservationBackendRedis:
		redisClient, err := NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}

		return repository.NewRedisSeatReservationStore(redisClient), func() { redisClient.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown reservation backend %q", cfg.ReservationBackend)
	}
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("instrument redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server",
		"addr", srv.Addr,
		"env", app.config.Env,
		"payment_provider", app.config.PaymentProvider,
		"reservation_backend", app.config.ReservationBackend)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Post("/accounts/{accountId}/purchases", app.PurchaseTicketsHandler)

	return r
}
