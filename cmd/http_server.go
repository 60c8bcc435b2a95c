package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/admin"
	"github.com/docconnect/docconnect/internal/auth"
	authpg "github.com/docconnect/docconnect/internal/auth/postgres"
	"github.com/docconnect/docconnect/internal/core/events"
	"github.com/docconnect/docconnect/internal/doctor"
	doctorpg "github.com/docconnect/docconnect/internal/doctor/postgres"
	"github.com/docconnect/docconnect/internal/payment"
	paymentpg "github.com/docconnect/docconnect/internal/payment/postgres"
	"github.com/docconnect/docconnect/internal/paystack"
	"github.com/docconnect/docconnect/internal/session"
	sessionpg "github.com/docconnect/docconnect/internal/session/postgres"
	"github.com/docconnect/docconnect/internal/subscription"
	subscriptionpg "github.com/docconnect/docconnect/internal/subscription/postgres"
	"github.com/docconnect/docconnect/internal/transport"
	"github.com/docconnect/docconnect/internal/transport/rest"
	"github.com/docconnect/docconnect/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config              *internal.Config
	DB                  *sqlx.DB
	Router              *chi.Mux
	Logger              *slog.Logger
	AuthHandler         *auth.Handler
	DoctorHandler       *doctor.Handler
	SessionHandler      *session.Handler
	SubscriptionHandler *subscription.Handler
	AdminHandler        *admin.Handler
	WebhookHandler      *payment.WebhookHandler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.DoctorHandler,
		deps.SessionHandler,
		deps.SubscriptionHandler,
		deps.AdminHandler,
		deps.WebhookHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx connection pool instead of opening its own.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	registerEventLogging(eventBus, lg)

	paystackClient := paystack.NewClient(paystack.Config{
		BaseURL:   config.Paystack.BaseURL,
		SecretKey: config.Paystack.SecretKey,
		Timeout:   config.Paystack.Timeout,
	}, lg)

	profileRepo := authpg.NewProfileRepository(gormDB)
	doctorRepo := doctorpg.NewDoctorRepository(gormDB)
	adminDoctorRepo := doctorpg.NewAdminDoctorRepository(gormDB)
	sessionRepo := sessionpg.NewSessionRepository(gormDB)
	paymentRepo := paymentpg.NewPaymentRepository(gormDB)
	adminPaymentRepo := paymentpg.NewAdminPaymentRepository(gormDB)
	adminSubscriptionRepo := subscriptionpg.NewAdminSubscriptionRepository(gormDB)
	subscriptionRepo := subscriptionpg.NewSubscriptionRepository(gormDB)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(profileRepo, tokenGen, config.Security.BCryptCost)
	doctorService := doctor.NewService(doctorRepo, paystackClient, lg)
	sessionService := session.NewService(sessionRepo, doctorRepo, profileRepo, paymentRepo, paystackClient, lg)
	paymentService := payment.NewService(adminPaymentRepo, adminSubscriptionRepo, eventBus, lg)
	subscriptionService := subscription.NewService(subscriptionRepo, lg)
	adminService := admin.NewService(adminDoctorRepo, eventBus, lg)

	webhookHandler := payment.NewWebhookHandler(
		transport.NewBaseHandler(lg),
		paymentService,
		paystackClient.SecretKey(),
		lg,
	)

	return &Dependencies{
		Config:              config,
		Logger:              lg,
		DB:                  db,
		Router:              chi.NewRouter(),
		AuthHandler:         auth.NewHandler(authService),
		DoctorHandler:       doctor.NewHandler(doctorService),
		SessionHandler:      session.NewHandler(sessionService),
		SubscriptionHandler: subscription.NewHandler(subscriptionService),
		AdminHandler:        admin.NewHandler(adminService),
		WebhookHandler:      webhookHandler,
	}, nil
}

// registerEventLogging attaches audit log subscribers for the domain events
// that change money or access state.
func registerEventLogging(bus *events.EventBus, lg *slog.Logger) {
	logEvent := func(ctx context.Context, event events.Event) error {
		lg.Info("domain event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeSessionActivated, logEvent)
	bus.Subscribe(events.EventTypePaymentSucceeded, logEvent)
	bus.Subscribe(events.EventTypeSubscriptionCreated, logEvent)
	bus.Subscribe(events.EventTypeSubscriptionCancelled, logEvent)
	bus.Subscribe(events.EventTypeDoctorVerified, logEvent)
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
