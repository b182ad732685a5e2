package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"orderflow/internal/adapter/http/handlers"
	"orderflow/internal/adapter/http/routes"
	"orderflow/internal/app"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Orderflow API
// @version         1.0
// @description     Order lifecycle and stock-resolution engine: claims, supplier round trips, checking and billing.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey ActorHeaders
// @in header
// @name X-Actor-ID
// @description Actor identity resolved upstream: X-Actor-ID, X-Actor-Role, X-Actor-Admin.

func main() {
	_ = logger.Init("info")
	cfg, err := appconfig.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.Errorf(context.Background(), "[api][main] %v", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.App.LogLevel); err != nil {
		logger.Errorf(context.Background(), "[api][main] logger init failed err=%v", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Errorf(context.Background(), "[api][main] stopped err=%v", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *appconfig.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	notifier, closeNotifier, err := app.NewNotifier(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = closeNotifier() }()

	paymentGateway, err := app.NewPaymentGateway(ctx, cfg.Payments)
	if err != nil {
		logger.Warnf(ctx, "[api][main] payment gateway not configured err=%v", err)
	}

	ucs := app.NewUseCases(store, notifier, app.NewSupplierGateway(ctx, cfg.Lmstfy), paymentGateway, app.PaymentOptions(cfg.Payments))

	router := routes.NewRouter(routes.Handlers{
		Order:   handlers.NewOrderHandler(ucs.Orders),
		Line:    handlers.NewLineHandler(ucs.Lines),
		Billing: handlers.NewBillingHandler(ucs.Billing),
		Payment: handlers.NewBillPaymentHandler(ucs.Payments, cfg.Payments.Mock),
	})

	logger.Infof(ctx, "[api][main] starting app=%s storage=%s", cfg.App.Name, cfg.Storage.Driver)
	return routes.Run(ctx, router, cfg.App.HTTPPort)
}
