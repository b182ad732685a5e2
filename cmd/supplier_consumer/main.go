package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"orderflow/internal/adapter/consumer"
	"orderflow/internal/app"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	_ = logger.Init("info")
	cfg, err := appconfig.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.Errorf(context.Background(), "[consumer][main] %v", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.App.LogLevel); err != nil {
		logger.Errorf(context.Background(), "[consumer][main] logger init failed err=%v", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Errorf(context.Background(), "[consumer][main] stopped err=%v", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *appconfig.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	queue := app.NewSupplierQueue(cfg.Lmstfy)
	if queue == nil || cfg.Lmstfy.ResponseQueue == "" {
		return errors.New("lmstfy_host and supplier_response_queue are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Storage.Driver == appconfig.DriverMemory {
		logger.Warnf(ctx, "[consumer][main] memory storage is not shared with the api; answers only land in this process")
	}
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

	ucs := app.NewUseCases(store, notifier, app.NewSupplierGateway(ctx, cfg.Lmstfy), nil, app.PaymentOptions(cfg.Payments))

	c := consumer.NewAvailabilityConsumer(queue, ucs.Lines, cfg.Lmstfy)
	go func() {
		<-ctx.Done()
		c.Shutdown()
	}()

	logger.Infof(ctx, "[consumer][main] consuming queue=%s", cfg.Lmstfy.ResponseQueue)
	err = c.Run(ctx)
	logger.Infof(context.Background(), "[consumer][main] stopped handled=%d", c.Handled())
	return err
}
