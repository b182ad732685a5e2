// Package app assembles the adapters selected by configuration. Both the HTTP
// API and the supplier consumer build their dependencies through it.
package app

import (
	"context"
	"fmt"

	"orderflow/internal/adapter/persistence/repository"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/infrastructure/database"
	"orderflow/internal/infrastructure/notification"
	"orderflow/internal/infrastructure/payments"
	"orderflow/internal/infrastructure/supplier"
	"orderflow/internal/usecase"
	"orderflow/internal/usecase/interfaces"
	"orderflow/pkg/logger"
)

// Storage holds the repositories for the configured driver.
type Storage struct {
	Orders   interfaces.IOrderRepository
	Payments interfaces.IBillPaymentRepository
	close    func() error
}

func (s Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage connects the repository backend named by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *appconfig.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case appconfig.DriverMemory:
		logger.Warnf(ctx, "[app][storage] using in-memory repositories; state is lost on restart")
		return Storage{
			Orders:   repository.NewOrderMemoryRepository(),
			Payments: repository.NewBillPaymentMemoryRepository(),
		}, nil

	case appconfig.DriverDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return Storage{}, err
		}
		return Storage{
			Orders:   repository.NewOrderDynamoRepository(ddb, cfg.AWS),
			Payments: repository.NewBillPaymentDynamoRepository(ddb, cfg.AWS),
		}, nil

	case appconfig.DriverPostgres, appconfig.DriverSQLite:
		db, err := database.ConnectGorm(ctx, cfg.Storage, cfg.App.LogLevel)
		if err != nil {
			return Storage{}, err
		}
		if err := repository.Migrate(db); err != nil {
			return Storage{}, fmt.Errorf("failed to migrate %s schema: %w", cfg.Storage.Driver, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return Storage{}, err
		}
		return Storage{
			Orders:   repository.NewOrderGormRepository(db),
			Payments: repository.NewBillPaymentGormRepository(db),
			close:    sqlDB.Close,
		}, nil
	}
	return Storage{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// NewNotifier publishes role notices on redis, or only logs them when no redis
// address is configured.
func NewNotifier(ctx context.Context, cfg appconfig.RedisConfig) (interfaces.INotifier, func() error, error) {
	if cfg.Addr == "" {
		logger.Infof(ctx, "[app][notify] redis not configured; notices go to the log")
		return notification.LogNotifier{}, func() error { return nil }, nil
	}
	client, err := notification.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return notification.NewRedisNotifier(client, cfg), client.Close, nil
}

// NewSupplierQueue returns nil when lmstfy is not configured.
func NewSupplierQueue(cfg appconfig.LmstfyConfig) *supplier.LmstfyQueue {
	if cfg.Host == "" {
		return nil
	}
	return supplier.NewLmstfyQueue(cfg)
}

// NewSupplierGateway publishes shortage queries on lmstfy, or logs them when
// no queue is configured.
func NewSupplierGateway(ctx context.Context, cfg appconfig.LmstfyConfig) interfaces.ISupplierGateway {
	queue := NewSupplierQueue(cfg)
	if queue == nil {
		logger.Infof(ctx, "[app][supplier] lmstfy not configured; shortage queries go to the log")
		return supplier.LogGateway{}
	}
	return supplier.NewLmstfyGateway(queue, cfg)
}

// NewPaymentGateway returns a nil interface in mock mode so the payment use
// case settles locally.
func NewPaymentGateway(ctx context.Context, cfg appconfig.PaymentsConfig) (interfaces.IPaymentGateway, error) {
	gw, err := payments.NewMercadoPagoGateway(cfg)
	if err != nil {
		return nil, err
	}
	if gw == nil {
		logger.Infof(ctx, "[app][payment] gateway mock mode enabled")
		return nil, nil
	}
	return gw, nil
}

// PaymentOptions maps payment config onto the use case options.
func PaymentOptions(cfg appconfig.PaymentsConfig) usecase.PaymentOptions {
	return usecase.PaymentOptions{
		Mock:            cfg.Mock,
		Sandbox:         cfg.Sandbox(),
		TestPayerEmail:  cfg.TestPayerEmail,
		TestPayerUserID: cfg.TestPayerUserID,
	}
}

// UseCases is the full set of application services over one storage.
type UseCases struct {
	Orders   *usecase.OrderUseCase
	Lines    *usecase.LineUseCase
	Billing  *usecase.BillingUseCase
	Payments *usecase.BillPaymentUseCase
}

func NewUseCases(store Storage, notifier interfaces.INotifier, gateway interfaces.ISupplierGateway, payment interfaces.IPaymentGateway, opts usecase.PaymentOptions) UseCases {
	claims := usecase.NewClaimGuard(store.Orders)
	return UseCases{
		Orders:   usecase.NewOrderUseCase(store.Orders, claims, notifier),
		Lines:    usecase.NewLineUseCase(store.Orders, claims, notifier, gateway),
		Billing:  usecase.NewBillingUseCase(store.Orders, claims, notifier),
		Payments: usecase.NewBillPaymentUseCase(store.Payments, store.Orders, payment, opts),
	}
}
