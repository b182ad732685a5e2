package app

import (
	"context"
	"testing"

	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/infrastructure/notification"
	"orderflow/internal/infrastructure/supplier"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := &appconfig.Config{Storage: appconfig.StorageConfig{Driver: appconfig.DriverMemory}}
		store, err := OpenStorage(ctx, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.Orders == nil || store.Payments == nil {
			t.Fatalf("expected both repositories, got %+v", store)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close should be a no-op: %v", err)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &appconfig.Config{Storage: appconfig.StorageConfig{Driver: "mongo"}}
		if _, err := OpenStorage(ctx, cfg); err == nil {
			t.Fatalf("expected error for unknown driver")
		}
	})

	t.Run("relational without dsn", func(t *testing.T) {
		cfg := &appconfig.Config{Storage: appconfig.StorageConfig{Driver: appconfig.DriverSQLite}}
		if _, err := OpenStorage(ctx, cfg); err == nil {
			t.Fatalf("expected error for empty dsn")
		}
	})
}

func TestFallbackAdapters(t *testing.T) {
	ctx := context.Background()

	notifier, closeFn, err := NewNotifier(ctx, appconfig.RedisConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := notifier.(notification.LogNotifier); !ok {
		t.Fatalf("expected LogNotifier, got %T", notifier)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	if NewSupplierQueue(appconfig.LmstfyConfig{}) != nil {
		t.Fatalf("expected no queue without a host")
	}
	if _, ok := NewSupplierGateway(ctx, appconfig.LmstfyConfig{}).(supplier.LogGateway); !ok {
		t.Fatalf("expected LogGateway without a host")
	}

	gw, err := NewPaymentGateway(ctx, appconfig.PaymentsConfig{Mock: true})
	if err != nil || gw != nil {
		t.Fatalf("mock mode should yield a nil gateway, got %v %v", gw, err)
	}
	if _, err := NewPaymentGateway(ctx, appconfig.PaymentsConfig{}); err == nil {
		t.Fatalf("expected error without an access token")
	}
}

func TestNewUseCases(t *testing.T) {
	store, err := OpenStorage(context.Background(), &appconfig.Config{Storage: appconfig.StorageConfig{Driver: appconfig.DriverMemory}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pay := appconfig.PaymentsConfig{Mock: true, MercadoPagoAccessToken: "TEST-abc", TestPayerEmail: "p@test.com"}
	opts := PaymentOptions(pay)
	if !opts.Mock || !opts.Sandbox || opts.TestPayerEmail != "p@test.com" {
		t.Fatalf("unexpected options: %+v", opts)
	}

	ucs := NewUseCases(store, notification.LogNotifier{}, supplier.LogGateway{}, nil, opts)
	if ucs.Orders == nil || ucs.Lines == nil || ucs.Billing == nil || ucs.Payments == nil {
		t.Fatalf("expected every use case, got %+v", ucs)
	}
}
