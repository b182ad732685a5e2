package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Name != "orderflow" || cfg.App.HTTPPort != 8080 {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Redis.Timeout != 500*time.Millisecond {
		t.Fatalf("unexpected notify timeout: %v", cfg.Redis.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", " SQLite ")
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("NOTIFY_TIMEOUT", "2s")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.HTTPPort != 9090 || cfg.Storage.Driver != DriverSQLite || cfg.Storage.DSN != "file::memory:" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Timeout != 2*time.Second {
		t.Fatalf("redis env not applied: %+v", cfg.Redis)
	}
	if !cfg.Payments.Mock {
		t.Fatalf("expected mock payments")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "app_name: from-file\nlines_table: lines_v2\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Name != "from-file" || cfg.AWS.LinesTable != "lines_v2" {
		t.Fatalf("file not applied: %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = DriverPostgres }},
		{name: "dynamodb without tables", mutate: func(c *Config) { c.Storage.Driver = DriverDynamoDB; c.AWS.OrdersTable = "" }},
		{name: "bad port", mutate: func(c *Config) { c.App.HTTPPort = 0 }},
		{name: "lmstfy without queue", mutate: func(c *Config) { c.Lmstfy.Host = "lmstfy"; c.Lmstfy.ShortageQueue = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
