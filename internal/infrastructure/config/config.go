package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverDynamoDB = "dynamodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the process configuration. Every key is a flat environment
// variable (APP_NAME, REDIS_ADDR, ...); an optional config file may set the
// same keys in lower case.
type Config struct {
	App      AppConfig      `mapstructure:",squash"`
	Storage  StorageConfig  `mapstructure:",squash"`
	AWS      AWSConfig      `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Lmstfy   LmstfyConfig   `mapstructure:",squash"`
	Payments PaymentsConfig `mapstructure:",squash"`
}

type AppConfig struct {
	Name     string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`
	HTTPPort int    `mapstructure:"http_port"`
}

type StorageConfig struct {
	Driver string `mapstructure:"storage_driver"`
	DSN    string `mapstructure:"database_dsn"`
}

// AWSConfig drives the DynamoDB client. Static credentials default to "local"
// so DynamoDB Local works out of the box.
type AWSConfig struct {
	Region          string `mapstructure:"aws_region"`
	AccessKeyID     string `mapstructure:"aws_access_key_id"`
	SecretAccessKey string `mapstructure:"aws_secret_access_key"`
	DynamoEndpoint  string `mapstructure:"dynamodb_endpoint"`
	OrdersTable     string `mapstructure:"orders_table"`
	LinesTable      string `mapstructure:"lines_table"`
	PaymentsTable   string `mapstructure:"payments_table"`
}

type RedisConfig struct {
	Addr          string        `mapstructure:"redis_addr"`
	Password      string        `mapstructure:"redis_password"`
	DB            int           `mapstructure:"redis_db"`
	ChannelPrefix string        `mapstructure:"notify_channel_prefix"`
	Timeout       time.Duration `mapstructure:"notify_timeout"`
}

type LmstfyConfig struct {
	Host          string        `mapstructure:"lmstfy_host"`
	Port          int           `mapstructure:"lmstfy_port"`
	Namespace     string        `mapstructure:"lmstfy_namespace"`
	Token         string        `mapstructure:"lmstfy_token"`
	ShortageQueue string        `mapstructure:"supplier_queue"`
	ResponseQueue string        `mapstructure:"supplier_response_queue"`
	JobTTL        time.Duration `mapstructure:"supplier_job_ttl"`
	Tries         int           `mapstructure:"supplier_job_tries"`
	PollTimeout   time.Duration `mapstructure:"supplier_poll_timeout"`
	TTR           time.Duration `mapstructure:"supplier_ttr"`
	ErrorBackoff  time.Duration `mapstructure:"supplier_error_backoff"`
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string `mapstructure:"mercadopago_access_token"`
	TestPayerEmail         string `mapstructure:"mercadopago_test_payer_email"`
	TestPayerUserID        string `mapstructure:"mercadopago_test_payer_user_id"`
	Mock                   bool   `mapstructure:"payment_gateway_mock"`
}

// Sandbox reports whether the access token is a Mercado Pago test credential.
func (p PaymentsConfig) Sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(p.MercadoPagoAccessToken), "TEST-")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "orderflow")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", 8080)

	v.SetDefault("storage_driver", DriverMemory)
	v.SetDefault("database_dsn", "")

	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "local")
	v.SetDefault("aws_secret_access_key", "local")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("orders_table", "orders")
	v.SetDefault("lines_table", "order_lines")
	v.SetDefault("payments_table", "bill_payments")

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("notify_channel_prefix", "orderflow")
	v.SetDefault("notify_timeout", 500*time.Millisecond)

	v.SetDefault("lmstfy_host", "")
	v.SetDefault("lmstfy_port", 7777)
	v.SetDefault("lmstfy_namespace", "orderflow")
	v.SetDefault("lmstfy_token", "")
	v.SetDefault("supplier_queue", "supplier_shortage")
	v.SetDefault("supplier_response_queue", "supplier_availability")
	v.SetDefault("supplier_job_ttl", 24*time.Hour)
	v.SetDefault("supplier_job_tries", 3)
	v.SetDefault("supplier_poll_timeout", 3*time.Second)
	v.SetDefault("supplier_ttr", 30*time.Second)
	v.SetDefault("supplier_error_backoff", time.Second)

	v.SetDefault("mercadopago_access_token", "")
	v.SetDefault("mercadopago_test_payer_email", "")
	v.SetDefault("mercadopago_test_payer_user_id", "")
	v.SetDefault("payment_gateway_mock", false)
}

// Load reads the environment and, when configPath is set, a config file.
// godotenv/autoload in the entry points has already merged .env into the
// environment by the time this runs.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	return &cfg, nil
}

// Validate checks the combinations Load cannot default.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app_name is required")
	}
	if c.App.HTTPPort <= 0 || c.App.HTTPPort > 65535 {
		return fmt.Errorf("http_port %d is out of range", c.App.HTTPPort)
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverDynamoDB:
		if c.AWS.OrdersTable == "" || c.AWS.LinesTable == "" || c.AWS.PaymentsTable == "" {
			return fmt.Errorf("dynamodb tables are required")
		}
	case DriverPostgres, DriverSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("database_dsn is required for %s", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage_driver %q", c.Storage.Driver)
	}
	if c.Lmstfy.Host != "" && (c.Lmstfy.Namespace == "" || c.Lmstfy.ShortageQueue == "") {
		return fmt.Errorf("lmstfy namespace and supplier_queue are required when lmstfy_host is set")
	}
	if c.Lmstfy.Tries <= 0 {
		return fmt.Errorf("supplier_job_tries must be positive")
	}
	return nil
}
