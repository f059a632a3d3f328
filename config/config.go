package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Storage  StorageConfig
	Postgres PostgresConfig

	// Registry policy
	Registry  RegistryConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig

	// Outbound webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type StorageConfig struct {
	Driver string
}

type PostgresConfig struct {
	DSN      string
	MaxConns int32
}

type RegistryConfig struct {
	MaxTarballBytes int64
	ReservedNames   []string
	BlobDir         string
}

type WindowConfig struct {
	Window time.Duration
	Max    int
}

type RateLimitConfig struct {
	General WindowConfig
	Publish WindowConfig
	MaxKeys int
}

type AuthConfig struct {
	CacheTTL  time.Duration
	CacheSize int
}

type WebhookConfig struct {
	DeliveryTimeout        time.Duration
	DispatchTimeout        time.Duration
	MaxConcurrency         int
	MaxDeliveriesPerSecond int
	UserAgent              string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Storage
	cfg.Storage.Driver = strings.ToLower(viper.GetString("storage.driver"))
	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	cfg.Postgres.MaxConns = viper.GetInt32("postgres.max_conns")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	// Registry policy
	cfg.Registry.MaxTarballBytes = viper.GetInt64("registry.max_tarball_bytes")
	cfg.Registry.BlobDir = viper.GetString("registry.blob_dir")
	cfg.Registry.ReservedNames = splitList(viper.GetStringSlice("registry.reserved_names"))

	cfg.RateLimit.General.Window = viper.GetDuration("rate_limit.general.window")
	cfg.RateLimit.General.Max = viper.GetInt("rate_limit.general.max")
	cfg.RateLimit.Publish.Window = viper.GetDuration("rate_limit.publish.window")
	cfg.RateLimit.Publish.Max = viper.GetInt("rate_limit.publish.max")
	cfg.RateLimit.MaxKeys = viper.GetInt("rate_limit.max_keys")

	cfg.Auth.CacheTTL = viper.GetDuration("auth.cache_ttl")
	cfg.Auth.CacheSize = viper.GetInt("auth.cache_size")

	// Webhooks
	cfg.Webhook.DeliveryTimeout = viper.GetDuration("webhook.delivery_timeout")
	cfg.Webhook.DispatchTimeout = viper.GetDuration("webhook.dispatch_timeout")
	cfg.Webhook.MaxConcurrency = viper.GetInt("webhook.max_concurrency")
	cfg.Webhook.MaxDeliveriesPerSecond = viper.GetInt("webhook.max_deliveries_per_second")
	cfg.Webhook.UserAgent = viper.GetString("webhook.user_agent")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required when storage.driver is %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Registry.MaxTarballBytes <= 0 {
		return fmt.Errorf("registry.max_tarball_bytes must be positive")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("storage.driver", StorageMemory)
	viper.SetDefault("postgres.max_conns", 10)

	viper.SetDefault("registry.max_tarball_bytes", 10<<20)
	viper.SetDefault("registry.blob_dir", "./data/tarballs")

	viper.SetDefault("rate_limit.general.window", "60s")
	viper.SetDefault("rate_limit.general.max", 120)
	viper.SetDefault("rate_limit.publish.window", "60s")
	viper.SetDefault("rate_limit.publish.max", 10)
	viper.SetDefault("rate_limit.max_keys", 100000)

	viper.SetDefault("auth.cache_ttl", "30s")
	viper.SetDefault("auth.cache_size", 1024)

	viper.SetDefault("webhook.delivery_timeout", "5s")
	viper.SetDefault("webhook.dispatch_timeout", "1m")
	viper.SetDefault("webhook.max_concurrency", 8)
	viper.SetDefault("webhook.max_deliveries_per_second", 50)
	viper.SetDefault("webhook.user_agent", "agentpacks-registry-webhooks/1")
}

// splitList accepts both YAML lists and a comma-separated env value.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
