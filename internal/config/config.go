package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Pricing  PricingConfig
	Coupons  CouponConfig
	Payment  PaymentConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds catalogue database configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration. An empty APIKey disables
// API-key checking, which is the default for a storefront serving browser
// clients directly.
type AuthConfig struct {
	APIKey string
}

// StorageConfig holds the location of the persisted cart, wishlist and
// latest-invoice records.
type StorageConfig struct {
	DataDir string
}

// PricingConfig holds the monetary constants the pricing engine depends
// on. All of them are externally configurable.
type PricingConfig struct {
	TaxRate               decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	FlatDeliveryFee       decimal.Decimal
}

// CouponConfig holds the location of the static coupon registry.
type CouponConfig struct {
	RegistryPath string
	S3Enabled    bool
	S3Bucket     string
	S3Region     string
	S3Key        string
}

// PaymentConfig holds settings for the simulated payment gateway.
type PaymentConfig struct {
	AckDelayMillis int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "shopkart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Pricing: PricingConfig{
			TaxRate:               getEnvAsDecimal("TAX_RATE", "0.05"),
			FreeDeliveryThreshold: getEnvAsDecimal("FREE_DELIVERY_THRESHOLD", "499"),
			FlatDeliveryFee:       getEnvAsDecimal("FLAT_DELIVERY_FEE", "49"),
		},
		Coupons: CouponConfig{
			RegistryPath: getEnv("COUPON_REGISTRY_PATH", "data/coupons/registry.json"),
			S3Enabled:    getEnvAsBool("COUPON_S3_ENABLED", false),
			S3Bucket:     getEnv("COUPON_S3_BUCKET", ""),
			S3Region:     getEnv("COUPON_S3_REGION", "us-east-1"),
			S3Key:        getEnv("COUPON_S3_KEY", "coupons/registry.json"),
		},
		Payment: PaymentConfig{
			AckDelayMillis: getEnvAsInt("PAYMENT_ACK_DELAY_MS", 1200),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Storage.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}

	if c.Pricing.TaxRate.IsNegative() || c.Pricing.TaxRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("tax rate must be in [0, 1): %s", c.Pricing.TaxRate)
	}

	if c.Pricing.FreeDeliveryThreshold.IsNegative() {
		return fmt.Errorf("free delivery threshold cannot be negative: %s", c.Pricing.FreeDeliveryThreshold)
	}

	if c.Pricing.FlatDeliveryFee.IsNegative() {
		return fmt.Errorf("flat delivery fee cannot be negative: %s", c.Pricing.FlatDeliveryFee)
	}

	if c.Payment.AckDelayMillis < 0 {
		return fmt.Errorf("payment ack delay cannot be negative: %d", c.Payment.AckDelayMillis)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Coupons.S3Enabled {
		if c.Coupons.S3Bucket == "" {
			return fmt.Errorf("coupon S3 bucket is required when S3 is enabled")
		}
		if c.Coupons.S3Region == "" {
			return fmt.Errorf("coupon S3 region is required when S3 is enabled")
		}
	}

	return nil
}

var one = decimal.NewFromInt(1)

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDecimal retrieves an environment variable as a decimal or
// returns the default. The default must parse.
func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(defaultValue)
}
