package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NewRelic  NewRelicConfig
	TaxOracle TaxOracleConfig
	Pricing   PricingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// TaxOracleConfig holds the external tax provider configuration. When
// disabled, every tax calculation takes the fail-open zero-tax fallback.
type TaxOracleConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Enabled bool
}

// PricingConfig holds overrides for the fare rate table.
type PricingConfig struct {
	BasePay            float64
	BasePrice          float64
	DistancePayPerMile float64
	DistanceFeePerMile float64
	TimePayPerHour     float64
	TimeFeePerHour     float64
	SizeBonusLarge     float64
	SizeBonusXL        float64
	SizeSurchargeLarge float64
	SizeSurchargeXL    float64
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "returnit"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "returnit-fare-engine"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		TaxOracle: TaxOracleConfig{
			BaseURL: getEnv("TAX_ORACLE_BASE_URL", "https://api.stripe.com"),
			APIKey:  getEnv("TAX_ORACLE_API_KEY", ""),
			Timeout: getDurationEnv("TAX_ORACLE_TIMEOUT", 5*time.Second),
			Enabled: getBoolEnv("TAX_ORACLE_ENABLED", false),
		},
		Pricing: PricingConfig{
			BasePay:            getFloatEnv("PRICING_BASE_PAY", 3.00),
			BasePrice:          getFloatEnv("PRICING_BASE_PRICE", 3.99),
			DistancePayPerMile: getFloatEnv("PRICING_DISTANCE_PAY_PER_MILE", 0.35),
			DistanceFeePerMile: getFloatEnv("PRICING_DISTANCE_FEE_PER_MILE", 0.15),
			TimePayPerHour:     getFloatEnv("PRICING_TIME_PAY_PER_HOUR", 8.00),
			TimeFeePerHour:     getFloatEnv("PRICING_TIME_FEE_PER_HOUR", 2.00),
			SizeBonusLarge:     getFloatEnv("PRICING_SIZE_BONUS_LARGE", 1.00),
			SizeBonusXL:        getFloatEnv("PRICING_SIZE_BONUS_XL", 2.00),
			SizeSurchargeLarge: getFloatEnv("PRICING_SIZE_SURCHARGE_LARGE", 2.00),
			SizeSurchargeXL:    getFloatEnv("PRICING_SIZE_SURCHARGE_XL", 4.00),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
