package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	RedisAddr         string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	LogLevel          string
	LogFormat         string
	Pesapal           PesapalConfig
}

// PesapalConfig holds credentials and endpoints for the Pesapal gateway.
type PesapalConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	NotificationID string
	Currency       string
	Timeout        time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Redis address is optional; empty disables the gateway token cache.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	// Pesapal gateway credentials are required; the payment module cannot
	// initiate or reconcile orders without them.
	cfg.Pesapal.ConsumerKey = os.Getenv("PESAPAL_CONSUMER_KEY")
	if cfg.Pesapal.ConsumerKey == "" {
		return nil, fmt.Errorf("PESAPAL_CONSUMER_KEY is required")
	}
	cfg.Pesapal.ConsumerSecret = os.Getenv("PESAPAL_CONSUMER_SECRET")
	if cfg.Pesapal.ConsumerSecret == "" {
		return nil, fmt.Errorf("PESAPAL_CONSUMER_SECRET is required")
	}
	cfg.Pesapal.CallbackURL = os.Getenv("PESAPAL_CALLBACK_URL")
	if cfg.Pesapal.CallbackURL == "" {
		return nil, fmt.Errorf("PESAPAL_CALLBACK_URL is required")
	}
	cfg.Pesapal.NotificationID = os.Getenv("PESAPAL_NOTIFICATION_ID")
	if cfg.Pesapal.NotificationID == "" {
		return nil, fmt.Errorf("PESAPAL_NOTIFICATION_ID is required")
	}

	cfg.Pesapal.BaseURL = getEnv("PESAPAL_BASE_URL", "https://pay.pesapal.com/v3")
	cfg.Pesapal.Currency = getEnv("PESAPAL_CURRENCY", "UGX")
	cfg.Pesapal.Timeout, err = getEnvAsDuration("PESAPAL_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid PESAPAL_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}
