package config

import (
	"os"
	"strconv"
	"time"

	"asset_bridge/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Marketplace treasury account credited with the fee cut of every sale.
	TreasuryAddress string

	// Block clock
	BlockInterval time.Duration

	// Rate limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	// Per-caller limit on trading endpoints
	TradeRateLimit  int
	TradeRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

const defaultTreasury = "0x0000000000000000000000000000000000000001"

// Load reads configuration from the environment, falling back to defaults
// where a value is optional. Missing DATABASE_URL or JWT_SECRET is fatal.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	treasury := os.Getenv("TREASURY_ADDRESS")
	if treasury == "" {
		treasury = defaultTreasury
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		TreasuryAddress: treasury,

		BlockInterval: envDuration("BLOCK_INTERVAL_MS", 2000) * time.Millisecond,

		APIRateLimit:    envInt("API_RATE_LIMIT", 60),
		APIRateWindow:   envDuration("API_RATE_WINDOW_SECONDS", 60) * time.Second,
		AuthRateLimit:   envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:  envDuration("AUTH_RATE_WINDOW_SECONDS", 60) * time.Second,
		TradeRateLimit:  envInt("TRADE_RATE_LIMIT", 30),
		TradeRateWindow: envDuration("TRADE_RATE_WINDOW_SECONDS", 60) * time.Second,

		LogLevel: os.Getenv("LOG_LEVEL"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(key string, def int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(def)
}
