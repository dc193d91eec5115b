package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings needed to run the TreeSure API.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Listen address
	JwtSecret             string `env:"JWT_SECRET,required"`                       // HMAC secret for admin tokens
	JwtExpiryHours        int    `env:"JWT_EXPIRY_HOURS" envDefault:"12"`          // Token lifetime
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // Document store connection string
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"treesure"`      // Database holding the dashboard collections
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Allowed origins (comma separated, * = all)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow credentialed requests
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Max requests per window (0 = disabled)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Window length (seconds)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Toggle rate limiting
	// Snapshot cache (session-scoped normalized datasets)
	CacheTTLMinutes   int `env:"CACHE_TTL_MINUTES" envDefault:"30"`   // How long a cached dataset stays loadable
	CacheSweepMinutes int `env:"CACHE_SWEEP_MINUTES" envDefault:"10"` // Expired-entry sweep interval
	// Dashboard shape
	RecencyFeedSize  int    `env:"RECENCY_FEED_SIZE" envDefault:"5"`   // Entries per source in the activity feed
	TrendWindowDays  int    `env:"TREND_WINDOW_DAYS" envDefault:"30"`  // Day buckets shown on dashboard trend charts
	FetchFanoutLimit int    `env:"FETCH_FANOUT_LIMIT" envDefault:"16"` // Concurrent per-owner subcollection fetches
	FrontendURL      string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}

// getEnvPath returns the path to the env file for the current environment.
// Walks up from the working directory until it finds config/env.
func getEnvPath() string {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads configuration from the env file (if present) and the process
// environment. Uses fmt.Printf for diagnostics because the logger is not
// initialized yet at this point.
func NewConfig() *Configuration {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("No env file at %s, relying on process environment: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Failed to parse configuration: %+v\n", err)
		return nil
	}

	return &cfg
}
