package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the mosque API service.
// It includes the environment, server port, geocoding provider settings,
// rate-limit quota and window, and database configuration.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP API server.
// - ProviderType: The type of geocoding provider to use (nominatim, google).
// - APIKey: The API key for accessing external services (required for Google).
// - CountryCode: ISO country code used to bias/filter geocoding results.
// - ProviderRPS: Requests per second allowed against the provider API.
// - RateQuota: Admitted requests per client per window.
// - RateWindow: The duration of the rate-limit window.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string         // Env is the current environment: local, dev, prod.
	Port         int            // Port is the HTTP API server port.
	ProviderType string         // ProviderType specifies which geocoding provider to use.
	APIKey       string         // The API key for accessing external services.
	CountryCode  string         // Country filter passed to the geocoder.
	ProviderRPS  int            // Requests per second allowed against the provider API.
	RateQuota    int            // Admitted requests per client key per window.
	RateWindow   time.Duration  // Duration of the rate-limit window.
	Database     PostgresConfig // Database holds the postgres database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment (and an optional
// .env file) and returns a Config struct. It panics when a numeric or
// duration value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.AutomaticEnv()

	vpr.SetDefault("MOSQUE_ENV", "production")
	vpr.SetDefault("MOSQUE_PORT", 8080)
	vpr.SetDefault("MOSQUE_PROVIDER_TYPE", "nominatim")
	vpr.SetDefault("MOSQUE_COUNTRY_CODE", "kr")
	vpr.SetDefault("MOSQUE_PROVIDER_RATE_LIMIT", 10)
	vpr.SetDefault("MOSQUE_RATE_QUOTA", 200)
	vpr.SetDefault("MOSQUE_RATE_WINDOW", "1h")
	vpr.SetDefault("DB_PORT", "5432")

	port := vpr.GetInt("MOSQUE_PORT")
	if port <= 0 {
		panic("failed to parse port for API server from configuration")
	}

	quota := vpr.GetInt("MOSQUE_RATE_QUOTA")
	if quota <= 0 {
		panic("failed to parse rate quota from configuration, must be a positive integer")
	}

	window := vpr.GetDuration("MOSQUE_RATE_WINDOW")
	if window <= 0 {
		panic("failed to parse rate window from configuration")
	}

	return &Config{
		Env:          vpr.GetString("MOSQUE_ENV"),
		Port:         port,
		ProviderType: vpr.GetString("MOSQUE_PROVIDER_TYPE"),
		APIKey:       vpr.GetString("MOSQUE_PROVIDER_KEY"),
		CountryCode:  vpr.GetString("MOSQUE_COUNTRY_CODE"),
		ProviderRPS:  vpr.GetInt("MOSQUE_PROVIDER_RATE_LIMIT"),
		RateQuota:    quota,
		RateWindow:   window,
		Database: PostgresConfig{
			Host:     vpr.GetString("DB_HOST"),
			Port:     vpr.GetString("DB_PORT"),
			User:     vpr.GetString("DB_USERNAME"),
			Password: vpr.GetString("DB_PASSWORD"),
			Name:     vpr.GetString("DB_NAME"),
		},
	}
}
