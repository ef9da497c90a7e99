package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment
const ENV_PROD = "prod"
const DEFAULT_ENV = "dev"
const DEFAULT_ADDR = ":8080"
const DEFAULT_LOG_LEVEL = "info"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Deals sheet. Empty means the bundled fixture is served.
const DEFAULT_SHEET_CSV_URL = ""

// Deals refresher config
const DEALS_REFRESHER_SCHEDULE_MINUTES = 30

// Google Geocoding API
const GOOGLE_GEOCODING_ENDPOINT_BASE = "https://maps.googleapis.com/maps/api"
const GEOCODE_CONCURRENCY = 4

// Local time used to decide "today" for happening-now.
const DEFAULT_TIMEZONE = "America/New_York"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const DEALS_CSV_RESOURCE = "deals.csv"

// Config holds runtime configuration shared across the application.
type Config struct {
	Env                string
	Addr               string
	SheetCSVURL        string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	GoogleMapsAPIKey   string
	GeocodingEndpoint  string
	GeocodeConcurrency int
	RefreshInterval    time.Duration
	AutoHappeningNow   bool
	Timezone           string
	LogLevel           string
}

// Load reads environment variables on top of the defaults above.
func Load() Config {
	cfg := Config{
		Env:                envOr("HH_ENV", DEFAULT_ENV),
		Addr:               envOr("HH_ADDR", DEFAULT_ADDR),
		SheetCSVURL:        envOr("SHEET_CSV_URL", DEFAULT_SHEET_CSV_URL),
		RedisAddr:          envOr("REDIS_ADDR", REDIS_DB_ADDRESS),
		RedisPassword:      envOr("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:            REDIS_DB,
		GoogleMapsAPIKey:   strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		GeocodingEndpoint:  envOr("GEOCODING_ENDPOINT", GOOGLE_GEOCODING_ENDPOINT_BASE),
		GeocodeConcurrency: GEOCODE_CONCURRENCY,
		RefreshInterval:    DEALS_REFRESHER_SCHEDULE_MINUTES * time.Minute,
		AutoHappeningNow:   true,
		Timezone:           envOr("TIMEZONE", DEFAULT_TIMEZONE),
		LogLevel:           strings.ToLower(envOr("LOG_LEVEL", DEFAULT_LOG_LEVEL)),
	}

	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			cfg.RedisDB = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("REFRESH_INTERVAL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			cfg.RefreshInterval = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("GEOCODE_CONCURRENCY")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.GeocodeConcurrency = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("AUTO_HAPPENING_NOW")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			cfg.AutoHappeningNow = parsed
		}
	}

	return cfg
}

// IsProd reports whether real external services should be used.
func (c Config) IsProd() bool {
	return c.Env == ENV_PROD
}

// Location resolves the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
