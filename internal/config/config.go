package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         string
	DBPath       string
	JWTSecret    string
	NominatimURL string

	// Rate limiting
	RateLimit  int
	RateWindow time.Duration

	// Offline watchdog sweep interval
	OfflineSweep time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[Config] Loaded .env file")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/tracking.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	nominatimURL := os.Getenv("NOMINATIM_URL")
	if nominatimURL == "" {
		nominatimURL = "https://nominatim.openstreetmap.org"
	}

	return &Config{
		Port:         port,
		DBPath:       dbPath,
		JWTSecret:    jwtSecret,
		NominatimURL: nominatimURL,
		RateLimit:    envInt("RATE_LIMIT", 120),
		RateWindow:   time.Minute,
		OfflineSweep: 30 * time.Second,
	}
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[Config] Invalid %s=%q, using default %d", key, raw, def)
		return def
	}
	return v
}
