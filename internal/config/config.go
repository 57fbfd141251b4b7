package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr       string
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	CORSOrigin string
	// Redis backs refresh sessions and the persisted collections.
	RedisURL string
	// Meilisearch is optional; search falls back to an in-memory scan.
	MeiliURL       string
	MeiliMasterKey string
	// MutationDelay is the artificial latency applied before every
	// create/update/delete, modeling the dashboard's simulated round-trip.
	MutationDelay time.Duration
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":8793"),
		JWTSecret:      getenv("CATALYST_JWT_SECRET", "catalyst-dev-secret"),
		AccessTTL:      time.Duration(getenvInt("CATALYST_ACCESS_TTL_SECONDS", 900)) * time.Second,
		RefreshTTL:     time.Duration(getenvInt("CATALYST_REFRESH_TTL_SECONDS", 2592000)) * time.Second,
		CORSOrigin:     getenv("CATALYST_CORS_ORIGIN", "*"),
		RedisURL:       getenv("REDIS_URL", "redis://localhost:6379/0"),
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
		MutationDelay:  time.Duration(getenvInt("CATALYST_MUTATION_DELAY_MS", 400)) * time.Millisecond,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
