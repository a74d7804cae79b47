package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Route planning engine
	ArtifactDir string
	OverpassURL string
	NetworkType string

	// Elevation provider
	ElevationBaseURL string
	ElevationDataset string
	ElevationTimeout time.Duration
	ElevationBackoff time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional source
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/urgup.db"),
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),

		ArtifactDir: getEnv("GRAPH_ARTIFACT_DIR", "./data/graphs"),
		OverpassURL: getEnv("OVERPASS_URL", ""),
		NetworkType: getEnv("NETWORK_TYPE", "walking"),

		ElevationBaseURL: getEnv("ELEVATION_BASE_URL", ""),
		ElevationDataset: getEnv("ELEVATION_DATASET", ""),
		ElevationTimeout: getDuration("ELEVATION_TIMEOUT_SECONDS", 10),
		ElevationBackoff: getDuration("ELEVATION_BACKOFF_SECONDS", 1),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		log.Printf("Ignoring invalid %s=%q", key, v)
	}
	return time.Duration(fallbackSeconds) * time.Second
}
