package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the promotions API.
type Config struct {
	Port        string
	Env         string
	DatasetPath string
	// AllowedOrigins is the CORS allowlist; a single "*" allows every origin.
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// LoadConfig reads configuration from environment variables, after loading a
// .env file when one is present in the working directory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	datasetPath := os.Getenv("DATASET_PATH")
	if datasetPath == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve default dataset path: %w", err)
		}
		datasetPath = defaultDatasetPath(exe)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "0"))
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", os.Getenv("RATE_LIMIT_PER_MINUTE"))
	}

	return &Config{
		Port:               getEnv("PORT", "5001"),
		Env:                getEnv("APP_ENV", "development"),
		DatasetPath:        datasetPath,
		AllowedOrigins:     parseOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		RateLimitPerMinute: rateLimit,
	}, nil
}

// defaultDatasetPath places the dataset under pnp_data/ in the parent of the
// directory holding the executable.
func defaultDatasetPath(executable string) string {
	root := filepath.Dir(filepath.Dir(executable))
	return filepath.Join(root, "pnp_data", "output.json")
}

func parseOrigins(v string) []string {
	var origins []string
	for _, o := range strings.Split(v, ",") {
		o = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(o), "/"))
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
