package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted in STORAGE_BACKEND
const (
	StorageJSON  = "json"
	StorageNeo4j = "neo4j"
)

// Config contains runtime settings for the MCP server
type Config struct {
	LogLevel  string
	LogFormat string // json or console
	Host      string // default 0.0.0.0
	Port      string // default PORT env or 8080

	HeadHunter struct {
		BaseURL   string
		UserAgent string
	}
	SuperJob struct {
		BaseURL string
		APIKey  string // empty disables the provider
	}

	HTTPTimeout  time.Duration
	CheckURLs    bool
	CheckURLsRPS float64

	StorageBackend string
	Neo4j          struct {
		URI      string
		Username string
		Password string
		Database string
	}

	SheetsCredentialsPath string
}

// Load populates config from environment variables. A .env file (or ENV_FILE)
// seeds variables that are not already set.
func Load() (Config, error) {
	if err := loadDotenv(envOr("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	cfg := Config{
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		Host:           envOr("MCP_HOST", "0.0.0.0"),
		Port:           envOr("PORT", "8080"),
		StorageBackend: strings.ToLower(envOr("STORAGE_BACKEND", StorageJSON)),
	}

	cfg.HeadHunter.BaseURL = os.Getenv("HH_BASE_URL")
	cfg.HeadHunter.UserAgent = os.Getenv("HH_USER_AGENT")

	cfg.SuperJob.BaseURL = os.Getenv("SUPERJOB_BASE_URL")
	cfg.SuperJob.APIKey = os.Getenv("SUPERJOB_API_KEY")
	if cfg.SuperJob.APIKey == "" {
		cfg.SuperJob.APIKey = os.Getenv("SuperJob_API")
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = os.Getenv("NEO4J_DATABASE")

	cfg.SheetsCredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	var problems []error

	timeout, err := durationEnv("HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		problems = append(problems, err)
	}
	cfg.HTTPTimeout = timeout

	check, err := boolEnv("CHECK_URLS", true)
	if err != nil {
		problems = append(problems, err)
	}
	cfg.CheckURLs = check

	rps, err := floatEnv("CHECK_URLS_RPS", 5)
	if err != nil {
		problems = append(problems, err)
	}
	cfg.CheckURLsRPS = rps

	switch cfg.StorageBackend {
	case StorageJSON:
	case StorageNeo4j:
		var missingVars []string
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
		if len(missingVars) > 0 {
			problems = append(problems, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", ")))
		}
	default:
		problems = append(problems, fmt.Errorf("STORAGE_BACKEND: unknown backend %q (want %s or %s)", cfg.StorageBackend, StorageJSON, StorageNeo4j))
	}

	if len(problems) > 0 {
		return cfg, errors.Join(problems...)
	}

	return cfg, nil
}

func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}
