package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var allKeys = []string{
	"LOG_LEVEL", "LOG_FORMAT", "MCP_HOST", "PORT",
	"HH_BASE_URL", "HH_USER_AGENT", "SUPERJOB_BASE_URL", "SUPERJOB_API_KEY", "SuperJob_API",
	"HTTP_TIMEOUT", "CHECK_URLS", "CHECK_URLS_RPS", "STORAGE_BACKEND",
	"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE",
	"GOOGLE_SHEETS_CREDENTIALS_PATH",
}

// clearEnv unsets every variable Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("log settings = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != "8080" {
		t.Errorf("addr = %s:%s", cfg.Host, cfg.Port)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if !cfg.CheckURLs || cfg.CheckURLsRPS != 5 {
		t.Errorf("CheckURLs = %v, rps = %v", cfg.CheckURLs, cfg.CheckURLsRPS)
	}
	if cfg.StorageBackend != StorageJSON {
		t.Errorf("StorageBackend = %q", cfg.StorageBackend)
	}
	if cfg.SuperJob.APIKey != "" {
		t.Errorf("SuperJob.APIKey = %q, want empty", cfg.SuperJob.APIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("CHECK_URLS", "false")
	t.Setenv("CHECK_URLS_RPS", "0.5")
	t.Setenv("SuperJob_API", "legacy-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.HTTPTimeout != 3*time.Second || cfg.CheckURLs || cfg.CheckURLsRPS != 0.5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.SuperJob.APIKey != "legacy-key" {
		t.Errorf("SuperJob.APIKey = %q, want legacy-key", cfg.SuperJob.APIKey)
	}

	t.Setenv("SUPERJOB_API_KEY", "new-key")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SuperJob.APIKey != "new-key" {
		t.Errorf("SuperJob.APIKey = %q, want new-key", cfg.SuperJob.APIKey)
	}
}

func TestLoadNeo4jRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "neo4j")
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "NEO4J_USERNAME") || !strings.Contains(msg, "NEO4J_PASSWORD") {
		t.Errorf("error should list missing vars: %v", err)
	}
	if strings.Contains(msg, "NEO4J_URI") {
		t.Errorf("NEO4J_URI is set but reported missing: %v", err)
	}
}

func TestLoadAggregatesInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("CHECK_URLS", "maybe")
	t.Setenv("STORAGE_BACKEND", "postgres")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"HTTP_TIMEOUT", "CHECK_URLS", "STORAGE_BACKEND"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %s: %v", want, err)
		}
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "SUPERJOB_API_KEY=from-file\nPORT=7070\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SuperJob.APIKey != "from-file" {
		t.Errorf("SuperJob.APIKey = %q, want from-file", cfg.SuperJob.APIKey)
	}
	if cfg.Port != "6060" {
		t.Errorf("Port = %q, process env should win over .env", cfg.Port)
	}
}
