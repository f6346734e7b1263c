package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yml", `
provider:
  name: catalog
  total_count_header: X-Total
  batch_concurrency: 8
  http:
    base_url: https://api.example.com
    timeout: 5s
logging:
  level: debug
  format: json
`)

	var cfg Config
	if err := Load(&cfg, WithConfigFile(file)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider.Name != "catalog" {
		t.Errorf("Provider.Name = %s, want catalog", cfg.Provider.Name)
	}
	if cfg.Provider.TotalCountHeader != "X-Total" {
		t.Errorf("TotalCountHeader = %s, want X-Total", cfg.Provider.TotalCountHeader)
	}
	if cfg.Provider.BatchConcurrency != 8 {
		t.Errorf("BatchConcurrency = %d, want 8", cfg.Provider.BatchConcurrency)
	}
	if cfg.Provider.HTTP.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %s, want https://api.example.com", cfg.Provider.HTTP.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yml", `
provider:
  http:
    base_url: https://api.example.com
`)

	var cfg Config
	if err := Load(&cfg, WithConfigFile(file)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider.Name != "rest" {
		t.Errorf("Provider.Name = %s, want rest", cfg.Provider.Name)
	}
	if cfg.Provider.TotalCountHeader != "X-Total-Count" {
		t.Errorf("TotalCountHeader = %s, want X-Total-Count", cfg.Provider.TotalCountHeader)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yml", `
provider:
  http:
    base_url: https://file.example.com
logging:
  level: warn
`)

	t.Setenv("RESTDATA_PROVIDER_HTTP_BASE_URL", "https://env.example.com")
	t.Setenv("RESTDATA_LOGGING_LEVEL", "error")

	var cfg Config
	if err := Load(&cfg, WithConfigFile(file)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider.HTTP.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %s, want env override", cfg.Provider.HTTP.BaseURL)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %s, want error", cfg.Logging.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "RESTDATA_PROVIDER_HTTP_BASE_URL=https://dotenv.example.com\n")

	var cfg Config
	if err := Load(&cfg, WithEnvFile(env)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("RESTDATA_PROVIDER_HTTP_BASE_URL") })

	if cfg.Provider.HTTP.BaseURL != "https://dotenv.example.com" {
		t.Errorf("BaseURL = %s, want https://dotenv.example.com", cfg.Provider.HTTP.BaseURL)
	}
}

func TestLoadMissingBaseURL(t *testing.T) {
	var cfg Config
	if err := Load(&cfg, WithConfigFile(filepath.Join(t.TempDir(), "absent.yml"))); err == nil {
		t.Fatal("Load() error = nil, want validation failure for missing base_url")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("provider_http_base_url")

	want := "provider.http.base_url"
	found := false
	for _, v := range variants {
		if v == want {
			found = true
		}
	}
	if !found {
		t.Errorf("envKeyVariants() = %v, want to include %q", variants, want)
	}
}
