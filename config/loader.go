package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix scopes environment overrides, e.g. RESTDATA_PROVIDER_HTTP_BASE_URL.
const envPrefix = "RESTDATA_"

// FileSystem abstracts file operations so loading is testable without
// touching the real filesystem.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load populates cfg from the configured sources, applies defaults, and
// validates the result. When no config file is given it searches
// ./config.yml and ./config/config.yml.
func Load(cfg *Config, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.ConfigFile == "" {
		lc.ConfigFile = findConfigFile(lc.FileSystem)
	}
	if lc.EnvFile == "" && lc.FileSystem.Exists(".env") {
		lc.EnvFile = ".env"
	}

	v := viper.New()

	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", lc.ConfigFile, err)
		}
	}

	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			return fmt.Errorf("config: load %s: %w", lc.EnvFile, err)
		}
	}

	bindEnvOverrides(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg.Validate()
}

// findConfigFile searches standard locations for a config file.
func findConfigFile(fs FileSystem) string {
	for _, path := range []string{"./config.yml", "./config.yaml", "./config/config.yml"} {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvOverrides maps RESTDATA_-prefixed environment variables onto
// nested config keys. Section names are single words, so the first two
// underscores delimit section and the rest stays a flat key, with a
// fully-dotted variant bound as well for deeper nesting.
func bindEnvOverrides(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], envPrefix) {
			continue
		}

		key := strings.ToLower(strings.TrimPrefix(pair[0], envPrefix))
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants expands provider_http_base_url into the key shapes the
// config struct can be addressed by: provider.http_base_url,
// provider.http.base_url, provider.http.base.url, ...
func envKeyVariants(key string) []string {
	parts := strings.Split(key, "_")
	if len(parts) <= 1 {
		return []string{key}
	}

	variants := make([]string, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}
	variants = append(variants, strings.Join(parts, "."))
	return variants
}
