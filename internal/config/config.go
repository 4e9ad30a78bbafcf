package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/recetasfaciles/recetas/internal/kv"
	"github.com/recetasfaciles/recetas/internal/mealdb"
)

// Config holds everything recetas reads at startup.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	Storage        string
	StoragePath    string
	LogLevel       string
	LogFormat      string
	LogPath        string
	AuthorName     string
	AuthorURL      string
}

const (
	defaultConfigPath  = "~/.config/recetas/config.toml"
	defaultStoragePath = "~/.local/share/recetas/storage.json"
	defaultSQLitePath  = "~/.local/share/recetas/storage.db"
	defaultLogPath     = "~/.local/state/recetas/recetas.log"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultDotEnvPath  = ".env"
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		APIBaseURL:     mealdb.DefaultBaseURL,
		RequestTimeout: mealdb.DefaultRequestTimeout,
		Storage:        kv.BackendFile,
		StoragePath:    mustExpand(defaultStoragePath),
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		LogPath:        mustExpand(defaultLogPath),
	}
}

type fileConfig struct {
	APIBaseURL     string `toml:"api_base_url"`
	RequestTimeout string `toml:"request_timeout"`
	Storage        string `toml:"storage"`
	StoragePath    string `toml:"storage_path"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	LogPath        string `toml:"log_path"`
	AuthorName     string `toml:"author_name"`
	AuthorURL      string `toml:"author_url"`
}

// Load reads the TOML config at path (or the default location), then a
// .env file from the working directory, then environment overrides. A
// missing config or .env file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	if err := readFile(resolved, &raw); err != nil {
		return Config{}, err
	}
	if err := loadDotEnv(defaultDotEnvPath); err != nil {
		return Config{}, err
	}
	applyEnv(&raw, os.LookupEnv)

	return build(raw)
}

func readFile(path string, raw *fileConfig) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// loadDotEnv never overrides variables already set in the environment.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// applyEnv lets set variables replace file values. The first listed name
// of each pair wins.
func applyEnv(raw *fileConfig, lookup func(string) (string, bool)) {
	overrides := []struct {
		dst   *string
		names []string
	}{
		{&raw.APIBaseURL, []string{"RECETAS_API_BASE_URL", "NEXT_PUBLIC_API_BASE_URL"}},
		{&raw.RequestTimeout, []string{"RECETAS_REQUEST_TIMEOUT"}},
		{&raw.Storage, []string{"RECETAS_STORAGE"}},
		{&raw.StoragePath, []string{"RECETAS_STORAGE_PATH"}},
		{&raw.LogLevel, []string{"RECETAS_LOG_LEVEL"}},
		{&raw.LogFormat, []string{"RECETAS_LOG_FORMAT"}},
		{&raw.LogPath, []string{"RECETAS_LOG_PATH"}},
		{&raw.AuthorName, []string{"RECETAS_AUTHOR_NAME", "NEXT_PUBLIC_PORTF_NAME"}},
		{&raw.AuthorURL, []string{"RECETAS_AUTHOR_URL", "NEXT_PUBLIC_PORTF_URL"}},
	}
	for _, o := range overrides {
		for _, name := range o.names {
			if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
				*o.dst = v
				break
			}
		}
	}
}

func build(raw fileConfig) (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("request_timeout must be positive, got %s", v)
		}
		cfg.RequestTimeout = d
	}

	switch v := strings.ToLower(strings.TrimSpace(raw.Storage)); v {
	case "":
	case kv.BackendFile, kv.BackendSQLite:
		cfg.Storage = v
	default:
		return Config{}, fmt.Errorf("unknown storage %q (want %s or %s)", raw.Storage, kv.BackendFile, kv.BackendSQLite)
	}

	if v := strings.TrimSpace(raw.StoragePath); v != "" {
		cfg.StoragePath = mustExpand(v)
	} else if cfg.Storage == kv.BackendSQLite {
		cfg.StoragePath = mustExpand(defaultSQLitePath)
	}

	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = v
		if !isStream(v) {
			cfg.LogPath = mustExpand(v)
		}
	}

	cfg.AuthorName = strings.TrimSpace(raw.AuthorName)
	cfg.AuthorURL = strings.TrimSpace(raw.AuthorURL)
	return cfg, nil
}

// isStream reports whether path names a logging stream instead of a file.
func isStream(path string) bool {
	switch strings.ToLower(path) {
	case "stdout", "stderr", "discard":
		return true
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
