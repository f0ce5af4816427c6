package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "suitlink"
	ConfigFileName  = "config.json"
	CookiesFileName = "cookies.json"
	DotEnvFileName  = ".env"
)

const DefaultBaseURL = "http://localhost:8888/api/v1"

// Config contains client defaults. Environment values seed the defaults and
// the config file overrides them.
type Config struct {
	BaseURL          string `json:"base_url"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	DefaultLimit     int    `json:"default_limit"`
	SearchDebounceMS int    `json:"search_debounce_ms"`
	CountConcurrency int    `json:"count_concurrency"`
	SessionCookie    string `json:"session_cookie"`
	Proxy            string `json:"proxy,omitempty"`
	MaxResumeMB      int    `json:"max_resume_mb"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:          envString("SUITLINK_BASE_URL", DefaultBaseURL),
		TimeoutSeconds:   envInt("SUITLINK_TIMEOUT_SECONDS", 30),
		DefaultLimit:     envInt("SUITLINK_DEFAULT_LIMIT", 10),
		SearchDebounceMS: envInt("SUITLINK_SEARCH_DEBOUNCE_MS", 500),
		CountConcurrency: envInt("SUITLINK_COUNT_CONCURRENCY", 8),
		SessionCookie:    envString("SUITLINK_SESSION_COOKIE", "token"),
		Proxy:            envString("SUITLINK_PROXY", ""),
		MaxResumeMB:      envInt("SUITLINK_MAX_RESUME_MB", 5),
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

func (c Config) MaxResumeBytes() int64 {
	return int64(c.MaxResumeMB) * 1024 * 1024
}

func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("SUITLINK_CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func CookiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, CookiesFileName), nil
}

// LoadDotEnv loads .env from the working directory when present. Variables
// already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(DotEnvFileName); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	return loadFile(path, cfg)
}

func loadFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// Init writes a default config.json if it doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
