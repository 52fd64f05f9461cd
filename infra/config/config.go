package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application-level configuration.
type Config struct {
	APIURL      string        // e.g. "https://api.espectro.app"
	SessionPath string        // file holding the session token
	UIStatePath string        // persisted tab and search
	LogFile     string        // empty disables logging
	LogLevel    string        // debug, info, warn, error
	Timeout     time.Duration // per-request HTTP timeout
	RateLimit   float64       // requests per second; 0 disables pacing
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables.
//
//	ESPECTRO_API_URL     gateway base URL (default: https://api.espectro.app)
//	ESPECTRO_SESSION     session token file (default: ~/.config/espectro/session)
//	ESPECTRO_UI_STATE    UI state file (default: ~/.config/espectro/ui_state.json)
//	ESPECTRO_LOG_FILE    log file (default: ~/.config/espectro/espectro.log)
//	ESPECTRO_LOG_LEVEL   log level (default: info)
//	ESPECTRO_TIMEOUT     HTTP timeout (default: 15s)
//	ESPECTRO_RATE_LIMIT  requests per second (default: 5)
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "espectro")

	v := viper.New()
	v.SetEnvPrefix("espectro")
	v.AutomaticEnv()
	v.SetDefault("api_url", "https://api.espectro.app")
	v.SetDefault("session", filepath.Join(dir, "session"))
	v.SetDefault("ui_state", filepath.Join(dir, "ui_state.json"))
	v.SetDefault("log_file", filepath.Join(dir, "espectro.log"))
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", "15s")
	v.SetDefault("rate_limit", 5)

	apiURL, err := normalizeAPIURL(v.GetString("api_url"))
	if err != nil {
		return Config{}, err
	}
	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		return Config{}, fmt.Errorf("invalid ESPECTRO_TIMEOUT %q: must be a positive duration", v.GetString("timeout"))
	}
	rate := v.GetFloat64("rate_limit")
	if rate < 0 {
		return Config{}, fmt.Errorf("invalid ESPECTRO_RATE_LIMIT: must not be negative")
	}

	return Config{
		APIURL:      apiURL,
		SessionPath: v.GetString("session"),
		UIStatePath: v.GetString("ui_state"),
		LogFile:     v.GetString("log_file"),
		LogLevel:    strings.ToLower(v.GetString("log_level")),
		Timeout:     timeout,
		RateLimit:   rate,
	}, nil
}

// normalizeAPIURL requires an absolute URL, https unless the host is loopback.
func normalizeAPIURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid ESPECTRO_API_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", fmt.Errorf("invalid ESPECTRO_API_URL: only https is allowed for non-local hosts")
		}
	default:
		return "", fmt.Errorf("invalid ESPECTRO_API_URL: unsupported scheme %q", parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
