package configdomain

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Configuration keys shared by all loaders.
const (
	KeyAPIEndpoint = "api_endpoint"
	KeyLogLevel    = "log_level"
	KeyDebug       = "debug"
	KeyTimeout     = "timeout"
	KeyStateDir    = "state_dir"
	KeyUserAgent   = "user_agent"
)

const (
	DefaultAPIEndpoint = "https://api.momfit.app"
	DefaultLogLevel    = "info"
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "momfit-cli/1.0"
)

// Config is the typed view over a merged Snapshot.
type Config struct {
	APIEndpoint string
	LogLevel    string
	Debug       bool
	Timeout     time.Duration
	StateDir    string
	UserAgent   string

	// Sources records which loader won each key.
	Sources map[string]Entry
}

// DefaultStateDir returns ~/.config/momfit, falling back to the working dir.
func DefaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "momfit")
	}
	return ".momfit"
}

// Default returns the configuration used when no source sets a key.
func Default() *Config {
	return &Config{
		APIEndpoint: DefaultAPIEndpoint,
		LogLevel:    DefaultLogLevel,
		Timeout:     DefaultTimeout,
		StateDir:    DefaultStateDir(),
		UserAgent:   DefaultUserAgent,
		Sources:     map[string]Entry{},
	}
}

// FromSnapshot applies snap on top of the defaults. Values of the wrong type
// are rejected rather than silently ignored.
func FromSnapshot(snap Snapshot) (*Config, error) {
	cfg := Default()
	for key, e := range snap {
		var err error
		switch key {
		case KeyAPIEndpoint:
			cfg.APIEndpoint, err = asString(e.Value)
		case KeyLogLevel:
			cfg.LogLevel, err = asString(e.Value)
		case KeyDebug:
			cfg.Debug, err = asBool(e.Value)
		case KeyTimeout:
			cfg.Timeout, err = asDuration(e.Value)
		case KeyStateDir:
			cfg.StateDir, err = asString(e.Value)
		case KeyUserAgent:
			cfg.UserAgent, err = asString(e.Value)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s from %s (%s): %w", key, e.Source, e.SourcePath, err)
		}
		cfg.Sources[key] = e
	}
	cfg.APIEndpoint = strings.TrimRight(cfg.APIEndpoint, "/")
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// Validate checks the values the HTTP client depends on.
func (c *Config) Validate() error {
	if c.APIEndpoint == "" {
		return fmt.Errorf("api endpoint cannot be empty")
	}
	u, err := url.Parse(c.APIEndpoint)
	if err != nil {
		return fmt.Errorf("invalid api endpoint %q: %w", c.APIEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api endpoint must be an absolute http(s) URL, got %q", c.APIEndpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state dir cannot be empty")
	}
	return nil
}

// Source reports where key came from, "default" when no loader set it.
func (c *Config) Source(key string) string {
	if e, ok := c.Sources[key]; ok {
		if e.SourcePath != "" {
			return fmt.Sprintf("%s (%s)", e.Source, e.SourcePath)
		}
		return e.Source
	}
	return "default"
}

func asString(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	}
	return "", fmt.Errorf("expected string, got %T", v)
}

func asBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(t)
	}
	return false, fmt.Errorf("expected bool, got %T", v)
}

func asDuration(v interface{}) (time.Duration, error) {
	switch t := v.(type) {
	case time.Duration:
		return t, nil
	case string:
		return time.ParseDuration(t)
	case int:
		return time.Duration(t) * time.Second, nil
	}
	return 0, fmt.Errorf("expected duration, got %T", v)
}
