package configinfra

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"

	configdomain "momfit.app/cli/internal/core/domain/config"
	configports "momfit.app/cli/internal/core/ports/config"
)

const (
	minTimeout = 1 * time.Second
	maxTimeout = 5 * time.Minute
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// ConfigValidator checks configuration values beyond their types.
type ConfigValidator struct {
	logger hclog.Logger
}

// NewConfigValidator creates a validator that reports warnings to logger.
func NewConfigValidator(logger hclog.Logger) *ConfigValidator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ConfigValidator{logger: logger}
}

// Validate runs every check and joins the failures.
func (v *ConfigValidator) Validate(cfg *configdomain.Config) error {
	return errors.Join(
		v.ValidateAPIEndpoint(cfg.APIEndpoint),
		v.ValidateLogLevel(cfg.LogLevel),
		v.ValidateTimeout(cfg.Timeout),
		v.ValidateStateDir(cfg.StateDir),
	)
}

// ValidateAPIEndpoint validates an API endpoint URL
func (v *ConfigValidator) ValidateAPIEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("API endpoint cannot be empty")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %s (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include host")
	}

	// The session cookie travels with every request.
	if u.Scheme == "http" && !isLoopback(u.Hostname()) {
		v.logger.Warn("using non-HTTPS endpoint for a remote host", "endpoint", endpoint)
	}
	return nil
}

// ValidateLogLevel validates log level value
func (v *ConfigValidator) ValidateLogLevel(level string) error {
	normalized := strings.ToLower(strings.TrimSpace(level))
	for _, valid := range validLogLevels {
		if normalized == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (valid levels: %s)", level, strings.Join(validLogLevels, ", "))
}

// ValidateTimeout validates the per-request timeout
func (v *ConfigValidator) ValidateTimeout(timeout time.Duration) error {
	if timeout < minTimeout {
		return fmt.Errorf("timeout too short (minimum %s)", minTimeout)
	}
	if timeout > maxTimeout {
		return fmt.Errorf("timeout too long (maximum %s)", maxTimeout)
	}
	return nil
}

// ValidateStateDir checks that the state directory exists or can be created.
func (v *ConfigValidator) ValidateStateDir(path string) error {
	if path == "" {
		return fmt.Errorf("state directory cannot be empty")
	}

	expanded := expandPath(path)
	info, err := os.Stat(expanded)
	if err != nil {
		// ENOTDIR means a file sits where an ancestor directory should be.
		if !os.IsNotExist(err) && !errors.Is(err, syscall.ENOTDIR) {
			return fmt.Errorf("failed to check state directory: %w", err)
		}
		// Created on first save; only the nearest ancestor must be a directory.
		for dir := filepath.Dir(expanded); ; dir = filepath.Dir(dir) {
			if parent, err := os.Stat(dir); err == nil {
				if !parent.IsDir() {
					return fmt.Errorf("state directory parent is not a directory: %s", dir)
				}
				return nil
			}
			if dir == filepath.Dir(dir) {
				return nil
			}
		}
	}
	if !info.IsDir() {
		return fmt.Errorf("state path exists but is not a directory: %s", path)
	}
	return nil
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(homeDir, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

var _ configports.Validator = (*ConfigValidator)(nil)
