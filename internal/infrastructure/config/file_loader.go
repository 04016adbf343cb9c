package configinfra

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	configdomain "momfit.app/cli/internal/core/domain/config"
	configports "momfit.app/cli/internal/core/ports/config"
)

// PriorityFile is the priority of values read from the YAML config file.
const PriorityFile = 3

// ConfigFileName is the file looked up inside the state directory.
const ConfigFileName = "config.yaml"

// fileConfig mirrors the YAML layout. Pointers distinguish unset from zero.
type fileConfig struct {
	APIEndpoint *string `yaml:"api_endpoint"`
	LogLevel    *string `yaml:"log_level"`
	Debug       *bool   `yaml:"debug"`
	Timeout     *string `yaml:"timeout"`
	StateDir    *string `yaml:"state_dir"`
	UserAgent   *string `yaml:"user_agent"`
}

// FileLoader reads the YAML configuration file. A missing file yields an
// empty snapshot; an unreadable or malformed one is an error.
type FileLoader struct {
	path     string
	explicit bool
}

// NewFileLoader loads from path, or from DefaultConfigPath when path is empty.
func NewFileLoader(path string) *FileLoader {
	if path == "" {
		return &FileLoader{path: DefaultConfigPath()}
	}
	return &FileLoader{path: path, explicit: true}
}

// DefaultConfigPath is <state dir>/config.yaml, honoring MOMFIT_STATE_DIR.
func DefaultConfigPath() string {
	dir := os.Getenv("MOMFIT_STATE_DIR")
	if dir == "" {
		dir = configdomain.DefaultStateDir()
	}
	return filepath.Join(dir, ConfigFileName)
}

func (l *FileLoader) Name() string { return "file" }

// Path returns the file this loader reads.
func (l *FileLoader) Path() string { return l.path }

func (l *FileLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.explicit {
			return snap, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", l.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, nil
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}

	set := func(key string, v interface{}) {
		snap.Set(key, v, "file", l.path, PriorityFile)
	}
	if fc.APIEndpoint != nil {
		set(configdomain.KeyAPIEndpoint, *fc.APIEndpoint)
	}
	if fc.LogLevel != nil {
		set(configdomain.KeyLogLevel, *fc.LogLevel)
	}
	if fc.Debug != nil {
		set(configdomain.KeyDebug, *fc.Debug)
	}
	if fc.Timeout != nil {
		set(configdomain.KeyTimeout, *fc.Timeout)
	}
	if fc.StateDir != nil {
		set(configdomain.KeyStateDir, *fc.StateDir)
	}
	if fc.UserAgent != nil {
		set(configdomain.KeyUserAgent, *fc.UserAgent)
	}
	return snap, nil
}

var _ configports.Loader = (*FileLoader)(nil)
