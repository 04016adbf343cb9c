package configinfra

import (
	"context"
	"os"

	configdomain "momfit.app/cli/internal/core/domain/config"
	configports "momfit.app/cli/internal/core/ports/config"
)

// PriorityEnv is the priority of MOMFIT_* environment variables.
const PriorityEnv = 2

// EnvVars maps environment variables to configuration keys.
var EnvVars = map[string]string{
	"MOMFIT_API_ENDPOINT": configdomain.KeyAPIEndpoint,
	"MOMFIT_LOG_LEVEL":    configdomain.KeyLogLevel,
	"MOMFIT_DEBUG":        configdomain.KeyDebug,
	"MOMFIT_TIMEOUT":      configdomain.KeyTimeout,
	"MOMFIT_STATE_DIR":    configdomain.KeyStateDir,
	"MOMFIT_USER_AGENT":   configdomain.KeyUserAgent,
}

type EnvLoader struct {
	lookup func(string) (string, bool)
}

func NewEnvLoader() *EnvLoader { return &EnvLoader{lookup: os.LookupEnv} }


func (l *EnvLoader) Name() string { return "env" }

// Load returns a snapshot of the set MOMFIT_* variables. Values stay strings;
// typing happens in configdomain.FromSnapshot.
func (l *EnvLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	for env, key := range EnvVars {
		if v, ok := l.lookup(env); ok && v != "" {
			snap.Set(key, v, "env", env, PriorityEnv)
		}
	}
	return snap, nil
}

var _ configports.Loader = (*EnvLoader)(nil)
