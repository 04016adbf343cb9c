package appconfig

import (
	"context"
	"fmt"

	configdomain "momfit.app/cli/internal/core/domain/config"
	configports "momfit.app/cli/internal/core/ports/config"
)

// PriorityCLI is the priority of values passed as command line flags.
const PriorityCLI = 1

// Aggregator merges multiple loader snapshots, honoring priorities.
type Aggregator struct {
	loaders    []configports.Loader
	validators []configports.Validator
}

func NewAggregator(loaders ...configports.Loader) *Aggregator {
	return &Aggregator{loaders: loaders}
}

// WithValidators adds checks that run after the built-in validation.
func (a *Aggregator) WithValidators(validators ...configports.Validator) *Aggregator {
	a.validators = append(a.validators, validators...)
	return a
}

// LoadSnapshot returns the merged snapshot, with overrides taking priority 1.
// A loader failure aborts the load; a missing source is not a failure.
func (a *Aggregator) LoadSnapshot(ctx context.Context, overrides map[string]interface{}) (configdomain.Snapshot, error) {
	snap := make(configdomain.Snapshot)
	for field, v := range overrides {
		snap.Set(field, v, "cli", "command_line_flag", PriorityCLI)
	}

	for _, l := range a.loaders {
		s, err := l.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", l.Name(), err)
		}
		snap.Merge(s)
	}
	return snap, nil
}

// Load merges all sources and returns the validated typed configuration.
func (a *Aggregator) Load(ctx context.Context, overrides map[string]interface{}) (*configdomain.Config, error) {
	snap, err := a.LoadSnapshot(ctx, overrides)
	if err != nil {
		return nil, err
	}
	cfg, err := configdomain.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, v := range a.validators {
		if err := v.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}
