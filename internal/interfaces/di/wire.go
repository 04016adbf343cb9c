//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"github.com/hashicorp/go-hclog"

	configdomain "momfit.app/cli/internal/core/domain/config"
)

// InitializeContainer builds the dependency graph for cfg.
func InitializeContainer(cfg *configdomain.Config, logger hclog.Logger) (*Container, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
