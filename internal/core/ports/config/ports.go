package configports

import (
	"context"

	configdomain "momfit.app/cli/internal/core/domain/config"
)

type Loader interface {
	Load(ctx context.Context) (configdomain.Snapshot, error)
	Name() string
}

type Validator interface {
	Validate(cfg *configdomain.Config) error
}
