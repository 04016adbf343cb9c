package di

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	apphttp "momfit.app/cli/internal/application/http"
	"momfit.app/cli/internal/application/services"
	"momfit.app/cli/internal/auth"
	configdomain "momfit.app/cli/internal/core/domain/config"
	httpinfra "momfit.app/cli/internal/infrastructure/http"
)

// Container holds all application dependencies for one CLI invocation.
type Container struct {
	Config *configdomain.Config
	Logger hclog.Logger

	// Request pipeline
	Session *auth.Session
	Cookies *httpinfra.CookieStore
	Client  *apphttp.BackendClient

	// Application services
	Auth      *services.AuthService
	Pregnancy *services.PregnancyService
	Symptoms  *services.SymptomService
	Exercises *services.ExerciseService
	Workouts  *services.WorkoutService
}

// NewContainer wires the application for cfg.
func NewContainer(cfg *configdomain.Config, logger hclog.Logger) (*Container, error) {
	container, err := InitializeContainer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}
	return container, nil
}

// Shutdown persists the session cookie so the next invocation can refresh.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Cookies == nil {
		return nil
	}
	if err := c.Cookies.Save(); err != nil {
		return fmt.Errorf("failed to save session cookie: %w", err)
	}
	c.Logger.Debug("session cookie saved", "path", c.Cookies.Path())
	return nil
}
