package di

import (
	"path/filepath"

	"github.com/google/wire"
	"github.com/hashicorp/go-hclog"

	apphttp "momfit.app/cli/internal/application/http"
	"momfit.app/cli/internal/application/ports"
	"momfit.app/cli/internal/application/services"
	"momfit.app/cli/internal/auth"
	configdomain "momfit.app/cli/internal/core/domain/config"
	httpdomain "momfit.app/cli/internal/core/domain/http"
	httpports "momfit.app/cli/internal/core/ports/http"
	authinfra "momfit.app/cli/internal/infrastructure/auth"
	httpinfra "momfit.app/cli/internal/infrastructure/http"
	"momfit.app/cli/internal/logging"
)

// ProviderSet is the full dependency graph of a CLI invocation.
var ProviderSet = wire.NewSet(
	ProvideEndpoint,
	ProvideCookieStore,
	ProvideRequester,
	ProvideSession,
	ProvideTokenProvider,
	ProvideCoordinator,
	ProvideBackendClient,
	ProvideAuthService,
	ProvideContainer,
	apphttp.NewRetryPolicy,
	services.NewPregnancyService,
	services.NewSymptomService,
	services.NewExerciseService,
	services.NewWorkoutService,
	wire.Bind(new(httpports.RetryPolicy), new(apphttp.RefreshOnceRetryPolicy)),
	wire.Bind(new(httpports.HttpRequester), new(*httpinfra.StdHttpRequester)),
	wire.Bind(new(httpports.CredentialSource), new(*auth.Session)),
	wire.Bind(new(httpports.TokenRefresher), new(*auth.Coordinator)),
	wire.Bind(new(auth.TokenProvider), new(*authinfra.HTTPTokenProvider)),
	wire.Bind(new(ports.APIGateway), new(*apphttp.BackendClient)),
	wire.Bind(new(ports.CredentialStore), new(*auth.Session)),
)

func ProvideEndpoint(cfg *configdomain.Config) httpdomain.BackendEndpoint {
	return httpdomain.BackendEndpoint{BaseURL: cfg.APIEndpoint, UserAgent: cfg.UserAgent}
}

// ProvideCookieStore restores the session cookie saved by a previous run. A
// damaged cookie file only costs the user a fresh login.
func ProvideCookieStore(cfg *configdomain.Config, logger hclog.Logger) (*httpinfra.CookieStore, error) {
	store, err := httpinfra.NewCookieStore(filepath.Join(cfg.StateDir, httpinfra.CookieFileName))
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		logger.Warn("ignoring unreadable cookie file", "path", store.Path(), "error", err)
	}
	return store, nil
}

func ProvideRequester(cfg *configdomain.Config, cookies *httpinfra.CookieStore, policy httpports.RetryPolicy, logger hclog.Logger) *httpinfra.StdHttpRequester {
	return httpinfra.NewStdHttpRequester(cfg.Timeout, cookies.Jar(), policy, logger.Named(logging.NameHTTP))
}

func ProvideSession(logger hclog.Logger) *auth.Session {
	return auth.NewSession(logger.Named(logging.NameAuth))
}

func ProvideTokenProvider(requester httpports.HttpRequester, endpoint httpdomain.BackendEndpoint, logger hclog.Logger) *authinfra.HTTPTokenProvider {
	return authinfra.NewHTTPTokenProvider(requester, endpoint, logger.Named(logging.NameAuth))
}

func ProvideCoordinator(session *auth.Session, provider auth.TokenProvider, logger hclog.Logger) *auth.Coordinator {
	return auth.NewCoordinator(session, provider, logger.Named(logging.NameAuth))
}

func ProvideBackendClient(
	endpoint httpdomain.BackendEndpoint,
	requester httpports.HttpRequester,
	credentials httpports.CredentialSource,
	refresher httpports.TokenRefresher,
	logger hclog.Logger,
) *apphttp.BackendClient {
	return apphttp.NewBackendClient(endpoint, requester, credentials, refresher, logger.Named(logging.NameHTTP))
}

func ProvideAuthService(api ports.APIGateway, store ports.CredentialStore, refresher httpports.TokenRefresher, logger hclog.Logger) *services.AuthService {
	return services.NewAuthService(api, store, refresher, logger.Named(logging.NameAuth))
}

// ProvideContainer assembles the container and registers the forced logout
// that runs when a refresh fails.
func ProvideContainer(
	cfg *configdomain.Config,
	logger hclog.Logger,
	session *auth.Session,
	cookies *httpinfra.CookieStore,
	client *apphttp.BackendClient,
	authService *services.AuthService,
	pregnancy *services.PregnancyService,
	symptoms *services.SymptomService,
	exercises *services.ExerciseService,
	workouts *services.WorkoutService,
) *Container {
	session.SetFailureHandler(authService.HandleAuthFailure)
	return &Container{
		Config:    cfg,
		Logger:    logger,
		Session:   session,
		Cookies:   cookies,
		Client:    client,
		Auth:      authService,
		Pregnancy: pregnancy,
		Symptoms:  symptoms,
		Exercises: exercises,
		Workouts:  workouts,
	}
}
