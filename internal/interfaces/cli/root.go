package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	appconfig "momfit.app/cli/internal/application/config"
	configdomain "momfit.app/cli/internal/core/domain/config"
	configinfra "momfit.app/cli/internal/infrastructure/config"
	"momfit.app/cli/internal/interfaces/di"
	"momfit.app/cli/internal/logging"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// runtimeState is filled in by the root command's pre-run and shared with
// every subcommand of one invocation.
type runtimeState struct {
	configPath string
	config     *configdomain.Config
	logger     hclog.Logger
	container  *di.Container
}

// NewRootCommand builds the momfit command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&runtimeState{})
}

func newRootCommand(state *runtimeState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "momfit",
		Short: "momfit CLI - pregnancy fitness from the terminal",
		Long: `momfit is a command line client for the momfit service.

It signs you in, keeps your session fresh in the background and gives you
access to your pregnancy profile, daily symptom checks and guided workouts.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.initialize(cmd)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().StringVar(&state.configPath, "config", "", "Config file path (default is <state dir>/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "API endpoint URL")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request timeout")

	rootCmd.AddCommand(newLoginCommand(state))
	rootCmd.AddCommand(newSignupCommand(state))
	rootCmd.AddCommand(newLogoutCommand(state))
	rootCmd.AddCommand(newStatusCommand(state))
	rootCmd.AddCommand(newPregnancyCommand(state))
	rootCmd.AddCommand(newSymptomsCommand(state))
	rootCmd.AddCommand(newExercisesCommand(state))
	rootCmd.AddCommand(newWorkoutCommand(state))
	rootCmd.AddCommand(newAPICommand(state))
	rootCmd.AddCommand(newConfigCommand(state))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

func (s *runtimeState) initialize(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return err
	}

	bootLogger := hclog.New(&hclog.LoggerOptions{
		Name:   "momfit.config",
		Level:  hclog.Warn,
		Output: cmd.ErrOrStderr(),
	})
	aggregator := appconfig.NewAggregator(
		configinfra.NewEnvLoader(),
		configinfra.NewFileLoader(s.configPath),
	).WithValidators(configinfra.NewConfigValidator(bootLogger))
	cfg, err := aggregator.Load(ctx, overrides)
	if err != nil {
		return err
	}
	s.config = cfg
	s.logger = logging.NewConsoleLogger(cfg.LogLevel, cfg.Debug, cmd.ErrOrStderr())

	container, err := di.NewContainer(cfg, s.logger)
	if err != nil {
		return err
	}
	s.container = container
	s.logger.Named(logging.NameCLI).Debug("initialized", "command", cmd.CommandPath(), "endpoint", cfg.APIEndpoint)
	return nil
}

func (s *runtimeState) shutdown(ctx context.Context) error {
	if s.container == nil {
		return nil
	}
	return s.container.Shutdown(ctx)
}

// flagOverrides collects the persistent flags the user set explicitly.
func flagOverrides(cmd *cobra.Command) (map[string]interface{}, error) {
	flags := cmd.Flags()
	overrides := map[string]interface{}{}

	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		overrides[configdomain.KeyAPIEndpoint] = v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides[configdomain.KeyLogLevel] = v
	}
	if flags.Changed("debug") {
		v, _ := flags.GetBool("debug")
		overrides[configdomain.KeyDebug] = v
	}
	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return nil, fmt.Errorf("invalid --timeout: %w", err)
		}
		overrides[configdomain.KeyTimeout] = v
	}
	return overrides, nil
}

// Run executes the command tree with args and returns the exit code. The
// session cookie is saved even when the command fails, so a forced logout
// sticks.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	state := &runtimeState{}
	rootCmd := newRootCommand(state)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if shutdownErr := state.shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
		state.logger.Warn("shutdown failed", "error", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(stderr, renderError(err))
		return 1
	}
	return 0
}

// commandContext returns cmd's context bounded by the configured timeout
// for multi-request commands.
func commandContext(cmd *cobra.Command, state *runtimeState) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// Refresh plus retry can take up to three round trips.
	return context.WithTimeout(ctx, 3*state.config.Timeout+time.Second)
}
