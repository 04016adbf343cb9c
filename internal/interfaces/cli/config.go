package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configdomain "momfit.app/cli/internal/core/domain/config"
)

func newConfigCommand(state *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
	}
	cmd.AddCommand(newConfigShowCommand(state))
	return cmd
}

func newConfigShowCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where each value came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := state.config
			rows := [][]string{
				{configdomain.KeyAPIEndpoint, cfg.APIEndpoint, cfg.Source(configdomain.KeyAPIEndpoint)},
				{configdomain.KeyLogLevel, cfg.LogLevel, cfg.Source(configdomain.KeyLogLevel)},
				{configdomain.KeyDebug, fmt.Sprintf("%t", cfg.Debug), cfg.Source(configdomain.KeyDebug)},
				{configdomain.KeyTimeout, cfg.Timeout.String(), cfg.Source(configdomain.KeyTimeout)},
				{configdomain.KeyStateDir, cfg.StateDir, cfg.Source(configdomain.KeyStateDir)},
				{configdomain.KeyUserAgent, cfg.UserAgent, cfg.Source(configdomain.KeyUserAgent)},
			}

			out := cmd.OutOrStdout()
			printTitle(out, "⚙️  Configuration")
			fmt.Fprintln(out, renderTable([]string{"Key", "Value", "Source"}, rows))
			return nil
		},
	}
}
