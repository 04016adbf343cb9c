package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

func newSymptomsCommand(state *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "Daily symptom check",
	}
	cmd.AddCommand(newSymptomsSubmitCommand(state))
	return cmd
}

func symptomNames() string {
	names := make([]string, 0, len(momfitdomain.AllSymptoms))
	for _, s := range momfitdomain.AllSymptoms {
		names = append(names, strings.ToLower(string(s)))
	}
	return strings.Join(names, ", ")
}

func newSymptomsSubmitCommand(state *runtimeState) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "submit [symptom...]",
		Short: "Report today's symptoms",
		Long: fmt.Sprintf(`Report today's symptoms. Run without arguments to record that you have none.

Known symptoms: %s`, symptomNames()),
		Example: `  momfit symptoms submit back_pain fatigue
  momfit symptoms submit
  momfit symptoms submit --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive && len(args) > 0 {
				return fmt.Errorf("--interactive cannot be combined with symptom arguments")
			}

			symptoms := make([]momfitdomain.Symptom, 0, len(args))
			for _, a := range args {
				s, err := momfitdomain.ParseSymptom(a)
				if err != nil {
					return err
				}
				symptoms = append(symptoms, s)
			}

			if interactive {
				picked, ok, err := pickSymptoms(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if !ok {
					printHint(cmd.OutOrStdout(), "Cancelled, nothing was reported")
					return nil
				}
				symptoms = picked
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			sent, err := state.container.Symptoms.Submit(ctx, symptoms)
			if err != nil {
				return err
			}
			if !sent {
				printSuccess(cmd.OutOrStdout(), "No symptoms today")
				return nil
			}
			printSuccess(cmd.OutOrStdout(), "Reported %d symptom(s)", len(symptoms))
			printHint(cmd.OutOrStdout(), "Run 'momfit exercises list' for today's workouts")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose symptoms from a checklist")
	return cmd
}
