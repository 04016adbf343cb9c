package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

func newExercisesCommand(state *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"exercise"},
		Short:   "Browse the exercise catalogue",
	}
	cmd.AddCommand(newExercisesListCommand(state))
	cmd.AddCommand(newExercisesShowCommand(state))
	return cmd
}

func newExercisesListCommand(state *runtimeState) *cobra.Command {
	var filter momfitdomain.ExerciseFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			exercises, err := state.container.Exercises.List(ctx, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(exercises) == 0 {
				printHint(out, "No exercises match")
				return nil
			}
			rows := make([][]string, 0, len(exercises))
			for _, e := range exercises {
				rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Title, e.Category, e.Difficulty})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Category", "Difficulty"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Category, "category", "", "Only show this category")
	cmd.Flags().StringVar(&filter.Difficulty, "difficulty", "", "Only show this difficulty")

	return cmd
}

func newExercisesShowCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			e, err := state.container.Exercises.Get(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "💪 "+e.Title)
			var duration string
			if e.DurationSec > 0 {
				duration = fmt.Sprintf("%d:%02d", e.DurationSec/60, e.DurationSec%60)
			}
			printFields(out, [][2]string{
				{"Category", e.Category},
				{"Difficulty", e.Difficulty},
				{"Duration", duration},
				{"Video", e.VideoURL},
				{"Description", e.Description},
			})
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
