package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

func newWorkoutCommand(state *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Run an exercise session",
	}
	cmd.AddCommand(newWorkoutStartCommand(state))
	cmd.AddCommand(newWorkoutProgressCommand(state))
	cmd.AddCommand(newWorkoutFinishCommand(state))
	cmd.AddCommand(newWorkoutAbandonCommand(state))
	return cmd
}

func newWorkoutStartCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:     "start <exercise-id>...",
		Short:   "Start a session with one or more exercises",
		Example: `  momfit workout start 3 7 12`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := parseID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			session, err := state.container.Workouts.Start(ctx, ids)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Workout %d started", session.ID)
			printHint(cmd.OutOrStdout(), "Exercises: %s", joinIDs(session.ExerciseIDs))
			return nil
		},
	}
}

func newWorkoutProgressCommand(state *runtimeState) *cobra.Command {
	var progress momfitdomain.WorkoutProgress

	cmd := &cobra.Command{
		Use:   "progress <session-id>",
		Short: "Record progress in the current exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			if _, err := state.container.Workouts.Progress(ctx, id, progress); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Progress recorded for workout %d", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&progress.ExerciseID, "exercise", 0, "Exercise being performed")
	cmd.Flags().IntVar(&progress.ElapsedSeconds, "elapsed", 0, "Seconds completed")
	cmd.Flags().IntVar(&progress.HeartRate, "heart-rate", 0, "Current heart rate in bpm")
	_ = cmd.MarkFlagRequired("exercise")

	return cmd
}

func newWorkoutFinishCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "finish <session-id>",
		Short: "Complete a session and show the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			report, err := state.container.Workouts.Finish(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Workout %d complete", id)
			fields := [][2]string{
				{"Exercises done", fmt.Sprintf("%d", report.ExercisesDone)},
				{"Total time", fmt.Sprintf("%d:%02d", report.TotalSeconds/60, report.TotalSeconds%60)},
			}
			if report.AverageBPM > 0 {
				fields = append(fields, [2]string{"Average heart rate", fmt.Sprintf("%d bpm", report.AverageBPM)})
			}
			if report.MaxBPM > 0 {
				fields = append(fields, [2]string{"Max heart rate", fmt.Sprintf("%d bpm", report.MaxBPM)})
			}
			printFields(out, fields)
			return nil
		},
	}
}

func newWorkoutAbandonCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <session-id>",
		Short: "Discard an unfinished session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			if err := state.container.Workouts.Abandon(ctx, id); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Workout %d abandoned", id)
			return nil
		},
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
