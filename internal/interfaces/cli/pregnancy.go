package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

func newPregnancyCommand(state *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pregnancy",
		Short: "Register or view your pregnancy profile",
	}
	cmd.AddCommand(newPregnancyRegisterCommand(state))
	cmd.AddCommand(newPregnancyShowCommand(state))
	return cmd
}

func newPregnancyRegisterCommand(state *runtimeState) *cobra.Command {
	var (
		lmp        string
		height     float64
		weight     float64
		multiple   bool
		fitness    string
		conditions []string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register your pregnancy profile",
		Example: `  momfit pregnancy register --lmp 2026-02-24 --height 162 --weight 55.5 --fitness active
  momfit pregnancy register --lmp 2026-02-24 --height 158 --weight 61 --fitness sedentary --condition anemia --multiple`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := momfitdomain.ParseFitnessLevel(fitness)
			if err != nil {
				return err
			}
			reg := momfitdomain.PregnancyRegistration{
				LastMenstrualPeriod: lmp,
				Height:              height,
				PreWeight:           weight,
				IsMultiple:          multiple,
				FitnessLevel:        level,
			}
			for _, c := range conditions {
				cond, err := momfitdomain.ParseCondition(c)
				if err != nil {
					return err
				}
				reg.Conditions = append(reg.Conditions, cond)
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			info, err := state.container.Pregnancy.Register(ctx, reg)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Pregnancy profile registered")
			printPregnancy(cmd, info)
			return nil
		},
	}

	cmd.Flags().StringVar(&lmp, "lmp", "", "First day of the last menstrual period (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Pre-pregnancy weight in kg")
	cmd.Flags().BoolVar(&multiple, "multiple", false, "Expecting twins or more")
	cmd.Flags().StringVar(&fitness, "fitness", "", "Fitness before pregnancy (active or sedentary)")
	cmd.Flags().StringSliceVar(&conditions, "condition", nil, "Health condition, repeatable (hypertension, thyroid_disease, gestational_diabetes, anemia, bmi_risk)")
	_ = cmd.MarkFlagRequired("lmp")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("fitness")

	return cmd
}

func newPregnancyShowCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your pregnancy profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			info, err := state.container.Pregnancy.Me(ctx)
			if err != nil {
				return err
			}
			printPregnancy(cmd, info)
			return nil
		},
	}
}

func printPregnancy(cmd *cobra.Command, info *momfitdomain.PregnancyInfo) {
	out := cmd.OutOrStdout()
	printTitle(out, "🤰 Pregnancy")

	conditions := make([]string, 0, len(info.Conditions))
	for _, c := range info.Conditions {
		conditions = append(conditions, string(c))
	}
	var week string
	if w := info.WeekOn(time.Now()); w > 0 {
		week = fmt.Sprintf("%d", w)
	}

	fields := [][2]string{
		{"Week", week},
		{"Due date", info.DueDate},
		{"Last period", info.LastMenstrualPeriod},
		{"Fitness level", string(info.FitnessLevel)},
		{"Conditions", strings.Join(conditions, ", ")},
	}
	if info.IsMultiple {
		fields = append(fields, [2]string{"Multiple", "yes"})
	}
	if info.BMI > 0 {
		fields = append(fields, [2]string{"BMI", fmt.Sprintf("%.1f", info.BMI)})
	}
	if info.MaxAllowedBPM > 0 {
		fields = append(fields, [2]string{"Max heart rate", fmt.Sprintf("%d bpm", info.MaxAllowedBPM)})
	}
	printFields(out, fields)
}
