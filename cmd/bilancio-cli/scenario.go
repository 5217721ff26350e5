package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bilancio/internal/engine"
)

var (
	scenarioSurplus  float64
	scenarioAssets   float64
	scenarioUpfront  float64
	scenarioCost     float64
	scenarioIncome   float64
	scenarioStart    int
	scenarioDuration int
	scenarioResidual float64
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Project net worth with and without a life event",
	RunE:  runScenario,
}

func init() {
	scenarioCmd.Flags().Float64VarP(&scenarioSurplus, "surplus", "s", 0, "Current monthly surplus (income minus outflow)")
	scenarioCmd.Flags().Float64VarP(&scenarioAssets, "assets", "a", 0, "Current liquid assets")
	scenarioCmd.Flags().Float64VarP(&scenarioUpfront, "upfront", "u", 0, "One-time cost at the start month")
	scenarioCmd.Flags().Float64VarP(&scenarioCost, "cost", "c", 0, "Recurring monthly cost the event adds")
	scenarioCmd.Flags().Float64VarP(&scenarioIncome, "income", "i", 0, "Recurring monthly income the event adds")
	scenarioCmd.Flags().IntVar(&scenarioStart, "start", 0, "Months until the event starts")
	scenarioCmd.Flags().IntVar(&scenarioDuration, "duration", 0, "How many months the full cost lasts (0 = forever)")
	scenarioCmd.Flags().Float64Var(&scenarioResidual, "residual", 0, "Monthly cost after the duration elapses")
	rootCmd.AddCommand(scenarioCmd)
}

func runScenario(_ *cobra.Command, _ []string) error {
	res := engine.ProjectScenario(engine.ScenarioInput{
		MonthlySurplus: scenarioSurplus,
		LiquidAssets:   scenarioAssets,
		UpfrontCost:    scenarioUpfront,
		MonthlyCost:    scenarioCost,
		MonthlyIncome:  scenarioIncome,
		StartMonth:     scenarioStart,
		DurationMonths: scenarioDuration,
		ResidualCost:   scenarioResidual,
	})

	fmt.Printf("Net worth after %d months:\n", engine.ScenarioHorizonMonths)
	fmt.Printf("  Baseline:    %.2f\n", res.FinalBaseline)
	fmt.Printf("  With event:  %.2f\n", res.FinalWithEvent)
	fmt.Printf("  Difference:  %.2f\n", res.FinalBaseline-res.FinalWithEvent)

	fmt.Println("\nYearly checkpoints:")
	fmt.Printf("%8s %16s %16s\n", "Month", "Baseline", "With event")
	for m := 0; m <= engine.ScenarioHorizonMonths; m += 12 {
		fmt.Printf("%8d %16.2f %16.2f\n", m, res.Baseline[m], res.WithEvent[m])
	}
	return nil
}
