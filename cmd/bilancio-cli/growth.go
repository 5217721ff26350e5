package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bilancio/internal/engine"
)

var (
	growthPrincipal    float64
	growthContribution float64
	growthFrequency    string
	growthRate         float64
	growthYears        int
	growthStepUp       float64
	growthInflation    float64
)

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Project SIP or lumpsum investment growth",
	RunE:  runGrowth,
}

func init() {
	growthCmd.Flags().Float64VarP(&growthPrincipal, "principal", "p", 0, "Starting amount")
	growthCmd.Flags().Float64VarP(&growthContribution, "contribution", "c", 0, "Recurring contribution per period (0 for lumpsum)")
	growthCmd.Flags().StringVarP(&growthFrequency, "frequency", "f", "monthly", "Contribution frequency: weekly, biweekly, monthly, annually")
	growthCmd.Flags().Float64VarP(&growthRate, "rate", "r", 0, "Expected annual return in percent")
	growthCmd.Flags().IntVarP(&growthYears, "years", "y", 0, "Investment horizon in years")
	growthCmd.Flags().Float64Var(&growthStepUp, "step-up", 0, "Yearly contribution raise in percent")
	growthCmd.Flags().Float64Var(&growthInflation, "inflation", 0, "Annual inflation in percent for the real-value figure")
	growthCmd.MarkFlagRequired("years")
	rootCmd.AddCommand(growthCmd)
}

func runGrowth(_ *cobra.Command, _ []string) error {
	if growthYears <= 0 {
		return fmt.Errorf("years must be positive")
	}

	res := engine.ProjectGrowth(engine.GrowthInput{
		Principal:     growthPrincipal,
		Contribution:  growthContribution,
		Frequency:     engine.Frequency(growthFrequency),
		AnnualRatePct: growthRate,
		Years:         growthYears,
		StepUpPct:     growthStepUp,
		InflationPct:  growthInflation,
	})

	fmt.Printf("Final value:    %.2f\n", res.FinalValue)
	fmt.Printf("Invested:       %.2f\n", res.Invested)
	fmt.Printf("Gain:           %.2f\n", res.Gain)
	if growthInflation > 0 {
		fmt.Printf("Real value:     %.2f\n", res.RealValue)
	}
	if growthYears > 1 {
		fmt.Printf("Cost of delay:  %.2f (starting one year later)\n", res.CostOfDelay)
	}

	fmt.Println("\nYear-by-year:")
	fmt.Printf("%6s %16s %16s\n", "Year", "Invested", "Value")
	for _, pt := range res.Points {
		fmt.Printf("%6d %16.2f %16.2f\n", pt.Year, pt.Invested, pt.Value)
	}
	return nil
}
