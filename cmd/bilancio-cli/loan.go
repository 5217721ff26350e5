package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bilancio/internal/engine"
)

var (
	loanPrincipal float64
	loanRate      float64
	loanMonths    int
	loanExtra     float64
)

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Amortize a fixed-payment loan",
	RunE:  runLoan,
}

func init() {
	loanCmd.Flags().Float64VarP(&loanPrincipal, "principal", "p", 0, "Loan principal")
	loanCmd.Flags().Float64VarP(&loanRate, "rate", "r", 0, "Annual interest rate in percent")
	loanCmd.Flags().IntVarP(&loanMonths, "months", "n", 0, "Contractual term in months")
	loanCmd.Flags().Float64VarP(&loanExtra, "extra", "e", 0, "Recurring extra payment on top of the EMI")
	loanCmd.MarkFlagRequired("principal")
	loanCmd.MarkFlagRequired("months")
	rootCmd.AddCommand(loanCmd)
}

func runLoan(_ *cobra.Command, _ []string) error {
	if loanPrincipal <= 0 || loanMonths <= 0 {
		return fmt.Errorf("principal and months must be positive")
	}

	res := engine.Amortize(engine.LoanInput{
		Principal:     loanPrincipal,
		AnnualRatePct: loanRate,
		TermMonths:    loanMonths,
		ExtraPayment:  loanExtra,
	})

	fmt.Printf("Monthly payment (EMI):  %.2f\n", res.EMI)
	fmt.Printf("Months to payoff:       %d\n", res.Months)
	fmt.Printf("Total paid:             %.2f\n", res.TotalPaid)
	fmt.Printf("Total interest:         %.2f\n", res.TotalInterest)
	if loanExtra > 0 && res.Converged {
		fmt.Printf("Interest saved:         %.2f\n", res.InterestSaved)
		fmt.Printf("Months saved:           %d\n", res.MonthsSaved)
	}
	if !res.Converged {
		fmt.Println("Warning: the loan does not pay off within the simulation horizon.")
	}

	fmt.Println("\nYearly schedule (cumulative):")
	fmt.Printf("%8s %16s %16s %16s\n", "Month", "Principal paid", "Interest paid", "Balance")
	for _, row := range res.Schedule {
		fmt.Printf("%8d %16.2f %16.2f %16.2f\n", row.Month, row.PrincipalPaid, row.InterestPaid, row.Balance)
	}
	return nil
}
