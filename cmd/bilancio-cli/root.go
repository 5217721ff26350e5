package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bilancio-cli",
	Short: "Personal finance calculators",
	Long:  "Loan amortization, investment growth, progressive tax, VAT and life-event scenario projections from the command line.",
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
