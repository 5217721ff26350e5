package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bilancio/internal/engine"
)

var (
	vatAmount    float64
	vatRate      float64
	vatInclusive bool
)

var vatCmd = &cobra.Command{
	Use:   "vat",
	Short: "Convert an amount between net and gross at a flat VAT/GST rate",
	RunE:  runVAT,
}

func init() {
	vatCmd.Flags().Float64VarP(&vatAmount, "amount", "a", 0, "Amount to convert")
	vatCmd.Flags().Float64VarP(&vatRate, "rate", "r", 0, "VAT rate in percent")
	vatCmd.Flags().BoolVarP(&vatInclusive, "inclusive", "i", false, "Treat the amount as tax-inclusive gross")
	vatCmd.MarkFlagRequired("amount")
	vatCmd.MarkFlagRequired("rate")
	rootCmd.AddCommand(vatCmd)
}

func runVAT(_ *cobra.Command, _ []string) error {
	res := engine.VAT(vatAmount, vatRate, vatInclusive)

	fmt.Printf("Net:    %.2f\n", res.Net)
	fmt.Printf("Tax:    %.2f\n", res.Tax)
	fmt.Printf("Gross:  %.2f\n", res.Gross)
	return nil
}
