package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"bilancio/internal/core"
	"bilancio/internal/engine"
	"bilancio/internal/jurisdiction"
)

var (
	taxGross        float64
	taxDeductions   float64
	taxJurisdiction string
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Compute progressive income tax for a jurisdiction",
	RunE:  runTax,
}

func init() {
	taxCmd.Flags().Float64VarP(&taxGross, "gross", "g", 0, "Annual gross income")
	taxCmd.Flags().Float64VarP(&taxDeductions, "deductions", "d", 0, "Itemized deductions on top of the standard deduction")
	taxCmd.Flags().StringVarP(&taxJurisdiction, "jurisdiction", "j", "", "Jurisdiction code (see 'bilancio-cli jurisdictions')")
	taxCmd.MarkFlagRequired("gross")
	taxCmd.MarkFlagRequired("jurisdiction")
	rootCmd.AddCommand(taxCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "jurisdictions",
		Short: "List known tax jurisdictions",
		RunE: func(_ *cobra.Command, _ []string) error {
			list, err := jurisdiction.List()
			if err != nil {
				return err
			}
			fmt.Printf("%-6s %-16s %-10s %s\n", "Code", "Name", "Currency", "VAT rate")
			for _, j := range list {
				fmt.Printf("%-6s %-16s %-10s %.1f%%\n", j.Code, j.Name, j.Currency, j.VATRate)
			}
			return nil
		},
	})
}

func runTax(_ *cobra.Command, _ []string) error {
	j, err := jurisdiction.Get(strings.ToUpper(strings.TrimSpace(taxJurisdiction)))
	if err != nil {
		return err
	}

	res := engine.IncomeTax(taxGross, j.Brackets, taxDeductions+j.StandardDeduction)

	fmt.Printf("Jurisdiction:    %s (%s)\n", j.Name, j.Code)
	fmt.Printf("Gross income:    %s\n", core.FromValue(res.Gross).Format(j.Currency))
	fmt.Printf("Deductions:      %s\n", core.FromValue(res.Deductions).Format(j.Currency))
	fmt.Printf("Taxable income:  %s\n", core.FromValue(res.TaxableIncome).Format(j.Currency))
	fmt.Printf("Tax payable:     %s\n", core.FromValue(res.TaxPayable).Format(j.Currency))
	fmt.Printf("Effective rate:  %.2f%%\n", res.EffectiveRatePct)
	fmt.Printf("Net income:      %s\n", core.FromValue(res.NetIncome).Format(j.Currency))

	fmt.Println("\nPer-bracket breakdown:")
	fmt.Printf("%16s %8s %16s %16s\n", "Up to", "Rate", "Taxed", "Tax")
	for _, b := range res.Brackets {
		upper := "∞"
		if !math.IsInf(b.UpperLimit, 1) {
			upper = fmt.Sprintf("%.0f", b.UpperLimit)
		}
		fmt.Printf("%16s %7.1f%% %16.2f %16.2f\n", upper, b.RatePct, b.Taxed, b.Tax)
	}
	return nil
}
