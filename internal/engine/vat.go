package engine

// VATResult is a net/tax/gross triple; whichever direction the conversion
// ran, net + tax == gross.
type VATResult struct {
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Gross float64 `json:"gross"`
}

// VAT converts an amount at a flat rate. Exclusive treats the amount as the
// net and adds tax on top; inclusive treats it as the gross and peels the
// tax out. Negative amounts and rates are clamped to zero.
func VAT(amount, ratePct float64, inclusive bool) VATResult {
	if amount < 0 {
		amount = 0
	}
	if ratePct < 0 {
		ratePct = 0
	}
	if inclusive {
		net := amount / (1 + ratePct/100)
		return VATResult{Net: net, Tax: amount - net, Gross: amount}
	}
	tax := amount * ratePct / 100
	return VATResult{Net: amount, Tax: tax, Gross: amount + tax}
}

// InvoiceLine is one itemized position; each line carries its own rate and
// inclusive flag, there is no global flag once itemized.
type InvoiceLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	RatePct     float64 `json:"rate_pct"`
	Inclusive   bool    `json:"inclusive"`
}

// InvoiceTotals sums net, tax and gross independently across the lines.
func InvoiceTotals(lines []InvoiceLine) VATResult {
	var total VATResult
	for _, l := range lines {
		r := VAT(l.Amount, l.RatePct, l.Inclusive)
		total.Net += r.Net
		total.Tax += r.Tax
		total.Gross += r.Gross
	}
	return total
}
