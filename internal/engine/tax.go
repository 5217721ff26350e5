package engine

import (
	"encoding/json"
	"math"
)

// Bracket is one slice of a progressive tax table. UpperLimit is the top of
// the slice; the last bracket of a table is unbounded (math.Inf(1)). Tables
// are ordered ascending and gapless over [0, ∞).
type Bracket struct {
	UpperLimit float64 `json:"upper_limit"`
	RatePct    float64 `json:"rate_pct"`
}

// Unbounded marks the last bracket of a table.
func Unbounded() float64 { return math.Inf(1) }

// JSON has no infinity literal, so on the wire a null or missing
// upper_limit marks the unbounded bracket, same convention as the
// jurisdiction tables.
type bracketJSON struct {
	UpperLimit *float64 `json:"upper_limit"`
	RatePct    float64  `json:"rate_pct"`
}

func (b Bracket) MarshalJSON() ([]byte, error) {
	out := bracketJSON{RatePct: b.RatePct}
	if !math.IsInf(b.UpperLimit, 1) {
		out.UpperLimit = &b.UpperLimit
	}
	return json.Marshal(out)
}

func (b *Bracket) UnmarshalJSON(data []byte) error {
	var in bracketJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.RatePct = in.RatePct
	if in.UpperLimit == nil {
		b.UpperLimit = math.Inf(1)
	} else {
		b.UpperLimit = *in.UpperLimit
	}
	return nil
}

// BracketTax is one bracket's contribution to the total.
type BracketTax struct {
	UpperLimit float64 `json:"upper_limit"`
	RatePct    float64 `json:"rate_pct"`
	Taxed      float64 `json:"taxed"` // income slice taxed at this rate
	Tax        float64 `json:"tax"`
}

func (b BracketTax) MarshalJSON() ([]byte, error) {
	out := struct {
		UpperLimit *float64 `json:"upper_limit"`
		RatePct    float64  `json:"rate_pct"`
		Taxed      float64  `json:"taxed"`
		Tax        float64  `json:"tax"`
	}{RatePct: b.RatePct, Taxed: b.Taxed, Tax: b.Tax}
	if !math.IsInf(b.UpperLimit, 1) {
		out.UpperLimit = &b.UpperLimit
	}
	return json.Marshal(out)
}

type IncomeTaxResult struct {
	Gross            float64      `json:"gross"`
	Deductions       float64      `json:"deductions"`
	TaxableIncome    float64      `json:"taxable_income"`
	TaxPayable       float64      `json:"tax_payable"`
	EffectiveRatePct float64      `json:"effective_rate_pct"`
	NetIncome        float64      `json:"net_income"`
	Brackets         []BracketTax `json:"brackets"`
}

// IncomeTax walks an ordered bracket table over the taxable income and sums
// the per-bracket contributions.
//
// A zero-rate bracket still consumes its slice: tax-free allowances are
// brackets, not gaps, so skipping them would shift every slice above them.
// The effective rate is guarded to 0 on zero gross income.
func IncomeTax(gross float64, brackets []Bracket, deductions float64) IncomeTaxResult {
	if gross < 0 {
		gross = 0
	}
	if deductions < 0 {
		deductions = 0
	}
	taxable := gross - deductions
	if taxable < 0 {
		taxable = 0
	}

	res := IncomeTaxResult{Gross: gross, Deductions: deductions, TaxableIncome: taxable}
	prev := 0.0
	for _, b := range brackets {
		if taxable <= prev {
			break
		}
		slice := math.Min(taxable, b.UpperLimit) - prev
		if slice < 0 {
			slice = 0
		}
		tax := slice * b.RatePct / 100
		res.Brackets = append(res.Brackets, BracketTax{
			UpperLimit: b.UpperLimit,
			RatePct:    b.RatePct,
			Taxed:      slice,
			Tax:        tax,
		})
		res.TaxPayable += tax
		prev = b.UpperLimit
	}

	if gross > 0 {
		res.EffectiveRatePct = res.TaxPayable / gross * 100
	}
	res.NetIncome = gross - res.TaxPayable
	return res
}

// ValidateBrackets reports whether a table is usable: non-empty, strictly
// ascending, non-negative rates, last bracket unbounded.
func ValidateBrackets(brackets []Bracket) bool {
	if len(brackets) == 0 {
		return false
	}
	prev := 0.0
	for i, b := range brackets {
		if b.RatePct < 0 {
			return false
		}
		last := i == len(brackets)-1
		if last {
			return math.IsInf(b.UpperLimit, 1)
		}
		if b.UpperLimit <= prev {
			return false
		}
		prev = b.UpperLimit
	}
	return true
}
