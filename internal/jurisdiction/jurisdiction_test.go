package jurisdiction

import (
	"math"
	"testing"

	"bilancio/internal/engine"
)

func TestList(t *testing.T) {
	all, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) < 5 {
		t.Fatalf("got %d jurisdictions, want at least 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Code >= all[i].Code {
			t.Errorf("list not sorted: %s before %s", all[i-1].Code, all[i].Code)
		}
	}
	for _, j := range all {
		if !engine.ValidateBrackets(j.Brackets) {
			t.Errorf("%s: invalid bracket table", j.Code)
		}
		if j.Currency == "" {
			t.Errorf("%s: missing currency symbol", j.Code)
		}
	}
}

func TestGet(t *testing.T) {
	uk, err := Get("UK")
	if err != nil {
		t.Fatalf("Get(UK): %v", err)
	}
	if uk.Brackets[0].RatePct != 0 {
		t.Errorf("UK first bracket rate = %.1f, want the tax-free allowance at 0", uk.Brackets[0].RatePct)
	}
	last := uk.Brackets[len(uk.Brackets)-1]
	if !math.IsInf(last.UpperLimit, 1) {
		t.Errorf("UK last bracket upper = %.0f, want unbounded", last.UpperLimit)
	}

	if _, err := Get("XX"); err == nil {
		t.Error("Get(XX) should fail")
	}
}

func TestGet_ZeroRateAllowanceComputes(t *testing.T) {
	// The IN table starts with a zero-rate bracket; income inside it owes
	// nothing, income above it is taxed only on the excess slices.
	in, err := Get("IN")
	if err != nil {
		t.Fatalf("Get(IN): %v", err)
	}

	res := engine.IncomeTax(250000, in.Brackets, 0)
	if res.TaxPayable != 0 {
		t.Errorf("tax inside the allowance = %.2f, want 0", res.TaxPayable)
	}

	res = engine.IncomeTax(800000, in.Brackets, in.StandardDeduction)
	// taxable 725000: 300k at 0, 400k at 5%, 25k at 10%.
	want := 400000*0.05 + 25000*0.10
	if math.Abs(res.TaxPayable-want) > 0.01 {
		t.Errorf("TaxPayable = %.2f, want %.2f", res.TaxPayable, want)
	}
}
