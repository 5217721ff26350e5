package engine

import "testing"

func TestVAT_Exclusive(t *testing.T) {
	res := VAT(1000, 18, false)
	if res.Net != 1000 {
		t.Errorf("Net = %.2f, want 1000", res.Net)
	}
	if !approxEqual(res.Tax, 180, 0.001) {
		t.Errorf("Tax = %.2f, want 180", res.Tax)
	}
	if !approxEqual(res.Gross, 1180, 0.001) {
		t.Errorf("Gross = %.2f, want 1180", res.Gross)
	}
}

func TestVAT_Inclusive(t *testing.T) {
	res := VAT(1000, 18, true)
	if res.Gross != 1000 {
		t.Errorf("Gross = %.2f, want 1000", res.Gross)
	}
	if !approxEqual(res.Net, 847.46, 0.01) {
		t.Errorf("Net = %.2f, want ≈847.46", res.Net)
	}
	if !approxEqual(res.Tax, 152.54, 0.01) {
		t.Errorf("Tax = %.2f, want ≈152.54", res.Tax)
	}
}

func TestVAT_RoundTrip(t *testing.T) {
	rates := []float64{0, 4, 10, 18, 22, 25}
	amounts := []float64{0.01, 1, 99.99, 1000, 123456.78}
	for _, rate := range rates {
		for _, amount := range amounts {
			excl := VAT(amount, rate, false)
			back := VAT(excl.Gross, rate, true)
			if !approxEqual(back.Net, amount, 1e-9*amount+1e-9) {
				t.Errorf("rate %.0f amount %.2f: round trip net %.6f", rate, amount, back.Net)
			}

			incl := VAT(amount, rate, true)
			forward := VAT(incl.Net, rate, false)
			if !approxEqual(forward.Gross, amount, 1e-9*amount+1e-9) {
				t.Errorf("rate %.0f amount %.2f: round trip gross %.6f", rate, amount, forward.Gross)
			}
		}
	}
}

func TestVAT_NetPlusTaxIsGross(t *testing.T) {
	for _, inclusive := range []bool{true, false} {
		res := VAT(777.77, 22, inclusive)
		if !approxEqual(res.Net+res.Tax, res.Gross, 1e-9) {
			t.Errorf("inclusive=%v: net+tax %.6f != gross %.6f", inclusive, res.Net+res.Tax, res.Gross)
		}
	}
}

func TestInvoiceTotals_MixedLines(t *testing.T) {
	lines := []InvoiceLine{
		{Description: "consulting", Amount: 1000, RatePct: 22, Inclusive: false},
		{Description: "hardware", Amount: 610, RatePct: 22, Inclusive: true},
		{Description: "books", Amount: 100, RatePct: 4, Inclusive: false},
	}
	res := InvoiceTotals(lines)

	wantNet := 1000 + 610/1.22 + 100.0
	wantGross := 1220 + 610 + 104.0
	if !approxEqual(res.Net, wantNet, 0.001) {
		t.Errorf("Net = %.4f, want %.4f", res.Net, wantNet)
	}
	if !approxEqual(res.Gross, wantGross, 0.001) {
		t.Errorf("Gross = %.4f, want %.4f", res.Gross, wantGross)
	}
	if !approxEqual(res.Net+res.Tax, res.Gross, 1e-9) {
		t.Error("invoice totals must keep net+tax == gross")
	}
}

func TestInvoiceTotals_Empty(t *testing.T) {
	res := InvoiceTotals(nil)
	if res.Net != 0 || res.Tax != 0 || res.Gross != 0 {
		t.Errorf("empty invoice = %+v, want zeros", res)
	}
}
