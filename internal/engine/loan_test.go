package engine

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAmortize_ContractualTerm(t *testing.T) {
	// Without extra payments the simulation must land exactly on the
	// contractual term with total interest EMI*n - P.
	res := Amortize(LoanInput{Principal: 50000, AnnualRatePct: 5.5, TermMonths: 60})

	if !approxEqual(res.EMI, 955.06, 0.01) {
		t.Errorf("EMI = %.4f, want ≈955.06", res.EMI)
	}
	if res.Months != 60 {
		t.Errorf("Months = %d, want 60", res.Months)
	}
	if !approxEqual(res.TotalInterest, 7303.6, 1.0) {
		t.Errorf("TotalInterest = %.2f, want ≈7303.6", res.TotalInterest)
	}
	wantInterest := res.EMI*60 - 50000
	if !approxEqual(res.TotalInterest, wantInterest, 1.0) {
		t.Errorf("TotalInterest = %.2f, want ≈EMI·n−P = %.2f", res.TotalInterest, wantInterest)
	}
	if !res.Converged {
		t.Error("expected converged result")
	}
}

func TestAmortize_ZeroRate(t *testing.T) {
	res := Amortize(LoanInput{Principal: 12000, AnnualRatePct: 0, TermMonths: 12})
	if !approxEqual(res.EMI, 1000, 0.001) {
		t.Errorf("EMI = %.4f, want 1000", res.EMI)
	}
	if res.Months != 12 {
		t.Errorf("Months = %d, want 12", res.Months)
	}
	if !approxEqual(res.TotalInterest, 0, 0.001) {
		t.Errorf("TotalInterest = %.4f, want 0", res.TotalInterest)
	}
}

func TestAmortize_ExtraPaymentMonotonicity(t *testing.T) {
	extras := []float64{0, 50, 100, 250, 500}
	prevMonths := MaxScheduleMonths + 1
	prevInterest := math.Inf(1)
	for _, x := range extras {
		res := Amortize(LoanInput{Principal: 200000, AnnualRatePct: 4.0, TermMonths: 360, ExtraPayment: x})
		if !res.Converged {
			t.Fatalf("extra %.0f: did not converge", x)
		}
		if res.Months >= prevMonths {
			t.Errorf("extra %.0f: months %d not below %d", x, res.Months, prevMonths)
		}
		if res.TotalInterest >= prevInterest {
			t.Errorf("extra %.0f: interest %.2f not below %.2f", x, res.TotalInterest, prevInterest)
		}
		prevMonths = res.Months
		prevInterest = res.TotalInterest
	}
}

func TestAmortize_ExtraPaymentSavings(t *testing.T) {
	res := Amortize(LoanInput{Principal: 100000, AnnualRatePct: 6.0, TermMonths: 240, ExtraPayment: 200})
	if res.MonthsSaved <= 0 {
		t.Errorf("MonthsSaved = %d, want > 0", res.MonthsSaved)
	}
	if res.InterestSaved <= 0 {
		t.Errorf("InterestSaved = %.2f, want > 0", res.InterestSaved)
	}
}

func TestAmortize_SafetyCap(t *testing.T) {
	// A term past the cap cannot pay off within the bounded simulation;
	// the result reports the partial schedule rather than an error.
	res := Amortize(LoanInput{Principal: 100000, AnnualRatePct: 5.0, TermMonths: 720})
	if res.Converged {
		t.Error("expected capped, non-converged result")
	}
	if res.Months != MaxScheduleMonths {
		t.Errorf("Months = %d, want cap %d", res.Months, MaxScheduleMonths)
	}
	if len(res.Schedule) == 0 {
		t.Error("expected partial schedule rows")
	}
}

func TestAmortize_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		in   LoanInput
	}{
		{"zero principal", LoanInput{Principal: 0, AnnualRatePct: 5, TermMonths: 12}},
		{"negative principal", LoanInput{Principal: -100, AnnualRatePct: 5, TermMonths: 12}},
		{"zero term", LoanInput{Principal: 1000, AnnualRatePct: 5, TermMonths: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Amortize(tt.in)
			if res.Months != 0 || res.TotalInterest != 0 {
				t.Errorf("got %+v, want empty result", res)
			}
		})
	}
}

func TestAmortize_YearlySnapshots(t *testing.T) {
	res := Amortize(LoanInput{Principal: 50000, AnnualRatePct: 5.5, TermMonths: 60})
	if len(res.Schedule) != 5 {
		t.Fatalf("schedule rows = %d, want 5", len(res.Schedule))
	}
	for i, row := range res.Schedule {
		if row.Month != (i+1)*12 {
			t.Errorf("row %d month = %d, want %d", i, row.Month, (i+1)*12)
		}
	}
	last := res.Schedule[len(res.Schedule)-1]
	if last.Balance > payoffEpsilon {
		t.Errorf("final balance = %.4f, want ≤ %.1f", last.Balance, payoffEpsilon)
	}
}
