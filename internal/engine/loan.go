package engine

import "math"

// MaxScheduleMonths bounds the amortization loop. A payment that does not
// cover the accruing interest would never amortize; instead of looping
// forever the simulation stops here and reports Converged=false with the
// partial schedule computed so far.
const MaxScheduleMonths = 600

// payoffEpsilon is the residual balance below which a loan counts as paid
// off, absorbing float drift on the final payment.
const payoffEpsilon = 0.1

type LoanInput struct {
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TermMonths    int     `json:"term_months"`
	ExtraPayment  float64 `json:"extra_payment"` // recurring, on top of the EMI
}

// ScheduleRow is one yearly snapshot of the simulated paydown.
type ScheduleRow struct {
	Month         int     `json:"month"`
	PrincipalPaid float64 `json:"principal_paid"` // cumulative
	InterestPaid  float64 `json:"interest_paid"`  // cumulative
	Balance       float64 `json:"balance"`
}

type LoanResult struct {
	EMI           float64       `json:"emi"`
	Months        int           `json:"months"`
	TotalPaid     float64       `json:"total_paid"`
	TotalInterest float64       `json:"total_interest"`
	// Savings against the same loan without the extra payment.
	InterestSaved float64       `json:"interest_saved"`
	MonthsSaved   int           `json:"months_saved"`
	Converged     bool          `json:"converged"`
	Schedule      []ScheduleRow `json:"schedule"`
}

// Amortize simulates a fixed-payment loan paydown month by month.
//
// The payment is the standard annuity EMI, P·i·(1+i)^n / ((1+i)^n − 1),
// falling back to an even split when the rate is zero. Each month interest
// accrues on the open balance and the rest of the payment (plus any extra)
// retires principal. Yearly snapshots and the payoff month are collected
// for charting.
//
// Degenerate inputs (non-positive principal or term, negative rate or
// extra) are clamped so the result is always defined.
func Amortize(in LoanInput) LoanResult {
	if in.Principal <= 0 || in.TermMonths <= 0 {
		return LoanResult{Converged: true}
	}
	if in.AnnualRatePct < 0 {
		in.AnnualRatePct = 0
	}
	if in.ExtraPayment < 0 {
		in.ExtraPayment = 0
	}

	i := in.AnnualRatePct / 100 / 12
	n := in.TermMonths
	var emi float64
	if i == 0 {
		emi = in.Principal / float64(n)
	} else {
		pow := math.Pow(1+i, float64(n))
		emi = in.Principal * i * pow / (pow - 1)
	}

	res := LoanResult{EMI: emi}
	balance := in.Principal
	var paidPrincipal, paidInterest float64
	month := 0
	for balance > payoffEpsilon && month < MaxScheduleMonths {
		month++
		interest := balance * i
		principal := emi + in.ExtraPayment - interest
		if principal > balance {
			principal = balance
		}
		if principal < 0 {
			principal = 0
		}
		balance -= principal
		paidPrincipal += principal
		paidInterest += interest
		if month%12 == 0 || balance <= payoffEpsilon {
			res.Schedule = append(res.Schedule, ScheduleRow{
				Month:         month,
				PrincipalPaid: paidPrincipal,
				InterestPaid:  paidInterest,
				Balance:       balance,
			})
		}
	}

	res.Months = month
	res.TotalInterest = paidInterest
	res.TotalPaid = paidPrincipal + paidInterest
	res.Converged = balance <= payoffEpsilon

	// Baseline without the extra payment: the contractual term at the
	// theoretical total interest EMI·n − P.
	if in.ExtraPayment > 0 && res.Converged {
		baselineInterest := emi*float64(n) - in.Principal
		res.InterestSaved = baselineInterest - res.TotalInterest
		if res.InterestSaved < 0 {
			res.InterestSaved = 0
		}
		res.MonthsSaved = n - res.Months
		if res.MonthsSaved < 0 {
			res.MonthsSaved = 0
		}
	}
	return res
}
