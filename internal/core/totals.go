package core

// Totals is the full reduction of one period: the sums a dashboard, the
// alert evaluator and the scenario projector all read from.
type Totals struct {
	Income      Money `json:"income"`
	Expenses    Money `json:"expenses"`
	Bills       Money `json:"bills"`
	Debts       Money `json:"debts"`
	Savings     Money `json:"savings"`
	Investments Money `json:"investments"`
	TotalOut    Money `json:"total_out"`
	LeftToSpend Money `json:"left_to_spend"`
}

// Totals reduces the period into its summary sums.
//
// Income counts actuals only; a planned amount that never arrived is not
// money. Bills count whether or not already paid: a paid bill is still
// budgeted outflow for the period, so it stays in TotalOut and therefore in
// LeftToSpend. Debts count the payment committed this period, not the
// outstanding balance. Negative line amounts are treated as zero so the
// reduction is total over any input.
func (p BudgetPeriod) Totals() Totals {
	var t Totals
	for _, it := range p.Income {
		t.Income.Cents += nonNegative(it.Actual.Cents)
	}
	for _, it := range p.Expenses {
		t.Expenses.Cents += nonNegative(it.Spent.Cents)
	}
	for _, b := range p.Bills {
		t.Bills.Cents += nonNegative(b.Amount.Cents)
	}
	for _, d := range p.Debts {
		t.Debts.Cents += nonNegative(d.Payment.Cents)
	}
	for _, s := range p.Savings {
		t.Savings.Cents += nonNegative(s.Amount.Cents)
	}
	for _, inv := range p.Investments {
		t.Investments.Cents += nonNegative(inv.Amount.Cents)
	}
	t.TotalOut.Cents = t.Expenses.Cents + t.Bills.Cents + t.Debts.Cents +
		t.Savings.Cents + t.Investments.Cents
	t.LeftToSpend.Cents = t.Income.Cents + p.Rollover.Cents - t.TotalOut.Cents
	return t
}

// MonthlySurplus is income minus committed outflow, ignoring rollover: the
// recurring figure the scenario projector extends month over month.
func (t Totals) MonthlySurplus() Money {
	return Money{Cents: t.Income.Cents - t.TotalOut.Cents}
}

// LiquidAssets is the period's savings plus investments, the scenario
// projector's month-zero net worth.
func (p BudgetPeriod) LiquidAssets() Money {
	var cents int64
	for _, s := range p.Savings {
		cents += nonNegative(s.Amount.Cents)
	}
	for _, inv := range p.Investments {
		cents += nonNegative(inv.Amount.Cents)
	}
	return Money{Cents: cents}
}

// MonthlyContributions sums the recurring investment contributions, used
// for contribution-rate figures in reports.
func (p BudgetPeriod) MonthlyContributions() Money {
	var cents int64
	for _, inv := range p.Investments {
		cents += nonNegative(inv.Monthly.Cents)
	}
	return Money{Cents: cents}
}

func nonNegative(c int64) int64 {
	if c < 0 {
		return 0
	}
	return c
}
