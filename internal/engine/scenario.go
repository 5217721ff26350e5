package engine

// ScenarioHorizonMonths is the projection window for life-event scenarios.
const ScenarioHorizonMonths = 60

// ScenarioInput describes a life event laid over the user's current
// finances. Three shapes fall out of the two duration fields:
//
//   - perpetual recurring cost (childcare): DurationMonths 0, ResidualCost
//     ignored;
//   - amortized loan (house, car): MonthlyCost is the loan payment,
//     DurationMonths the payoff month within the window, ResidualCost the
//     smaller upkeep that remains after payoff;
//   - finite run (education): DurationMonths set, ResidualCost 0.
type ScenarioInput struct {
	MonthlySurplus float64 `json:"monthly_surplus"` // income − totalOut, from the current period
	LiquidAssets   float64 `json:"liquid_assets"`   // savings + investments today
	UpfrontCost    float64 `json:"upfront_cost"`
	MonthlyCost    float64 `json:"monthly_cost"`
	MonthlyIncome  float64 `json:"monthly_income"` // recurring income the event brings
	StartMonth     int     `json:"start_month"`    // offset into the window, 0 = now
	DurationMonths int     `json:"duration_months"`
	ResidualCost   float64 `json:"residual_cost"`
}

// ScenarioResult holds two parallel month-indexed net-worth trajectories,
// index 0 through ScenarioHorizonMonths inclusive.
type ScenarioResult struct {
	Baseline          []float64 `json:"baseline"`
	WithEvent         []float64 `json:"with_event"`
	FinalBaseline     float64   `json:"final_baseline"`
	FinalWithEvent    float64   `json:"final_with_event"`
	NewMonthlySurplus float64   `json:"new_monthly_surplus"`
}

// ProjectScenario builds the baseline and with-event trajectories.
//
// Baseline applies only the existing surplus every month, so Baseline[0]
// is the current liquid assets. The event path matches the baseline until
// StartMonth, pays the upfront cost exactly there, then applies the
// adjusted surplus; once a finite event's duration elapses the recurring
// cost reverts to the residual.
func ProjectScenario(in ScenarioInput) ScenarioResult {
	if in.StartMonth < 0 {
		in.StartMonth = 0
	}
	if in.DurationMonths < 0 {
		in.DurationMonths = 0
	}
	if in.UpfrontCost < 0 {
		in.UpfrontCost = 0
	}
	if in.MonthlyCost < 0 {
		in.MonthlyCost = 0
	}
	if in.MonthlyIncome < 0 {
		in.MonthlyIncome = 0
	}
	if in.ResidualCost < 0 {
		in.ResidualCost = 0
	}

	res := ScenarioResult{
		Baseline:          make([]float64, ScenarioHorizonMonths+1),
		WithEvent:         make([]float64, ScenarioHorizonMonths+1),
		NewMonthlySurplus: in.MonthlySurplus - in.MonthlyCost + in.MonthlyIncome,
	}

	baseline := in.LiquidAssets
	event := in.LiquidAssets
	for m := 0; m <= ScenarioHorizonMonths; m++ {
		if m > 0 {
			baseline += in.MonthlySurplus
			event += in.MonthlySurplus + in.monthDelta(m)
		}
		if m == in.StartMonth {
			event -= in.UpfrontCost
		}
		res.Baseline[m] = baseline
		res.WithEvent[m] = event
	}
	res.FinalBaseline = res.Baseline[ScenarioHorizonMonths]
	res.FinalWithEvent = res.WithEvent[ScenarioHorizonMonths]
	return res
}

// monthDelta is the recurring income-minus-cost adjustment in effect at
// month m. Nothing recurs before the event starts; after a finite event's
// duration elapses the cost reverts to the residual while any recurring
// income continues.
func (in ScenarioInput) monthDelta(m int) float64 {
	if m <= in.StartMonth {
		return 0
	}
	cost := in.MonthlyCost
	if in.DurationMonths > 0 && m > in.StartMonth+in.DurationMonths {
		cost = in.ResidualCost
	}
	return in.MonthlyIncome - cost
}
