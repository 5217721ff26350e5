package engine

import "testing"

func TestProjectScenario_BaselineStartsAtLiquidAssets(t *testing.T) {
	res := ProjectScenario(ScenarioInput{MonthlySurplus: 800, LiquidAssets: 12000})
	if res.Baseline[0] != 12000 {
		t.Errorf("Baseline[0] = %.2f, want 12000", res.Baseline[0])
	}
	if res.Baseline[1] != 12800 {
		t.Errorf("Baseline[1] = %.2f, want 12800", res.Baseline[1])
	}
	if got := res.FinalBaseline; got != 12000+800*ScenarioHorizonMonths {
		t.Errorf("FinalBaseline = %.2f, want %.2f", got, 12000+800.0*ScenarioHorizonMonths)
	}
}

func TestProjectScenario_UpfrontAtStartOffset(t *testing.T) {
	in := ScenarioInput{
		MonthlySurplus: 500,
		LiquidAssets:   20000,
		UpfrontCost:    5000,
		MonthlyCost:    300,
		StartMonth:     6,
	}
	res := ProjectScenario(in)

	for m := 0; m < in.StartMonth; m++ {
		if res.WithEvent[m] != res.Baseline[m] {
			t.Errorf("month %d: with-event %.2f != baseline %.2f before the event",
				m, res.WithEvent[m], res.Baseline[m])
		}
	}
	if want := res.Baseline[in.StartMonth] - in.UpfrontCost; res.WithEvent[in.StartMonth] != want {
		t.Errorf("month %d: with-event %.2f, want baseline−upfront %.2f",
			in.StartMonth, res.WithEvent[in.StartMonth], want)
	}
	if res.NewMonthlySurplus != 200 {
		t.Errorf("NewMonthlySurplus = %.2f, want 200", res.NewMonthlySurplus)
	}
}

func TestProjectScenario_PerpetualCost(t *testing.T) {
	// Childcare shape: recurring cost, no end.
	res := ProjectScenario(ScenarioInput{
		MonthlySurplus: 1000,
		LiquidAssets:   10000,
		MonthlyCost:    400,
		StartMonth:     0,
	})
	want := 10000 + float64(ScenarioHorizonMonths)*(1000-400)
	if res.FinalWithEvent != want {
		t.Errorf("FinalWithEvent = %.2f, want %.2f", res.FinalWithEvent, want)
	}
}

func TestProjectScenario_LoanRevertsToResidual(t *testing.T) {
	// Car shape: 24-month loan payment, then only upkeep.
	in := ScenarioInput{
		MonthlySurplus: 1000,
		LiquidAssets:   0,
		UpfrontCost:    2000,
		MonthlyCost:    450,
		StartMonth:     0,
		DurationMonths: 24,
		ResidualCost:   100,
	}
	res := ProjectScenario(in)

	// Months 1..24 pay the loan, 25..60 only the residual.
	want := -2000.0 + 24*(1000-450) + float64(ScenarioHorizonMonths-24)*(1000-100)
	if res.FinalWithEvent != want {
		t.Errorf("FinalWithEvent = %.2f, want %.2f", res.FinalWithEvent, want)
	}
}

func TestProjectScenario_EventIncome(t *testing.T) {
	// An event can bring income (e.g. renting part of the house).
	res := ProjectScenario(ScenarioInput{
		MonthlySurplus: 500,
		LiquidAssets:   1000,
		UpfrontCost:    10000,
		MonthlyCost:    900,
		MonthlyIncome:  600,
		StartMonth:     12,
	})
	if res.NewMonthlySurplus != 200 {
		t.Errorf("NewMonthlySurplus = %.2f, want 200", res.NewMonthlySurplus)
	}
	// Income must not flow before the event starts.
	if res.WithEvent[11] != res.Baseline[11] {
		t.Errorf("month 11: with-event %.2f != baseline %.2f", res.WithEvent[11], res.Baseline[11])
	}
}

func TestProjectScenario_TrajectoryLength(t *testing.T) {
	res := ProjectScenario(ScenarioInput{})
	if len(res.Baseline) != ScenarioHorizonMonths+1 || len(res.WithEvent) != ScenarioHorizonMonths+1 {
		t.Errorf("trajectory lengths %d/%d, want %d", len(res.Baseline), len(res.WithEvent), ScenarioHorizonMonths+1)
	}
}

func TestProjectScenario_NegativeInputsClamped(t *testing.T) {
	res := ProjectScenario(ScenarioInput{
		MonthlySurplus: 100,
		LiquidAssets:   1000,
		UpfrontCost:    -500,
		MonthlyCost:    -50,
		StartMonth:     -3,
	})
	// With costs clamped to zero the event path matches the baseline.
	for m := range res.Baseline {
		if res.WithEvent[m] != res.Baseline[m] {
			t.Fatalf("month %d: %.2f != %.2f", m, res.WithEvent[m], res.Baseline[m])
		}
	}
}
