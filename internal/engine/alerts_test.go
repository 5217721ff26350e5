package engine

import (
	"strings"
	"testing"
	"time"

	"bilancio/internal/core"
)

var alertsNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func cents(v int64) core.Money { return core.Money{Cents: v} }

// ample keeps left-to-spend positive so only the alert under test fires.
var ample = []core.IncomeItem{{ID: "i1", Name: "Stipendio", Actual: core.Money{Cents: 10000000}}}

func TestEvaluateAlerts_Bills(t *testing.T) {
	tests := []struct {
		name         string
		bill         core.Bill
		wantSeverity AlertSeverity
		wantNone     bool
	}{
		{
			name:         "overdue",
			bill:         core.Bill{ID: "b1", Name: "Rent", Amount: cents(90000), DueDate: core.NewDate(2025, 3, 10)},
			wantSeverity: SeverityCritical,
		},
		{
			name:         "due today",
			bill:         core.Bill{ID: "b2", Name: "Internet", Amount: cents(3000), DueDate: core.NewDate(2025, 3, 15)},
			wantSeverity: SeverityCritical,
		},
		{
			name:         "due within window",
			bill:         core.Bill{ID: "b3", Name: "Power", Amount: cents(8000), DueDate: core.NewDate(2025, 3, 20)},
			wantSeverity: SeverityWarning,
		},
		{
			name:     "due past window",
			bill:     core.Bill{ID: "b4", Name: "Insurance", Amount: cents(12000), DueDate: core.NewDate(2025, 3, 30)},
			wantNone: true,
		},
		{
			name:     "already paid",
			bill:     core.Bill{ID: "b5", Name: "Rent", Amount: cents(90000), DueDate: core.NewDate(2025, 3, 10), Paid: true},
			wantNone: true,
		},
		{
			name:     "no due date",
			bill:     core.Bill{ID: "b6", Name: "Misc", Amount: cents(1000)},
			wantNone: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := core.BudgetPeriod{Income: ample, Bills: []core.Bill{tt.bill}}
			alerts := EvaluateAlerts(p, nil, alertsNow)
			if tt.wantNone {
				if len(alerts) != 0 {
					t.Fatalf("got %d alerts, want none", len(alerts))
				}
				return
			}
			if len(alerts) != 1 {
				t.Fatalf("got %d alerts, want 1", len(alerts))
			}
			a := alerts[0]
			if a.Category != AlertBill || a.TargetID != tt.bill.ID || a.Severity != tt.wantSeverity {
				t.Errorf("alert = %+v, want bill/%s severity %v", a, tt.bill.ID, tt.wantSeverity)
			}
		})
	}
}

func TestEvaluateAlerts_BudgetThresholds(t *testing.T) {
	p := core.BudgetPeriod{
		Income: ample,
		Expenses: []core.ExpenseItem{
			{ID: "e1", Name: "Groceries", Budgeted: cents(100000), Spent: cents(120000)}, // 120%
			{ID: "e2", Name: "Dining", Budgeted: cents(50000), Spent: cents(42000)},      // 84%
			{ID: "e3", Name: "Transport", Budgeted: cents(30000), Spent: cents(10000)},   // 33%
			{ID: "e4", Name: "Unbudgeted", Budgeted: cents(0), Spent: cents(5000)},       // skip
		},
	}
	alerts := EvaluateAlerts(p, nil, alertsNow)
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2: %+v", len(alerts), alerts)
	}
	// Exactly one alert per category: over-budget wins over the warning.
	if alerts[0].TargetID != "e1" || alerts[0].Severity != SeverityCritical {
		t.Errorf("first alert = %+v, want critical for e1", alerts[0])
	}
	if alerts[1].TargetID != "e2" || alerts[1].Severity != SeverityWarning {
		t.Errorf("second alert = %+v, want warning for e2", alerts[1])
	}
}

func TestEvaluateAlerts_BudgetBoundary(t *testing.T) {
	// Exactly 100% is over budget, exactly 80% is a warning.
	p := core.BudgetPeriod{
		Income: ample,
		Expenses: []core.ExpenseItem{
			{ID: "a", Name: "A", Budgeted: cents(1000), Spent: cents(1000)},
			{ID: "b", Name: "B", Budgeted: cents(1000), Spent: cents(800)},
			{ID: "c", Name: "C", Budgeted: cents(1000), Spent: cents(799)},
		},
	}
	alerts := EvaluateAlerts(p, nil, alertsNow)
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].TargetID != "a" || alerts[0].Severity != SeverityCritical {
		t.Errorf("100%% case = %+v, want critical", alerts[0])
	}
	if alerts[1].TargetID != "b" || alerts[1].Severity != SeverityWarning {
		t.Errorf("80%% case = %+v, want warning", alerts[1])
	}
}

func TestEvaluateAlerts_SavingsWin(t *testing.T) {
	p := core.BudgetPeriod{
		Income: ample,
		Savings: []core.SavingsGoal{
			{ID: "s1", Name: "Emergency fund", Planned: cents(100000), Amount: cents(100000)},
			{ID: "s2", Name: "Holiday", Planned: cents(50000), Amount: cents(20000)},
			{ID: "s3", Name: "No goal", Planned: cents(0), Amount: cents(999)},
		},
	}
	alerts := EvaluateAlerts(p, nil, alertsNow)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Category != AlertSavings || alerts[0].TargetID != "s1" || alerts[0].Severity != SeverityInfo {
		t.Errorf("alert = %+v, want savings win for s1", alerts[0])
	}
}

func TestEvaluateAlerts_UnusualSpending(t *testing.T) {
	history := []core.BudgetPeriod{
		{Expenses: []core.ExpenseItem{{ID: "g", Name: "Groceries", Spent: cents(40000)}}},
		{Expenses: []core.ExpenseItem{{ID: "g", Name: "Groceries", Spent: cents(44000)}}},
		{Expenses: []core.ExpenseItem{{ID: "g", Name: "Groceries", Spent: cents(36000)}}},
	}
	current := core.BudgetPeriod{
		Income: ample,
		Expenses: []core.ExpenseItem{
			// 90000 > 1.5 × avg(40000,44000,36000)=40000, and under budget
			{ID: "g", Name: "Groceries", Budgeted: cents(200000), Spent: cents(90000)},
		},
	}

	alerts := EvaluateAlerts(current, history, alertsNow)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1: %+v", len(alerts), alerts)
	}
	if !strings.Contains(alerts[0].Message, "unusual spending") {
		t.Errorf("message = %q, want an unusual-spending alert", alerts[0].Message)
	}

	// Same spend without history must not alert.
	if got := EvaluateAlerts(current, nil, alertsNow); len(got) != 0 {
		t.Errorf("without history got %d alerts, want 0", len(got))
	}

	// A single prior period is not enough signal.
	if got := EvaluateAlerts(current, history[:1], alertsNow); len(got) != 0 {
		t.Errorf("with one prior period got %d alerts, want 0", len(got))
	}
}

func TestEvaluateAlerts_DeterministicOrder(t *testing.T) {
	p := core.BudgetPeriod{
		Income: ample,
		Bills: []core.Bill{
			{ID: "b2", Name: "Power", Amount: cents(1), DueDate: core.NewDate(2025, 3, 18)},
			{ID: "b1", Name: "Rent", Amount: cents(1), DueDate: core.NewDate(2025, 3, 10)},
		},
		Expenses: []core.ExpenseItem{
			{ID: "e1", Name: "Dining", Budgeted: cents(100), Spent: cents(150)},
		},
		Savings: []core.SavingsGoal{
			{ID: "s1", Name: "Fund", Planned: cents(10), Amount: cents(10)},
		},
	}

	first := EvaluateAlerts(p, nil, alertsNow)
	for i := 0; i < 5; i++ {
		again := EvaluateAlerts(p, nil, alertsNow)
		if len(again) != len(first) {
			t.Fatal("alert count changed between runs")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d: alert %d differs: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}

	// Overdue rent sorts before the upcoming power bill.
	if first[0].TargetID != "b1" || first[1].TargetID != "b2" {
		t.Errorf("bill order = %s, %s; want b1 (overdue) before b2 (upcoming)",
			first[0].TargetID, first[1].TargetID)
	}
}

func TestEvaluateAlerts_LowBalance(t *testing.T) {
	p := core.BudgetPeriod{
		Currency: "€",
		Income:   []core.IncomeItem{{ID: "i1", Name: "Stipendio", Actual: cents(100000)}},
		Expenses: []core.ExpenseItem{{ID: "e1", Name: "Groceries", Spent: cents(125000)}},
	}

	alerts := EvaluateAlerts(p, nil, alertsNow)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1: %+v", len(alerts), alerts)
	}
	a := alerts[0]
	if a.Category != AlertBalance || a.Severity != SeverityCritical || a.TargetID != "" {
		t.Errorf("alert = %+v, want a period-level critical balance alert", a)
	}
	if !strings.Contains(a.Message, "€250,00") {
		t.Errorf("message = %q, want the overshoot amount", a.Message)
	}

	// Rollover covering the gap clears the alert.
	p.Rollover = cents(30000)
	if got := EvaluateAlerts(p, nil, alertsNow); len(got) != 0 {
		t.Errorf("with covering rollover got %d alerts, want 0", len(got))
	}
}

func TestEvaluateAlerts_EmptyPeriod(t *testing.T) {
	if got := EvaluateAlerts(core.BudgetPeriod{}, nil, alertsNow); len(got) != 0 {
		t.Errorf("empty period produced %d alerts", len(got))
	}
}
