// Package engine holds the pure financial calculators: alert evaluation,
// loan amortization, investment growth, progressive tax, VAT and the
// life-event scenario projector. Every function here is a total function of
// its inputs: no I/O, no shared state, malformed numbers degrade to zero
// instead of panicking.
package engine

import (
	"fmt"
	"sort"
	"time"

	"bilancio/internal/core"
)

type AlertCategory string

const (
	AlertBalance AlertCategory = "balance"
	AlertBill    AlertCategory = "bill"
	AlertDebt    AlertCategory = "debt"
	AlertBudget  AlertCategory = "budget"
	AlertSavings AlertCategory = "savings"
)

type AlertSeverity int

const (
	SeverityInfo AlertSeverity = iota
	SeverityWarning
	SeverityCritical
)

func (s AlertSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Alert is a derived, never-persisted finding about a period. TargetID is
// the id of the originating line item, so a caller can link straight back
// to it without parsing anything out of the message.
type Alert struct {
	Category AlertCategory `json:"category"`
	TargetID string        `json:"target_id"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// UpcomingWindowDays is how far ahead a bill or debt due date raises an
// "upcoming" alert.
const UpcomingWindowDays = 7

// AnomalyFactor is the unusual-spending threshold: a category alerts when
// its spend exceeds this multiple of the trailing average over the supplied
// history. The multiple is a deliberate policy choice, not tuned to data.
const AnomalyFactor = 1.5

// anomalyMinPeriods is the minimum number of prior periods that must carry
// a category before the trailing average is trusted.
const anomalyMinPeriods = 2

// EvaluateAlerts inspects a period and produces the prioritized alert list.
// history, when non-empty, holds prior periods (oldest first) used for the
// unusual-spending comparison. The result is deterministic for identical
// input: sorted by category, then severity (worse first), then target id.
// Absent or malformed fields never alert and never crash.
func EvaluateAlerts(p core.BudgetPeriod, history []core.BudgetPeriod, now time.Time) []Alert {
	var alerts []Alert
	today := truncateToDay(now)

	// Period-level alert, no target item.
	if left := p.Totals().LeftToSpend; left.Cents < 0 {
		alerts = append(alerts, Alert{AlertBalance, "", SeverityCritical,
			fmt.Sprintf("spending exceeds available funds by %s", left.Abs().Format(p.Currency))})
	}

	for _, b := range p.Bills {
		if b.Paid || b.DueDate.IsEmpty() {
			continue
		}
		due := truncateToDay(b.DueDate.Time)
		days := daysBetween(today, due)
		switch {
		case days <= 0:
			msg := fmt.Sprintf("%s is due today", b.Name)
			if days < 0 {
				msg = fmt.Sprintf("%s is %d day(s) overdue", b.Name, -days)
			}
			alerts = append(alerts, Alert{AlertBill, b.ID, SeverityCritical, msg})
		case days <= UpcomingWindowDays:
			alerts = append(alerts, Alert{AlertBill, b.ID, SeverityWarning,
				fmt.Sprintf("%s is due in %d day(s)", b.Name, days)})
		}
	}

	for _, d := range p.Debts {
		if d.DueDate.IsEmpty() || d.Payment.Cents <= 0 {
			continue
		}
		due := truncateToDay(d.DueDate.Time)
		days := daysBetween(today, due)
		switch {
		case days <= 0:
			alerts = append(alerts, Alert{AlertDebt, d.ID, SeverityCritical,
				fmt.Sprintf("payment on %s is due", d.Name)})
		case days <= UpcomingWindowDays:
			alerts = append(alerts, Alert{AlertDebt, d.ID, SeverityWarning,
				fmt.Sprintf("payment on %s is due in %d day(s)", d.Name, days)})
		}
	}

	trailing := trailingCategoryAverages(history)
	for _, e := range p.Expenses {
		if e.Budgeted.Cents > 0 {
			ratio := float64(e.Spent.Cents) / float64(e.Budgeted.Cents)
			// Mutually exclusive per category: only the worse one fires.
			switch {
			case ratio >= 1.0:
				alerts = append(alerts, Alert{AlertBudget, e.ID, SeverityCritical,
					fmt.Sprintf("%s is over budget (%.0f%%)", e.Name, ratio*100)})
			case ratio >= 0.8:
				alerts = append(alerts, Alert{AlertBudget, e.ID, SeverityWarning,
					fmt.Sprintf("%s is at %.0f%% of budget", e.Name, ratio*100)})
			}
		}
		if avg, ok := trailing[e.Name]; ok && avg > 0 &&
			float64(e.Spent.Cents) > AnomalyFactor*avg {
			alerts = append(alerts, Alert{AlertBudget, e.ID, SeverityWarning,
				fmt.Sprintf("unusual spending on %s, %.0f%% of the recent average",
					e.Name, float64(e.Spent.Cents)/avg*100)})
		}
	}

	for _, s := range p.Savings {
		if s.Planned.Cents > 0 && s.Amount.Cents >= s.Planned.Cents {
			alerts = append(alerts, Alert{AlertSavings, s.ID, SeverityInfo,
				fmt.Sprintf("savings goal %s reached", s.Name)})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Category != alerts[j].Category {
			return alerts[i].Category < alerts[j].Category
		}
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity > alerts[j].Severity
		}
		return alerts[i].TargetID < alerts[j].TargetID
	})
	return alerts
}

// trailingCategoryAverages computes the mean spend per expense category
// across history, keeping only categories seen in enough prior periods.
func trailingCategoryAverages(history []core.BudgetPeriod) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, p := range history {
		for _, e := range p.Expenses {
			if e.Spent.Cents <= 0 {
				continue
			}
			sums[e.Name] += float64(e.Spent.Cents)
			counts[e.Name]++
		}
	}
	avgs := make(map[string]float64, len(sums))
	for name, sum := range sums {
		if counts[name] >= anomalyMinPeriods {
			avgs[name] = sum / float64(counts[name])
		}
	}
	return avgs
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
