package core

import (
	"testing"
	"time"
)

func TestBudgetPeriodValidate(t *testing.T) {
	valid := BudgetPeriod{Type: Monthly, Year: 2025, Month: 3}

	tests := []struct {
		name    string
		mutate  func(*BudgetPeriod)
		wantErr error
	}{
		{"valid monthly", func(p *BudgetPeriod) {}, nil},
		{"bad type", func(p *BudgetPeriod) { p.Type = "weekly" }, ErrInvalidPeriod},
		{"month zero", func(p *BudgetPeriod) { p.Month = 0 }, ErrInvalidMonth},
		{"month thirteen", func(p *BudgetPeriod) { p.Month = 13 }, ErrInvalidMonth},
		{"ancient year", func(p *BudgetPeriod) { p.Year = 1800 }, ErrInvalidYear},
		{"unnamed income", func(p *BudgetPeriod) {
			p.Income = []IncomeItem{{Name: "  "}}
		}, ErrEmptyName},
		{"unnamed bill", func(p *BudgetPeriod) {
			p.Bills = []Bill{{Name: ""}}
		}, ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudgetPeriodValidate_CustomRange(t *testing.T) {
	p := BudgetPeriod{
		Type:      Custom,
		Year:      2025,
		Month:     3,
		StartDate: NewDate(2025, 3, 1),
		EndDate:   NewDate(2025, 3, 20),
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid custom range: %v", err)
	}

	p.EndDate = NewDate(2025, 2, 1)
	if err := p.Validate(); err != ErrInvalidRange {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}

	p.StartDate = Date{}
	if err := p.Validate(); err == nil {
		t.Error("custom period without a start date must not validate")
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2025, 3, 15).Validate(); err != nil {
		t.Errorf("valid date: %v", err)
	}
	if err := (Date{}).Validate(); err == nil {
		t.Error("zero date must not validate")
	}
}

func TestDateAccessors(t *testing.T) {
	d := NewDate(2025, 7, 4)
	if d.Year() != 2025 || d.Month() != 7 || d.Day() != 4 {
		t.Errorf("accessors = %d-%d-%d", d.Year(), d.Month(), d.Day())
	}
	if d.IsEmpty() {
		t.Error("set date reported empty")
	}
	if !(Date{}).IsEmpty() {
		t.Error("zero date not reported empty")
	}
}

func TestPeriodLabel(t *testing.T) {
	p := BudgetPeriod{Type: Monthly, Year: 2025, Month: 3}
	if got := p.Label(); got != "March 2025" {
		t.Errorf("Label = %q", got)
	}

	p = BudgetPeriod{
		Type:      Custom,
		StartDate: NewDate(2025, 3, 1),
		EndDate:   NewDate(2025, 3, 20),
	}
	if got := p.Label(); got != "2025-03-01 / 2025-03-20" {
		t.Errorf("Label = %q", got)
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 100}).Validate(); err != nil {
		t.Errorf("positive amount: %v", err)
	}
	if err := (Money{}).Validate(); err != ErrInvalidAmount {
		t.Errorf("zero amount err = %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err != ErrInvalidAmount {
		t.Errorf("negative amount err = %v", err)
	}
}

func TestPeriodCreatedAtOrdering(t *testing.T) {
	// History is ordered by creation time; the zero value sorts first.
	older := BudgetPeriod{CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := BudgetPeriod{CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	if !older.CreatedAt.Before(newer.CreatedAt) {
		t.Error("expected older before newer")
	}
}
