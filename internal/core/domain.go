package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Monthly PeriodType = "monthly"
	Custom  PeriodType = "custom"
)

type (
	PeriodType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// IncomeItem is a planned income source inside a period. Actual is what
	// arrived; until something arrives it stays zero and is never replaced
	// by Planned in any total.
	IncomeItem struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Planned Money  `json:"planned"`
		Actual  Money  `json:"actual"`
	}

	// ExpenseItem is a spending category with its budget and what has been
	// spent against it so far.
	ExpenseItem struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Budgeted Money  `json:"budgeted"`
		Spent    Money  `json:"spent"`
	}

	Bill struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Amount  Money  `json:"amount"`
		DueDate Date   `json:"due_date"`
		Paid    bool   `json:"paid"`
	}

	// Debt carries the outstanding balance and the payment committed for
	// this period. Totals count the payment, not the balance.
	Debt struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Balance Money  `json:"balance"`
		Payment Money  `json:"payment"`
		DueDate Date   `json:"due_date,omitempty"`
	}

	SavingsGoal struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Planned Money  `json:"planned"`
		Amount  Money  `json:"amount"`
	}

	Investment struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Amount  Money  `json:"amount"`
		Monthly Money  `json:"monthly"`
	}

	// BudgetPeriod is one monthly or custom-range budgeting snapshot, the
	// root entity everything else derives from. Line items belong to
	// exactly one period; a period is never merged, only superseded by a
	// new one that may carry a rollover forward.
	BudgetPeriod struct {
		ID          string        `json:"id"`
		Type        PeriodType    `json:"type"`
		Year        int           `json:"year"`
		Month       int           `json:"month"` // 1-12
		StartDate   Date          `json:"start_date,omitempty"` // custom range only
		EndDate     Date          `json:"end_date,omitempty"`   // custom range only
		Currency    string        `json:"currency"`             // display symbol, e.g. "€"
		Rollover    Money         `json:"rollover"`             // may be negative
		Income      []IncomeItem  `json:"income"`
		Expenses    []ExpenseItem `json:"expenses"`
		Bills       []Bill        `json:"bills"`
		Debts       []Debt        `json:"debts"`
		Savings     []SavingsGoal `json:"savings"`
		Investments []Investment  `json:"investments"`
		CreatedAt   time.Time     `json:"created_at"`
	}
)

var (
	ErrInvalidDay    = errors.New("invalid day")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidYear   = errors.New("invalid year")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty item name")
	ErrInvalidPeriod = errors.New("invalid period type")
	ErrInvalidRange  = errors.New("end date must not precede start date")
)

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date was left unset (optional due dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the period envelope. Line-item amounts are deliberately
// not validated here: the calculators are total functions and treat
// malformed or missing numbers as zero.
func (p BudgetPeriod) Validate() error {
	switch p.Type {
	case Monthly, Custom:
	default:
		return ErrInvalidPeriod
	}
	if p.Year < 1900 || p.Year > 3000 {
		return ErrInvalidYear
	}
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Type == Custom {
		if err := p.StartDate.Validate(); err != nil {
			return errors.New("invalid start date: " + err.Error())
		}
		if err := p.EndDate.Validate(); err != nil {
			return errors.New("invalid end date: " + err.Error())
		}
		if p.EndDate.Before(p.StartDate.Time) {
			return ErrInvalidRange
		}
	}
	for _, it := range p.Income {
		if strings.TrimSpace(it.Name) == "" {
			return ErrEmptyName
		}
	}
	for _, it := range p.Expenses {
		if strings.TrimSpace(it.Name) == "" {
			return ErrEmptyName
		}
	}
	for _, b := range p.Bills {
		if strings.TrimSpace(b.Name) == "" {
			return ErrEmptyName
		}
	}
	for _, d := range p.Debts {
		if strings.TrimSpace(d.Name) == "" {
			return ErrEmptyName
		}
	}
	return nil
}

// Label renders the period for logs and report headers.
func (p BudgetPeriod) Label() string {
	if p.Type == Custom && !p.StartDate.IsEmpty() && !p.EndDate.IsEmpty() {
		return p.StartDate.Format("2006-01-02") + " / " + p.EndDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}
