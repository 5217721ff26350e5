package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bilancio/internal/core"
)

// ErrNotFound is returned when a period or setting does not exist.
var ErrNotFound = errors.New("not found")

const currentPeriodKey = "current_period_id"

// SQLiteRepository persists budget periods, the current-period pointer and
// advisory texts. Line items travel as one JSON payload per period: the
// period is the unit of ownership, so there is nothing to join.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	version, err := SchemaVersion(dbPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("SQLite storage ready", "path", dbPath, "schema_version", version)

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable, for readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// payload is the JSON blob holding a period's line-item collections.
type payload struct {
	Income      []core.IncomeItem  `json:"income"`
	Expenses    []core.ExpenseItem `json:"expenses"`
	Bills       []core.Bill        `json:"bills"`
	Debts       []core.Debt        `json:"debts"`
	Savings     []core.SavingsGoal `json:"savings"`
	Investments []core.Investment  `json:"investments"`
}

// SavePeriod inserts or replaces a period and returns it with its id set
// and version bumped. A missing id means a new period and gets a uuid.
func (r *SQLiteRepository) SavePeriod(ctx context.Context, p core.BudgetPeriod) (core.BudgetPeriod, int64, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = time.Now().UTC()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(payload{
		Income:      p.Income,
		Expenses:    p.Expenses,
		Bills:       p.Bills,
		Debts:       p.Debts,
		Savings:     p.Savings,
		Investments: p.Investments,
	})
	if err != nil {
		return p, 0, fmt.Errorf("marshal period payload: %w", err)
	}

	start, end := "", ""
	if !p.StartDate.IsEmpty() {
		start = p.StartDate.Format("2006-01-02")
	}
	if !p.EndDate.IsEmpty() {
		end = p.EndDate.Format("2006-01-02")
	}

	var version int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO periods (id, period_type, year, month, start_date, end_date,
			currency, rollover_cents, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			period_type = excluded.period_type,
			year = excluded.year,
			month = excluded.month,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			currency = excluded.currency,
			rollover_cents = excluded.rollover_cents,
			payload = excluded.payload,
			version = periods.version + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING version`,
		p.ID, string(p.Type), p.Year, p.Month, start, end,
		p.Currency, p.Rollover.Cents, string(body), p.CreatedAt).Scan(&version)
	if err != nil {
		return p, 0, fmt.Errorf("save period: %w", err)
	}

	slog.InfoContext(ctx, "Period saved",
		"period_id", p.ID,
		"period_label", p.Label(),
		"version", version)
	return p, version, nil
}

// GetPeriod loads one period by id.
func (r *SQLiteRepository) GetPeriod(ctx context.Context, id string) (core.BudgetPeriod, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, period_type, year, month, start_date, end_date,
			currency, rollover_cents, payload, created_at
		FROM periods WHERE id = ?`, id)
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("get period: %w", err)
	}
	return p, nil
}

// ListPeriods returns all periods ordered by creation time, oldest first:
// the shape the alert evaluator expects its history in.
func (r *SQLiteRepository) ListPeriods(ctx context.Context) ([]core.BudgetPeriod, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, period_type, year, month, start_date, end_date,
			currency, rollover_cents, payload, created_at
		FROM periods ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var periods []core.BudgetPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// DeletePeriod removes a period and its advisories. Deleting the current
// period clears the pointer.
func (r *SQLiteRepository) DeletePeriod(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM periods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM advisories WHERE period_id = ?`, id); err != nil {
		return fmt.Errorf("delete advisories: %w", err)
	}
	if current, err := r.CurrentPeriodID(ctx); err == nil && current == id {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, currentPeriodKey); err != nil {
			return fmt.Errorf("clear current period: %w", err)
		}
	}
	slog.InfoContext(ctx, "Period deleted", "period_id", id)
	return nil
}

// SetCurrentPeriod points the application at a period; it must exist.
func (r *SQLiteRepository) SetCurrentPeriod(ctx context.Context, id string) error {
	if _, err := r.GetPeriod(ctx, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currentPeriodKey, id)
	if err != nil {
		return fmt.Errorf("set current period: %w", err)
	}
	return nil
}

// CurrentPeriodID returns the current-period pointer.
func (r *SQLiteRepository) CurrentPeriodID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, currentPeriodKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get current period: %w", err)
	}
	return id, nil
}

// SaveAdvisory stores a generated advisory text for a period.
func (r *SQLiteRepository) SaveAdvisory(ctx context.Context, periodID, model, content string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO advisories (period_id, model, content) VALUES (?, ?, ?)`,
		periodID, model, content)
	if err != nil {
		return fmt.Errorf("save advisory: %w", err)
	}
	slog.InfoContext(ctx, "Advisory saved", "period_id", periodID, "model", model)
	return nil
}

// LatestAdvisory returns the newest advisory text for a period.
func (r *SQLiteRepository) LatestAdvisory(ctx context.Context, periodID string) (string, error) {
	var content string
	err := r.db.QueryRowContext(ctx, `
		SELECT content FROM advisories WHERE period_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, periodID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get latest advisory: %w", err)
	}
	return content, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPeriod(row rowScanner) (core.BudgetPeriod, error) {
	var (
		p             core.BudgetPeriod
		periodType    string
		start, end    string
		rolloverCents int64
		body          string
		createdAt     time.Time
	)
	err := row.Scan(&p.ID, &periodType, &p.Year, &p.Month, &start, &end,
		&p.Currency, &rolloverCents, &body, &createdAt)
	if err != nil {
		return p, err
	}
	p.Type = core.PeriodType(periodType)
	p.Rollover = core.Money{Cents: rolloverCents}
	p.CreatedAt = createdAt
	if start != "" {
		if t, err := time.Parse("2006-01-02", start); err == nil {
			p.StartDate = core.Date{Time: t}
		}
	}
	if end != "" {
		if t, err := time.Parse("2006-01-02", end); err == nil {
			p.EndDate = core.Date{Time: t}
		}
	}

	var items payload
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return p, fmt.Errorf("unmarshal period payload: %w", err)
	}
	p.Income = items.Income
	p.Expenses = items.Expenses
	p.Bills = items.Bills
	p.Debts = items.Debts
	p.Savings = items.Savings
	p.Investments = items.Investments
	return p, nil
}
