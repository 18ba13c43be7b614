// Package storage reads chart data from the budget application's SQLite
// database. The database is opened read-only; its schema is owned by the
// budget application.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"budgetcharts/internal/charts"
	"budgetcharts/internal/core"
	blog "budgetcharts/internal/log"
	"budgetcharts/internal/source"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite"
)

const monthOperationsQuery = `
SELECT o.id, o.account_id, o.label_id, COALESCE(l.name, ''),
       CAST(o.amount AS TEXT), COALESCE(o.description, ''),
       CAST(o.creation_date AS TEXT), CAST(o.final_date AS TEXT)
FROM budget_operation o
LEFT JOIN budget_label l ON l.id = o.label_id
WHERE o.account_id = ?
  AND o.final_date IS NOT NULL
  AND o.final_date >= ? AND o.final_date < ?
ORDER BY o.id`

// Sums are computed in integer cents so no floating point error reaches the series.
const yearSeriesQuery = `
SELECT CAST(strftime('%m', final_date) AS INTEGER) AS month,
       COALESCE(SUM(CASE WHEN amount > 0 THEN CAST(ROUND(amount * 100) AS INTEGER) ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN amount < 0 THEN CAST(ROUND(-amount * 100) AS INTEGER) ELSE 0 END), 0)
FROM budget_operation
WHERE account_id = ?
  AND final_date IS NOT NULL
  AND final_date >= ? AND final_date < ?
GROUP BY month
ORDER BY month`

type SQLiteRepository struct {
	db       *sql.DB
	currency string
}

var _ source.PageDataReader = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens the database at dbPath in read-only mode.
func NewSQLiteRepository(dbPath, currency string) (*SQLiteRepository, error) {
	dsn := "file:" + (&url.URL{Path: dbPath}).EscapedPath() + "?mode=ro&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{db: db, currency: currency}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadPageData implements source.PageDataReader. The month's operations and
// the yearly series are fetched concurrently.
func (r *SQLiteRepository) ReadPageData(ctx context.Context, q source.Query) (charts.PageData, error) {
	if err := q.Validate(); err != nil {
		return charts.PageData{}, fmt.Errorf("invalid query: %w", err)
	}
	start := time.Now()

	var (
		ops              []core.Operation
		income, expenses []decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ops, err = r.ListMonthOperations(gctx, q.AccountID, q.Year, q.Month)
		return err
	})
	g.Go(func() error {
		var err error
		income, expenses, err = r.YearSeries(gctx, q.AccountID, q.Year)
		return err
	})
	if err := g.Wait(); err != nil {
		return charts.PageData{}, err
	}

	slog.InfoContext(ctx, "Loaded page data from SQLite", blog.NewFields().
		WithComponent(blog.ComponentSQLite).
		WithOperation(blog.OpLoad).
		WithPeriod(strconv.FormatInt(q.AccountID, 10), q.Year, q.Month).
		WithDuration(time.Since(start)).
		ToSlice()...)

	return charts.PageData{
		AccountID:  strconv.FormatInt(q.AccountID, 10),
		Year:       q.Year,
		Month:      q.Month,
		Currency:   r.currency,
		Operations: charts.FromOperations(ops),
		Income:     income,
		Expenses:   expenses,
	}, nil
}

// ListMonthOperations returns the finalized operations of one month, oldest id first.
func (r *SQLiteRepository) ListMonthOperations(ctx context.Context, accountID int64, year, month int) ([]core.Operation, error) {
	from := core.NewDate(year, month, 1)
	to := core.Date{Time: from.AddDate(0, 1, 0)}

	rows, err := r.db.QueryContext(ctx, monthOperationsQuery, accountID, isoDate(from), isoDate(to))
	if err != nil {
		return nil, fmt.Errorf("query month operations: %w", err)
	}
	defer rows.Close()

	var out []core.Operation
	for rows.Next() {
		var (
			op                      core.Operation
			labelID                 sql.NullInt64
			labelName, amount, desc string
			created, final          sql.NullString
		)
		if err := rows.Scan(&op.ID, &op.AccountID, &labelID, &labelName, &amount, &desc, &created, &final); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		if op.Amount, err = core.ParseAmount(amount); err != nil {
			return nil, fmt.Errorf("operation %d: %w", op.ID, err)
		}
		if labelID.Valid {
			op.Label = &core.Label{ID: labelID.Int64, Name: labelName}
		}
		op.Description = desc
		if created.Valid {
			if op.CreatedAt, err = core.ParseDate(created.String); err != nil {
				return nil, fmt.Errorf("operation %d creation date %q: %w", op.ID, created.String, err)
			}
		}
		if op.FinalDate, err = core.ParseDate(final.String); err != nil {
			return nil, fmt.Errorf("operation %d final date %q: %w", op.ID, final.String, err)
		}
		out = append(out, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return out, nil
}

// YearSeries returns per-month income and expense totals of the finalized
// operations of one year. Months without operations are zero.
func (r *SQLiteRepository) YearSeries(ctx context.Context, accountID int64, year int) (income, expenses []decimal.Decimal, err error) {
	from := core.NewDate(year, 1, 1)
	to := core.NewDate(year+1, 1, 1)

	rows, err := r.db.QueryContext(ctx, yearSeriesQuery, accountID, isoDate(from), isoDate(to))
	if err != nil {
		return nil, nil, fmt.Errorf("query year series: %w", err)
	}
	defer rows.Close()

	income = make([]decimal.Decimal, core.MonthsInYear)
	expenses = make([]decimal.Decimal, core.MonthsInYear)
	for i := range income {
		income[i], expenses[i] = decimal.Zero, decimal.Zero
	}
	for rows.Next() {
		var month int
		var incomeCents, expenseCents int64
		if err := rows.Scan(&month, &incomeCents, &expenseCents); err != nil {
			return nil, nil, fmt.Errorf("scan year series: %w", err)
		}
		if month < 1 || month > core.MonthsInYear {
			return nil, nil, fmt.Errorf("year series: %w: %d", core.ErrInvalidMonth, month)
		}
		income[month-1] = decimal.New(incomeCents, -core.AmountPlaces)
		expenses[month-1] = decimal.New(expenseCents, -core.AmountPlaces)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate year series: %w", err)
	}
	return income, expenses, nil
}

func isoDate(d core.Date) string {
	return d.Format("2006-01-02")
}
