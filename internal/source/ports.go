// Package source defines where chart page data comes from. Every reader is
// read-only: it never creates, changes or deletes budget data.
package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"budgetcharts/internal/charts"
	"budgetcharts/internal/core"
)

// Query selects one account and one month. The yearly series covers the
// whole Year; the pies cover Month of Year.
type Query struct {
	AccountID int64
	Year      int
	Month     int
}

// CurrentQuery returns the query for the current month.
func CurrentQuery(accountID int64, now time.Time) Query {
	return Query{AccountID: accountID, Year: now.Year(), Month: int(now.Month())}
}

func (q Query) Validate() error {
	if q.AccountID < 1 {
		return fmt.Errorf("invalid account id %d", q.AccountID)
	}
	if q.Month < 1 || q.Month > 12 {
		return core.ErrInvalidMonth
	}
	if q.Year < 1 {
		return fmt.Errorf("invalid year %d", q.Year)
	}
	return nil
}

// Ports for inbound adapters.
type (
	// PageDataReader loads everything the charts of one page need.
	PageDataReader interface {
		ReadPageData(ctx context.Context, q Query) (charts.PageData, error)
	}

	// OperationLister returns the operations of an account whose final date
	// falls in the given year. Planned operations may be included; they are
	// filtered out downstream.
	OperationLister interface {
		ListOperations(ctx context.Context, accountID int64, year int) ([]core.Operation, error)
	}
)

// Assemble derives page data from the operations of one account and year.
func Assemble(q Query, currency string, yearOps []core.Operation) charts.PageData {
	income, expenses := core.YearSeries(yearOps, q.Year)
	return charts.PageData{
		AccountID:  strconv.FormatInt(q.AccountID, 10),
		Year:       q.Year,
		Month:      q.Month,
		Currency:   currency,
		Operations: charts.FromOperations(core.MonthOperations(yearOps, q.Year, q.Month)),
		Income:     income,
		Expenses:   expenses,
	}
}

// ListerReader adapts an OperationLister into a PageDataReader.
type ListerReader struct {
	Lister   OperationLister
	Currency string
}

func (r ListerReader) ReadPageData(ctx context.Context, q Query) (charts.PageData, error) {
	if err := q.Validate(); err != nil {
		return charts.PageData{}, fmt.Errorf("invalid query: %w", err)
	}
	ops, err := r.Lister.ListOperations(ctx, q.AccountID, q.Year)
	if err != nil {
		return charts.PageData{}, fmt.Errorf("list operations: %w", err)
	}
	return Assemble(q, r.Currency, ops), nil
}
