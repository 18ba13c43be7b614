package charts

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PageData is everything a budget page needs to draw its charts: the month's
// operations for the pies and the year's monthly totals for the bar chart.
type PageData struct {
	AccountID  string
	Year       int
	Month      int
	Currency   string
	Operations []OperationRecord
	Income     []decimal.Decimal
	Expenses   []decimal.Decimal
}

// Bundle is the finished chart payload for one page.
type Bundle struct {
	AccountID     string            `json:"accountId,omitempty"`
	Year          int               `json:"year,omitempty"`
	Month         int               `json:"month,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	IncomeTotals  CategoryTotals    `json:"incomeTotals"`
	ExpenseTotals CategoryTotals    `json:"expenseTotals"`
	Income        []decimal.Decimal `json:"income"`
	Expenses      []decimal.Decimal `json:"expenses"`
	OverBudget    []bool            `json:"overBudget"`
	Bar           Config            `json:"bar"`
	IncomePie     Config            `json:"incomePie"`
	ExpensePie    Config            `json:"expensePie"`
}

// Build aggregates the page data and assembles all three charts.
func Build(p PageData, a Appearance) (Bundle, error) {
	income, expenses, err := AggregateByCategory(p.Operations)
	if err != nil {
		return Bundle{}, fmt.Errorf("aggregate by category: %w", err)
	}
	flags, err := BuildMonthlyComparison(p.Income, p.Expenses)
	if err != nil {
		return Bundle{}, fmt.Errorf("monthly comparison: %w", err)
	}
	bar, err := BarChart(p.Income, p.Expenses, flags, a, p.Currency)
	if err != nil {
		return Bundle{}, fmt.Errorf("bar chart: %w", err)
	}

	return Bundle{
		AccountID:     p.AccountID,
		Year:          p.Year,
		Month:         p.Month,
		Currency:      p.Currency,
		IncomeTotals:  income,
		ExpenseTotals: expenses,
		Income:        p.Income,
		Expenses:      p.Expenses,
		OverBudget:    flags,
		Bar:           bar,
		IncomePie:     PieChart(income, a.Titles.Income, a, p.Currency),
		ExpensePie:    PieChart(expenses, a.Titles.Expenses, a, p.Currency),
	}, nil
}
