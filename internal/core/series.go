package core

import (
	"github.com/shopspring/decimal"
)

// MonthsInYear is the length of every monthly series.
const MonthsInYear = 12

// YearSeries buckets the finalized operations of the given year by the month
// of their final date. Income holds the sum of positive amounts, expenses the
// sum of the absolute values of negative amounts. Zero amounts count in
// neither series, and planned operations are ignored.
func YearSeries(ops []Operation, year int) (income, expenses []decimal.Decimal) {
	income = make([]decimal.Decimal, MonthsInYear)
	expenses = make([]decimal.Decimal, MonthsInYear)
	for i := range income {
		income[i] = decimal.Zero
		expenses[i] = decimal.Zero
	}

	for _, op := range ops {
		if !op.Finalized() || op.FinalDate.Year() != year {
			continue
		}
		m := op.FinalDate.Month() - 1
		switch {
		case op.IsIncome():
			income[m] = income[m].Add(op.Amount)
		case op.Amount.IsNegative():
			expenses[m] = expenses[m].Add(op.Amount.Neg())
		}
	}
	return income, expenses
}

// MonthOperations returns the finalized operations whose final date falls in
// the given month, in input order.
func MonthOperations(ops []Operation, year, month int) []Operation {
	var out []Operation
	for _, op := range ops {
		if !op.Finalized() {
			continue
		}
		if op.FinalDate.Year() == year && op.FinalDate.Month() == month {
			out = append(out, op)
		}
	}
	return out
}
