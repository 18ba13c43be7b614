package charts

import (
	"fmt"
	"strings"

	"budgetcharts/internal/core"

	"github.com/shopspring/decimal"
)

// BuildMonthlyComparison flags the months whose expenses exceed income.
// Both series must hold exactly one value per month, January first.
func BuildMonthlyComparison(income, expenses []decimal.Decimal) ([]bool, error) {
	if len(income) != core.MonthsInYear || len(expenses) != core.MonthsInYear {
		return nil, fmt.Errorf("%w: got income=%d expenses=%d", ErrInvalidShape, len(income), len(expenses))
	}
	flags := make([]bool, core.MonthsInYear)
	for i := range flags {
		flags[i] = expenses[i].GreaterThan(income[i])
	}
	return flags, nil
}

// ParseMonthlySeries parses comma separated monthly values such as
// "1200,980.50,0". Surrounding brackets and whitespace are tolerated.
// The number of values is not checked here.
func ParseMonthlySeries(text string) ([]decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	parts := strings.Split(text, ",")
	out := make([]decimal.Decimal, 0, len(parts))
	for i, part := range parts {
		v, err := core.ParseAmount(strings.Trim(strings.TrimSpace(part), `"'`))
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}
