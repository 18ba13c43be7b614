package charts

import (
	"errors"
	"strings"
)

// Appearance holds the colours and titles used by the chart builders.
type Appearance struct {
	Palette            []string `toml:"palette" json:"palette"`
	IncomeColor        string   `toml:"income_color" json:"incomeColor"`
	ExpenseColor       string   `toml:"expense_color" json:"expenseColor"`
	EmphasisColor      string   `toml:"emphasis_color" json:"emphasisColor"`
	NoEmphasisColor    string   `toml:"no_emphasis_color" json:"noEmphasisColor"`
	ExpenseBorderColor string   `toml:"expense_border_color" json:"expenseBorderColor"`
	BorderWidth        int      `toml:"border_width" json:"borderWidth"`
	TitleFontSize      int      `toml:"title_font_size" json:"titleFontSize"`
	Titles             Titles   `toml:"titles" json:"titles"`
}

// Titles are the base chart titles, before the currency suffix.
type Titles struct {
	Balance  string `toml:"balance" json:"balance"`
	Income   string `toml:"income" json:"income"`
	Expenses string `toml:"expenses" json:"expenses"`
}

// DefaultAppearance returns the stock chart look.
func DefaultAppearance() Appearance {
	return Appearance{
		Palette: []string{
			"rgba(139, 0, 0)",
			"rgba(218, 165, 32, 1)",
			"rgba(0, 255, 0 , 1)",
			"rgba(32, 178, 170, 1)",
			"rgba(0, 0, 255, 1)",
			"rgba(200, 150, 0, 1)",
		},
		IncomeColor:        "rgba(0, 255, 0, 0.7)",
		ExpenseColor:       "rgba(0, 0, 255, 0.7)",
		EmphasisColor:      "rgba(255, 0, 0, 1)",
		NoEmphasisColor:    "rgba(255, 0, 0, 0)",
		ExpenseBorderColor: "rgba(0, 0, 255, 0)",
		BorderWidth:        3,
		TitleFontSize:      16,
		Titles: Titles{
			Balance:  "This year's balance",
			Income:   "This month's income",
			Expenses: "This month's expenses",
		},
	}
}

// Validate reports every problem at once.
func (a Appearance) Validate() error {
	var problems []string
	if len(a.Palette) == 0 {
		problems = append(problems, "palette must have at least one colour")
	}
	required := []struct{ name, value string }{
		{"income_color", a.IncomeColor},
		{"expense_color", a.ExpenseColor},
		{"emphasis_color", a.EmphasisColor},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.name+" cannot be empty")
		}
	}
	if a.BorderWidth < 0 {
		problems = append(problems, "border_width cannot be negative")
	}
	if a.TitleFontSize < 1 {
		problems = append(problems, "title_font_size must be positive")
	}
	if len(problems) > 0 {
		return errors.New("invalid appearance: " + strings.Join(problems, "; "))
	}
	return nil
}
