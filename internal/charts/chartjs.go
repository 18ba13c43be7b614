package charts

import (
	"encoding/json"
	"fmt"

	"budgetcharts/internal/core"

	"github.com/shopspring/decimal"
)

// MonthLabels are the x-axis labels of the yearly bar chart.
var MonthLabels = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Chart.js configuration. Field names follow the Chart.js v3+ object model.
type (
	Config struct {
		Type    string  `json:"type"`
		Data    Data    `json:"data"`
		Options Options `json:"options"`
	}

	Data struct {
		Labels   []string  `json:"labels"`
		Datasets []Dataset `json:"datasets"`
	}

	Dataset struct {
		Label           string        `json:"label,omitempty"`
		Data            []json.Number `json:"data"`
		BackgroundColor Colors        `json:"backgroundColor,omitempty"`
		BorderColor     Colors        `json:"borderColor,omitempty"`
		BorderWidth     int           `json:"borderWidth,omitempty"`
	}

	Options struct {
		Plugins Plugins `json:"plugins"`
	}

	Plugins struct {
		Title Title `json:"title"`
	}

	Title struct {
		Text    string `json:"text"`
		Display bool   `json:"display"`
		Font    Font   `json:"font"`
	}

	Font struct {
		Size int `json:"size"`
	}
)

// Colors is a per-element colour list. A single colour is encoded as a plain
// string, which Chart.js applies to every element.
type Colors []string

func (c Colors) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

func (c *Colors) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*c = Colors{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = many
	return nil
}

// ChartTitle appends the currency to a base title when one is set.
func ChartTitle(base, currency string) string {
	if currency == "" {
		return base
	}
	return base + ", " + currency
}

// BarChart builds the yearly income/expenses bar chart. The income bar of a
// month gets the emphasis border when its flag is set.
func BarChart(income, expenses []decimal.Decimal, flags []bool, a Appearance, currency string) (Config, error) {
	if len(income) != core.MonthsInYear || len(expenses) != core.MonthsInYear || len(flags) != core.MonthsInYear {
		return Config{}, fmt.Errorf("%w: got income=%d expenses=%d flags=%d",
			ErrInvalidShape, len(income), len(expenses), len(flags))
	}

	borders := make(Colors, len(flags))
	for i, over := range flags {
		if over {
			borders[i] = a.EmphasisColor
		} else {
			borders[i] = a.NoEmphasisColor
		}
	}

	return Config{
		Type: "bar",
		Data: Data{
			Labels: append([]string(nil), MonthLabels...),
			Datasets: []Dataset{
				{
					Label:           "Income",
					Data:            numbers(income),
					BackgroundColor: Colors{a.IncomeColor},
					BorderColor:     borders,
					BorderWidth:     a.BorderWidth,
				},
				{
					Label:           "Expenses",
					Data:            numbers(expenses),
					BackgroundColor: Colors{a.ExpenseColor},
					BorderColor:     Colors{a.ExpenseBorderColor},
					BorderWidth:     a.BorderWidth,
				},
			},
		},
		Options: titleOptions(ChartTitle(a.Titles.Balance, currency), a),
	}, nil
}

// PieChart builds a category pie. Slice colours cycle through the palette.
func PieChart(totals CategoryTotals, title string, a Appearance, currency string) Config {
	colors := make(Colors, totals.Len())
	for i := range colors {
		colors[i] = paletteColor(a.Palette, i)
	}

	return Config{
		Type: "pie",
		Data: Data{
			Labels: totals.Labels(),
			Datasets: []Dataset{
				{
					Data:            numbers(totals.Amounts()),
					BackgroundColor: colors,
				},
			},
		},
		Options: titleOptions(ChartTitle(title, currency), a),
	}
}

func titleOptions(text string, a Appearance) Options {
	return Options{Plugins: Plugins{Title: Title{
		Text:    text,
		Display: true,
		Font:    Font{Size: a.TitleFontSize},
	}}}
}

func paletteColor(palette []string, i int) string {
	if len(palette) == 0 {
		return ""
	}
	return palette[i%len(palette)]
}

// numbers encodes decimals as exact JSON numbers.
func numbers(values []decimal.Decimal) []json.Number {
	out := make([]json.Number, len(values))
	for i, v := range values {
		out[i] = json.Number(v.String())
	}
	return out
}
