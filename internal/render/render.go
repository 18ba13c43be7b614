// Package render draws chart bundles as text for terminal output.
package render

import (
	"fmt"
	"strings"

	"budgetcharts/internal/charts"
	"budgetcharts/internal/core"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Theme colors
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

const (
	barWidth     = 24
	shareWidth   = 20
	overMarker   = "▲"
	titleWidth   = 61
	monthNameLen = 3
)

// Table is a bordered text table. The first and last columns are
// left-aligned, the others right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Emphasis marks rows drawn in the over-budget style
	Emphasis []bool
}

// Bundle renders the title, the yearly comparison and both category breakdowns.
func Bundle(b charts.Bundle) string {
	var sb strings.Builder

	sb.WriteString(RenderTitle(bundleTitle(b)))
	sb.WriteString("\n\n")
	sb.WriteString(RenderYear(b.Income, b.Expenses, b.OverBudget, b.Currency))
	sb.WriteString("\n")
	sb.WriteString(RenderCategories("Income", b.IncomeTotals, b.Currency))
	sb.WriteString("\n")
	sb.WriteString(RenderCategories("Expenses", b.ExpenseTotals, b.Currency))
	return sb.String()
}

func bundleTitle(b charts.Bundle) string {
	title := "BUDGET"
	if b.AccountID != "" {
		title += "  Account " + b.AccountID
	}
	if b.Month >= 1 && b.Month <= core.MonthsInYear {
		title += fmt.Sprintf("  %s %d", charts.MonthLabels[b.Month-1], b.Year)
	} else if b.Year > 0 {
		title += fmt.Sprintf("  %d", b.Year)
	}
	return title
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(titleWidth).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderYear renders each month as an income line and an expense line, with
// bars scaled to the largest value of the year. Over-budget months are marked.
func RenderYear(income, expenses []decimal.Decimal, over []bool, currency string) string {
	peak := decimal.Zero
	for i := range income {
		peak = decimal.Max(peak, income[i])
		if i < len(expenses) {
			peak = decimal.Max(peak, expenses[i])
		}
	}

	rows := make([][]string, 0, 2*len(income))
	emphasis := make([]bool, 0, 2*len(income))
	for i := range income {
		exp := decimal.Zero
		if i < len(expenses) {
			exp = expenses[i]
		}
		flagged := i < len(over) && over[i]
		marker := ""
		if flagged {
			marker = overMarker
		}
		rows = append(rows,
			[]string{monthName(i), "in", core.FormatAmount(income[i], currency), "", bar(income[i], peak, barWidth, "█")},
			[]string{"", "out", core.FormatAmount(exp, currency), marker, bar(exp, peak, barWidth, "▒")},
		)
		emphasis = append(emphasis, false, flagged)
	}

	return RenderTable(Table{
		Title:    "Income vs expenses",
		Headers:  []string{"Month", "", "Amount", "", ""},
		Rows:     rows,
		Emphasis: emphasis,
	})
}

// RenderCategories renders a category table with each category's share of the total.
func RenderCategories(title string, totals charts.CategoryTotals, currency string) string {
	if totals.Len() == 0 {
		return "  " + headerStyle.Render(title) + "\n  " + mutedStyle.Render("No operations.") + "\n"
	}

	sum := totals.Sum()
	rows := make([][]string, 0, totals.Len()+2)
	for _, item := range totals.Items() {
		rows = append(rows, []string{
			item.Name,
			core.FormatAmount(item.Total, currency),
			percent(item.Total, sum),
			bar(item.Total, sum, shareWidth, "█"),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", core.FormatAmount(sum, currency), "", ""})

	return RenderTable(Table{
		Title:   title,
		Headers: []string{"Category", "Amount", "Share", ""},
		Rows:    rows,
	})
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i == 0 || i == numCols-1)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for r, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		style := valueStyle
		if r < len(t.Emphasis) && t.Emphasis[r] {
			style = overStyle
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(style.Render(pad(cell, widths[i], i == 0 || i == numCols-1)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}
	rule("╰", "┴", "╯")

	return b.String()
}

// pad aligns s in a column of the given width. Widths are measured in cells,
// so multi-byte bar characters pad correctly.
func pad(s string, width int, left bool) string {
	gap := strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
	if left {
		return " " + s + gap + " "
	}
	return " " + gap + s + " "
}

// bar returns a run of fill characters proportional to value/total.
func bar(value, total decimal.Decimal, width int, fill string) string {
	if !total.IsPositive() || !value.IsPositive() {
		return ""
	}
	n := int(value.Div(total).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	n = min(max(n, 1), width)
	return strings.Repeat(fill, n)
}

// percent formats value as a share of total with one decimal.
func percent(value, total decimal.Decimal) string {
	if !total.IsPositive() {
		return "0.0%"
	}
	return value.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

func monthName(i int) string {
	if i < 0 || i >= len(charts.MonthLabels) {
		return fmt.Sprintf("#%d", i+1)
	}
	return charts.MonthLabels[i][:monthNameLen]
}
