package main

import (
	"fmt"
	"log/slog"

	"budgetcharts/internal/charts"
	blog "budgetcharts/internal/log"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <income> <expenses>",
	Short: "Flag the months whose expenses exceed income",
	Long: "Both arguments are twelve comma-separated monthly totals, January first.\n" +
		"Prints a JSON array of twelve booleans, true where expenses > income.",
	Example: `  budgetcharts compare "1200,980,0,0,0,0,0,0,0,0,0,9" "300,1500,0,0,0,0,0,0,0,0,0,10"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	income, err := charts.ParseMonthlySeries(args[0])
	if err != nil {
		return fmt.Errorf("income: %w", err)
	}
	expenses, err := charts.ParseMonthlySeries(args[1])
	if err != nil {
		return fmt.Errorf("expenses: %w", err)
	}

	flags, err := charts.BuildMonthlyComparison(income, expenses)
	if err != nil {
		slog.Error("Monthly comparison failed", blog.NewFields().
			WithComponent(blog.ComponentCharts).
			WithOperation(blog.OpCompare).
			WithError(err).
			ToSlice()...)
		return err
	}
	return writeJSON(cmd.OutOrStdout(), flags)
}
