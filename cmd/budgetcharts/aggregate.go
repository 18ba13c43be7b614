package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"budgetcharts/internal/charts"
	blog "budgetcharts/internal/log"
	"budgetcharts/internal/source"

	"github.com/spf13/cobra"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [file]",
	Short: "Sum operation records by category",
	Long: "Reads a JSON array of operation records ({\"amount\": ..., \"label\": [id, name]}, or\n" +
		"JSON strings of such objects) from file or stdin and prints income and expense\n" +
		"totals per category.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}

type aggregateResult struct {
	Income   charts.CategoryTotals `json:"income"`
	Expenses charts.CategoryTotals `json:"expenses"`
}

func runAggregate(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	records, err := readRecords(in)
	if err != nil {
		return err
	}
	income, expenses, err := charts.AggregateByCategory(records)
	if err != nil {
		return err
	}
	slog.Debug("Aggregated operation records", append(blog.NewFields().
		WithComponent(blog.ComponentCharts).
		WithOperation(blog.OpAggregate).
		ToSlice(),
		blog.FieldRecords, len(records),
		blog.FieldCategories, income.Len()+expenses.Len())...)
	return writeJSON(cmd.OutOrStdout(), aggregateResult{Income: income, Expenses: expenses})
}

func readRecords(in io.Reader) ([]charts.OperationRecord, error) {
	var elements []json.RawMessage
	if err := json.NewDecoder(in).Decode(&elements); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return source.DecodeRecords(elements)
}
