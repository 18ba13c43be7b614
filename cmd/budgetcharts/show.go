package main

import (
	"fmt"
	"time"

	blog "budgetcharts/internal/log"
	"budgetcharts/internal/render"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the charts of a month in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := loadApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.buildBundle(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, render.Bundle(b))

	a.logger.WithComponent(blog.ComponentRender).DebugContext(ctx, "Rendered chart bundle", blog.NewFields().
		WithOperation(blog.OpRender).
		WithPeriod(b.AccountID, b.Year, b.Month).
		WithDuration(time.Since(start)).
		ToSlice()...)
	return nil
}
