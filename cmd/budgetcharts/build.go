package main

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Print the chart bundle of a month as JSON",
	Args:  cobra.NoArgs,
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
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
	return writeJSON(cmd.OutOrStdout(), b)
}
