package main

import (
	"fmt"
	"os"

	"budgetcharts/internal/config"

	"github.com/spf13/cobra"
)

var flagForce bool

var appearanceCmd = &cobra.Command{
	Use:   "appearance <file>",
	Short: "Write the chart appearance to a TOML file",
	Long: "Writes the current chart colours and titles (from --appearance or APPEARANCE_FILE,\n" +
		"or the defaults) to file, ready to be edited and passed back with --appearance.",
	Args: cobra.ExactArgs(1),
	RunE: runAppearance,
}

func init() {
	appearanceCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(appearanceCmd)
}

func runAppearance(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !flagForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	src := os.Getenv("APPEARANCE_FILE")
	if cmd.Flags().Changed("appearance") {
		src = flagAppearance
	}
	a, err := config.LoadAppearance(src)
	if err != nil {
		return err
	}
	if err := config.SaveAppearance(path, a); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  Wrote appearance to %s\n", path)
	return nil
}
