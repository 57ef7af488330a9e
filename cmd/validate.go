package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tradesim/scenariobuild/pkg/scenario"
	"github.com/tradesim/scenariobuild/pkg/validate"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <scenario.json>",
	Short: "Validate a scenario file and print errors and warnings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var sc scenario.Scenario
		if err := json.Unmarshal(raw, &sc); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		res := validate.Scenario(&sc)
		for _, warning := range res.Warnings {
			fmt.Printf("warning: %s\n", warning)
		}
		for _, e := range res.Errors {
			fmt.Printf("error: %s\n", e)
		}
		if !res.OK() {
			return fmt.Errorf("%d error(s), %d warning(s)", len(res.Errors), len(res.Warnings))
		}

		fmt.Printf("OK: %d warning(s)\n", len(res.Warnings))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
