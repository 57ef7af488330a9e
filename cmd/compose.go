package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tradesim/scenariobuild/pkg/compose"
	"github.com/tradesim/scenariobuild/pkg/scenario"
)

// composeCmd represents the compose command
var composeCmd = &cobra.Command{
	Use:   "compose <scenario.json>",
	Short: "Compose a scenario's baselines with its events and print the effective series",
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

		baseline := sc.Baselines()
		effective := compose.Effective(baseline, sc.Events)

		lines := make([]string, 0, len(effective))
		for key := range effective {
			lines = append(lines, key)
		}
		sort.Strings(lines)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "LINE\tM1\tM2\tM3\tM4\tM5\tM6\t")
		for _, key := range lines {
			fmt.Fprintf(w, "%s\t", key)
			for _, v := range effective[key] {
				fmt.Fprintf(w, "%.1f\t", v)
			}
			fmt.Fprintln(w)
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
}
