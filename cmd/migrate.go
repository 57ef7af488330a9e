package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tradesim/scenariobuild/pkg/migrate"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate <events.json>",
	Short: "Migrate a legacy event array to the current effect schema",
	Long: `Migrate converts events authored under the old sentiment/severity schema
into the current affects-based schema. Events that already carry effects
pass through unchanged, so re-running on migrated data is harmless.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		events, err := migrate.Events(raw)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(events); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Migrated %d event(s).\n", len(events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
