package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tradesim/scenariobuild/pkg/storage"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Interact with the scenario slot database",
}

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell to the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := databasePath(cmd)

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", dbPath)
		}

		// Check if sqlite3 is in PATH
		sqlitePath, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("sqlite3 command not found in your PATH. Please install it to use the db shell")
		}

		// Print schema first
		fmt.Println("--> Database schema:")
		schemaCmd := exec.Command(sqlitePath, dbPath, ".schema")
		schemaCmd.Stdout = os.Stdout
		schemaCmd.Stderr = os.Stderr
		if err := schemaCmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: couldn't retrieve schema: %v\n", err)
		}
		fmt.Println("\n--> Starting interactive shell... (Ctrl+D to exit)")

		c := exec.Command(sqlitePath, dbPath)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenario slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(databasePath(cmd))
		if err != nil {
			return err
		}
		defer db.Close()

		slots, err := db.List(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SLOT\tNAME\tEVENTS\tMODIFIED\t")
		for _, info := range slots {
			sc, err := db.Load(context.Background(), info.Slot)
			if err != nil {
				return err
			}
			events := 0
			if sc != nil {
				events = len(sc.Events)
			}
			modified := "-"
			if !info.ModifiedAt.IsZero() {
				modified = info.ModifiedAt.Format("2006-01-02 15:04")
			}
			name := info.Name
			if info.BuiltIn {
				name += " (built-in)"
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t\n", info.Slot, name, events, modified)
		}
		w.Flush()

		return nil
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <slot>",
	Short: "Print the scenario stored in a slot as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad slot number: %s", args[0])
		}

		db, err := storage.Open(databasePath(cmd))
		if err != nil {
			return err
		}
		defer db.Close()

		sc, err := db.Load(context.Background(), slot)
		if err != nil {
			return err
		}
		if sc == nil {
			return fmt.Errorf("slot %d is empty", slot)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete the scenario stored in a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad slot number: %s", args[0])
		}

		db, err := storage.Open(databasePath(cmd))
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Delete(context.Background(), slot); err != nil {
			return err
		}
		fmt.Printf("Slot %d cleared.\n", slot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(shellCmd)
	dbCmd.AddCommand(listCmd)
	dbCmd.AddCommand(showCmd)
	dbCmd.AddCommand(deleteCmd)
}
