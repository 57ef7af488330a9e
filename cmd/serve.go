package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tradesim/scenariobuild/internal/server"
	"github.com/tradesim/scenariobuild/pkg/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scenario editor API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		if listen == "" {
			listen = viper.GetString("listen")
		}
		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			user = viper.GetString("server.username")
		}
		pass, _ := cmd.Flags().GetString("pass")
		if pass == "" {
			pass = viper.GetString("server.password")
		}

		db, err := storage.Open(databasePath(cmd))
		if err != nil {
			return err
		}
		defer db.Close()

		return server.New(db, user, pass).Start(listen)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "HTTP listen address (default :8080)")
	serveCmd.Flags().String("user", "", "Basic auth username (empty disables auth)")
	serveCmd.Flags().String("pass", "", "Basic auth password")
}
