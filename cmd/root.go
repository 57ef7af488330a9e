package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tradesim/scenariobuild/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scenariobuild",
	Short: "Authoring toolchain for trading-simulation scenarios.",
	Long: `scenariobuild manages the market scenarios behind the commodity-trading
simulation: per-month pricing, supply and demand baselines, authored events
that perturb them, and the effective series the game engine consumes.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scenariobuild.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("dbpath", "", "", "Path to the scenario slot database (default scenarios.sqlite)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".scenariobuild")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.scenariobuild.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("dbpath", "scenarios.sqlite")
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("engine.url", "")
	viper.SetDefault("server.username", "")
	viper.SetDefault("server.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// databasePath resolves the slot database path from the flag, then config.
func databasePath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("dbpath"); p != "" {
		return p
	}
	if p := viper.GetString("dbpath"); p != "" {
		return p
	}
	return "scenarios.sqlite"
}
