package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tradesim/scenariobuild/internal/utils"
	"github.com/tradesim/scenariobuild/pkg/gamedata"
	"github.com/tradesim/scenariobuild/pkg/storage"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Materialize a slot's game data and push it to the game engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, _ := cmd.Flags().GetInt("slot")
		engineURL, _ := cmd.Flags().GetString("url")
		if engineURL == "" {
			engineURL = viper.GetString("engine.url")
		}
		if engineURL == "" {
			return fmt.Errorf("no engine URL: pass --url or set engine.url in the config file")
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

		payload, err := json.Marshal(gamedata.Materialize(sc))
		if err != nil {
			return err
		}

		retryClient := retryablehttp.NewClient()
		retryClient.Logger = stdlog.New(io.Discard, "", 0)
		retryClient.RetryMax = 5

		req, err := retryablehttp.NewRequest("POST", engineURL, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := retryClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("engine rejected game data: %s: %s", resp.Status, string(body))
		}

		utils.Log.Infof("Published slot %d (%q) to %s", slot, sc.Metadata.Name, engineURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().Int("slot", 1, "Scenario slot to publish")
	publishCmd.Flags().String("url", "", "Game engine loader endpoint (default engine.url from config)")
}
