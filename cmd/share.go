/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amolden/playchart/internal/store"
)

var shareServer string

var shareCmd = &cobra.Command{
	Use:   "share [from] [to (optional)]",
	Short: "Uploads stored plays for a shareable link",
	Long: `Uploads the local plays (optionally restricted to a date range) to a
serve instance and prints the dataset id and chart link.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := sharePlays(viper.GetString("database"), shareServer, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)

	// Each command owns its server flag; a shared viper key would let one
	// command's binding shadow the other's.
	shareCmd.Flags().StringVar(&shareServer, "server", "http://localhost:8345", "Base URL of the serve instance")
}

func sharePlays(dbPath string, server string, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	records, err := db.GetPlays(start, end)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no plays to share - run import first")
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding plays: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(server+"/store", "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("uploading plays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("uploading plays: server returned status %d", resp.StatusCode)
	}

	id, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading dataset id: %w", err)
	}

	fmt.Printf("Shared %d plays as dataset %s\n", len(records), id)
	fmt.Printf("%s/?id=%s\n", server, id)
	return nil
}
