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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/avast/retry-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amolden/playchart/internal/history"
	"github.com/amolden/playchart/internal/store"
)

var fetchServer string

var fetchCmd = &cobra.Command{
	Use:   "fetch <dataset-id>",
	Short: "Fetches a shared dataset and imports it",
	Long: `Downloads a shared dataset by id from a serve instance and imports
its plays into the local database.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := fetchDataset(viper.GetString("database"), fetchServer, args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchServer, "server", "http://localhost:8345", "Base URL of the serve instance")
}

type httpStatusError struct {
	status int
}

func (e httpStatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.status)
}

func fetchDataset(dbPath string, server string, id string) error {
	fetchURL := fmt.Sprintf("%s/store?id=%s", server, url.QueryEscape(id))

	var data []byte
	err := retry.Do(
		func() error {
			resp, err := http.Get(fetchURL)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return httpStatusError{status: resp.StatusCode}
			}

			data, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.RetryIf(func(err error) bool {
			// Client errors (bad id) won't get better; retry the rest.
			if serr, ok := err.(httpStatusError); ok {
				return serr.status >= 500
			}
			return true
		}),
	)
	if err != nil {
		return fmt.Errorf("fetching dataset %q: %w", id, err)
	}

	var records []history.PlayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing dataset %q: %w", id, err)
	}

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.AddPlays(records); err != nil {
		return fmt.Errorf("storing plays: %w", err)
	}

	fmt.Printf("Imported %d plays from dataset %q\n", len(records), id)
	return nil
}
