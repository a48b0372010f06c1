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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amolden/playchart/internal/history"
	"github.com/amolden/playchart/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>...",
	Short: "Imports streaming-history export files",
	Long: `Normalizes exported play events and stores them in the local SQLite
database. Files must be the unzipped .json files from a streaming-history
export. A file that fails to parse fails the import as a whole.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := importFiles(viper.GetString("database"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importFiles(dbPath string, paths []string) error {
	// Parse everything before writing anything, so a bad file doesn't
	// leave a partial import behind.
	var records []history.PlayRecord
	for _, path := range paths {
		fileRecords, err := history.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("Read %d plays from %q\n", len(fileRecords), path)
		records = append(records, fileRecords...)
	}

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.AddPlays(records); err != nil {
		return fmt.Errorf("storing plays: %w", err)
	}

	total, err := db.CountPlays()
	if err != nil {
		return err
	}
	latest, err := db.GetLatestPlay()
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d plays (%d total in database, latest %s)\n",
		len(records), total, latest.Format("2006-01-02"))
	return nil
}
