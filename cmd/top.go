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
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amolden/playchart/internal/store"
)

var topFlags = defaultChartParams()

var topCmd = &cobra.Command{
	Use:   "top [from] [to (optional)]",
	Short: "Prints a ranked play-time summary",
	Long: `Prints groups ranked by total play time, using the same grouping
flags as the chart command. Date strings look like 'yyyy', 'yyyy-mm', or
'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTop(os.Stdout, viper.GetString("database"), topFlags, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topCmd)
	addChartParamFlags(topCmd, &topFlags)
}

func printTop(out io.Writer, dbPath string, params chartParams, args []string) error {
	analysis, start, end, err := topAnalysis(dbPath, params, args)
	if err != nil {
		return err
	}

	if !start.IsZero() {
		fmt.Fprintf(out, "Period: %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	fmt.Fprintln(out, analysis)
	return nil
}

func topAnalysis(dbPath string, params chartParams, args []string) (Analysis, time.Time, time.Time, error) {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return Analysis{}, start, end, err
	}

	loc, err := loadLocation()
	if err != nil {
		return Analysis{}, start, end, err
	}

	db, err := store.New(dbPath)
	if err != nil {
		return Analysis{}, start, end, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	records, err := db.GetPlays(start, end)
	if err != nil {
		return Analysis{}, start, end, err
	}

	pipeline, err := runPipeline(records, params, loc)
	if err != nil {
		return Analysis{}, start, end, err
	}

	return buildRankingAnalysis(pipeline), start, end, nil
}
