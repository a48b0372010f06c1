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

	"github.com/amolden/playchart/internal/chart"
	"github.com/amolden/playchart/internal/store"
)

var chartOut string
var chartFlags = defaultChartParams()

var chartCmd = &cobra.Command{
	Use:   "chart [from] [to (optional)]",
	Short: "Renders the stacked bar chart to an HTML file",
	Long: `Aggregates stored plays grouped by --primary and broken out by
--breakout, and writes a horizontal stacked bar chart. Optional date
arguments restrict the range; date strings look like 'yyyy', 'yyyy-mm',
or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := writeChart(viper.GetString("database"), chartOut, chartFlags, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "chart.html", "Output HTML file")
	addChartParamFlags(chartCmd, &chartFlags)
}

func addChartParamFlags(cmd *cobra.Command, params *chartParams) {
	cmd.Flags().StringVar(&params.Primary, "primary", params.Primary,
		"Primary grouping dimension (title|artist|album|year|month|weekday|hour|period)")
	cmd.Flags().StringVar(&params.Breakout, "breakout", params.Breakout,
		"Secondary breakout dimension")
	cmd.Flags().Float64Var(&params.MinPlayMinutes, "min-play", params.MinPlayMinutes,
		"Hide groups played for fewer than this many minutes")
	cmd.Flags().Float64Var(&params.WindowStart, "window-start", params.WindowStart,
		"Window start as a fraction of the data span, in [0,1]")
	cmd.Flags().Float64Var(&params.WindowWidth, "window-width", params.WindowWidth,
		"Window width as a fraction of the data span, in [0,1]")
	cmd.Flags().StringVar(&params.Category, "filter", params.Category,
		"Category filter (both|music|pod)")
}

func writeChart(dbPath string, outPath string, params chartParams, args []string) error {
	start, end, err := parseDateRangeFromArgs(args)
	if err != nil {
		return err
	}

	loc, err := loadLocation()
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

	out, err := runPipeline(records, params, loc)
	if err != nil {
		return err
	}

	if err := chart.WriteFile(outPath, out.Chart); err != nil {
		return err
	}

	fmt.Printf("Wrote %d bars across %d groups to %q\n",
		len(out.Chart.Bars), len(out.Chart.Axis.TickOrder), outPath)
	return nil
}
