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
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

type Analysis struct {
	results [][]string
	summary string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

// buildRankingAnalysis flattens a pipeline run into rows: one row per
// primary group in rank order, with its total hours, play count, and the
// top breakout value.
func buildRankingAnalysis(out *pipelineOutput) Analysis {
	analysis := Analysis{
		results: [][]string{{
			out.Primary.String(), "Hours", "Plays", "Tracks", "Top " + out.Secondary.String(),
		}},
	}

	plays := make(map[string]int)
	tracks := make(map[string]int)
	for _, cell := range out.Ranked.Cells {
		plays[cell.Primary] += cell.PlayCount
		tracks[cell.Primary] += cell.SongCount
	}
	// Bars mirror the ranked cells but carry display labels, so a month
	// breakout reads "March" here rather than "3". Bars are ranked, so the
	// first segment seen per primary is its biggest breakout.
	topSecondary := make(map[string]string)
	for _, bar := range out.Chart.Bars {
		if _, ok := topSecondary[bar.Primary]; !ok {
			topSecondary[bar.Primary] = bar.SecondaryLabel
		}
	}

	var totalHours float64
	for _, key := range out.Ranked.PrimaryKeys {
		label := key
		if tick, ok := out.Chart.Axis.TickLabels[key]; ok {
			label = tick
		}
		hours := out.Ranked.PrimaryTotals[key]
		totalHours += hours
		analysis.results = append(analysis.results, []string{
			label,
			strconv.FormatFloat(hours, 'f', 2, 64),
			strconv.Itoa(plays[key]),
			strconv.Itoa(tracks[key]),
			topSecondary[key],
		})
	}

	analysis.summary = fmt.Sprintf("Found %d groups totaling %.1f hours\n",
		len(out.Ranked.PrimaryKeys), totalHours)
	return analysis
}
