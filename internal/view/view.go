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

// Package view maps ranked aggregation cells to chart-ready bar segments
// and axis metadata.
package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/amolden/playchart/internal/aggregate"
	"github.com/amolden/playchart/internal/dimension"
)

const maxTickLabelLength = 20

// BarSegment is one stacked segment: the play time of one cell, placed
// on its primary group's bar.
type BarSegment struct {
	Primary        string
	Value          float64
	SecondaryLabel string
	Color          string
	HoverText      string
}

// AxisSpec describes the y axis: tick order matching the ranking, and
// display labels per tick.
type AxisSpec struct {
	TickOrder  []string
	TickLabels map[string]string
}

type Chart struct {
	Bars []BarSegment
	Axis AxisSpec
}

// Assemble builds bar segments and axis metadata from a ranked view.
// Segments follow the view's cell order, so one primary group's segments
// are contiguous and sorted by descending hours. An empty view yields an
// empty chart.
func Assemble(view *aggregate.RankedView, primary, secondary dimension.Dimension, extractor *dimension.Extractor) *Chart {
	chart := &Chart{
		Axis: AxisSpec{
			TickOrder:  view.PrimaryKeys,
			TickLabels: make(map[string]string),
		},
	}

	for _, cell := range view.Cells {
		primaryLabel := cell.Primary
		if label, ok := extractor.Label(primary, cell.Primary); ok {
			primaryLabel = label
		}
		// Segments display the secondary's label, not its grouping key, so
		// a month breakout reads "March" rather than "3". Colors hash the
		// label too, keeping them stable across key schemes.
		secondaryLabel := cell.Secondary
		if label, ok := extractor.Label(secondary, cell.Secondary); ok {
			secondaryLabel = label
		}
		chart.Bars = append(chart.Bars, BarSegment{
			Primary:        cell.Primary,
			Value:          cell.PlayTimeHours,
			SecondaryLabel: secondaryLabel,
			Color:          StringColor(colorSeed, secondaryLabel),
			HoverText: fmt.Sprintf("%s | %s | %s",
				secondaryLabel, primaryLabel, quantify(cell.PlayTimeHours)),
		})
	}

	for _, key := range view.PrimaryKeys {
		if label, ok := extractor.Label(primary, key); ok {
			chart.Axis.TickLabels[key] = label
		} else {
			chart.Axis.TickLabels[key] = truncate(key)
		}
	}

	return chart
}

// quantify renders a play time for humans: hours past a cutoff, minutes
// below it.
func quantify(hours float64) string {
	if hours > 1.5 {
		rounded := math.Round(hours*100) / 100
		return strconv.FormatFloat(rounded, 'f', -1, 64) + " Hours Played"
	}
	return strconv.Itoa(int(math.Round(hours*60))) + " Minutes Played"
}

func truncate(label string) string {
	runes := []rune(label)
	if len(runes) < maxTickLabelLength {
		return label
	}
	return string(runes[:maxTickLabelLength-1]) + "…"
}
