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

// Package chart renders assembled bar segments as a self-contained HTML
// page with a horizontal stacked bar chart.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/amolden/playchart/internal/view"
)

// Render writes the chart page. Each segment becomes its own stacked
// series so that per-segment colors and hover text survive; the largest
// primary group ends up at the top of the chart.
func Render(w io.Writer, c *view.Chart) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Listening History",
			Width:     "1200px",
			Height:    fmt.Sprintf("%dpx", max(len(c.Axis.TickOrder)*20, 400)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      true,
			Trigger:   "item",
			Formatter: "{a}",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: false,
		}),
	)

	// Category axis indexes start at the bottom; reverse so the highest
	// ranked primary group renders on top.
	categories := make([]string, 0, len(c.Axis.TickOrder))
	for i := len(c.Axis.TickOrder) - 1; i >= 0; i-- {
		categories = append(categories, c.Axis.TickLabels[c.Axis.TickOrder[i]])
	}
	index := make(map[string]int, len(c.Axis.TickOrder))
	for i, key := range c.Axis.TickOrder {
		index[key] = len(c.Axis.TickOrder) - 1 - i
	}

	bar.SetXAxis(categories)

	for _, segment := range c.Bars {
		data := make([]opts.BarData, len(categories))
		for i := range data {
			data[i] = opts.BarData{Value: "-"}
		}
		data[index[segment.Primary]] = opts.BarData{Value: segment.Value}

		bar.AddSeries(segment.HoverText, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "play-time"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: segment.Color}),
		)
	}

	bar.XYReversal()
	return bar.Render(w)
}

// WriteFile renders the chart page to path.
func WriteFile(path string, c *view.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	if err := Render(f, c); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
