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
	"time"

	"github.com/amolden/playchart/internal/aggregate"
	"github.com/amolden/playchart/internal/dimension"
	"github.com/amolden/playchart/internal/history"
	"github.com/amolden/playchart/internal/view"
)

// chartParams are the user-supplied pipeline inputs, shared by the
// chart, top, serve, and email commands.
type chartParams struct {
	Primary        string
	Breakout       string
	MinPlayMinutes float64
	WindowStart    float64
	WindowWidth    float64
	Category       string
}

func defaultChartParams() chartParams {
	return chartParams{
		Primary:        "artist",
		Breakout:       "album",
		MinPlayMinutes: 1,
		WindowStart:    0,
		WindowWidth:    1,
		Category:       "both",
	}
}

type pipelineOutput struct {
	Ranked    *aggregate.RankedView
	Chart     *view.Chart
	Primary   dimension.Dimension
	Secondary dimension.Dimension
}

// runPipeline recomputes the full view from scratch: window and category
// filter, aggregation, ranking, view assembly. It is a pure function of
// its inputs; every parameter change reruns it whole.
func runPipeline(records []history.PlayRecord, params chartParams, loc *time.Location) (*pipelineOutput, error) {
	primary, err := dimension.Parse(params.Primary)
	if err != nil {
		return nil, fmt.Errorf("primary dimension: %w", err)
	}
	secondary, err := dimension.Parse(params.Breakout)
	if err != nil {
		return nil, fmt.Errorf("breakout dimension: %w", err)
	}
	category, err := aggregate.ParseCategory(params.Category)
	if err != nil {
		return nil, err
	}
	if params.WindowStart < 0 || params.WindowStart > 1 || params.WindowWidth < 0 || params.WindowWidth > 1 {
		return nil, fmt.Errorf("window start and width must be fractions in [0,1]")
	}

	window := aggregate.Window{Start: params.WindowStart, Width: params.WindowWidth}
	filtered := aggregate.FilterRecords(records, window, category)

	extractor := dimension.NewExtractor(loc)
	result := aggregate.Aggregate(filtered, primary, secondary, extractor)
	ranked := aggregate.Rank(result, params.MinPlayMinutes/60)

	return &pipelineOutput{
		Ranked:    ranked,
		Chart:     view.Assemble(ranked, primary, secondary, extractor),
		Primary:   primary,
		Secondary: secondary,
	}, nil
}
