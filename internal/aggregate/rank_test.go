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

package aggregate

import (
	"testing"
	"time"

	"github.com/amolden/playchart/internal/dimension"
)

func TestRankScenario(t *testing.T) {
	e := dimension.NewExtractor(time.UTC)
	result := Aggregate(scenarioRecords(t), dimension.Artist, dimension.Album, e)
	view := Rank(result, 0)

	wantPrimaries := []string{"B", "A"}
	if len(view.PrimaryKeys) != len(wantPrimaries) {
		t.Fatalf("PrimaryKeys = %v, want %v", view.PrimaryKeys, wantPrimaries)
	}
	for i, key := range wantPrimaries {
		if view.PrimaryKeys[i] != key {
			t.Errorf("PrimaryKeys[%d] = %q, want %q", i, view.PrimaryKeys[i], key)
		}
	}

	// B's one cell first, then A's ordered Y (~0.33h) before X (~0.17h).
	wantCells := []CellKey{{"B", "X"}, {"A", "Y"}, {"A", "X"}}
	if len(view.Cells) != len(wantCells) {
		t.Fatalf("got %d cells, want %d", len(view.Cells), len(wantCells))
	}
	for i, want := range wantCells {
		got := CellKey{view.Cells[i].Primary, view.Cells[i].Secondary}
		if got != want {
			t.Errorf("Cells[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestRankDropsCellsAtOrBelowThreshold(t *testing.T) {
	e := dimension.NewExtractor(time.UTC)
	result := Aggregate(scenarioRecords(t), dimension.Artist, dimension.Album, e)

	// A/X is 1/6 hour; exactly at the threshold means dropped.
	view := Rank(result, 1.0/6)
	for _, cell := range view.Cells {
		if cell.Primary == "A" && cell.Secondary == "X" {
			t.Errorf("cell at threshold should have been dropped")
		}
	}
}

func TestRankThresholdMonotonic(t *testing.T) {
	e := dimension.NewExtractor(time.UTC)
	result := Aggregate(scenarioRecords(t), dimension.Artist, dimension.Album, e)

	previous := len(result.Cells) + 1
	for _, min := range []float64{0, 0.2, 0.4, 1, 20} {
		view := Rank(result, min)
		if len(view.Cells) > previous {
			t.Errorf("raising the threshold to %v grew the cell count to %d", min, len(view.Cells))
		}
		previous = len(view.Cells)
	}
}

func TestRankPrimaryTotalsComputedBeforeFiltering(t *testing.T) {
	e := dimension.NewExtractor(time.UTC)
	records := scenarioRecords(t)
	result := Aggregate(records, dimension.Artist, dimension.Album, e)

	// Filter out A/X; A's rank still reflects its full 0.5 hours.
	view := Rank(result, 0.2)
	if len(view.Cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(view.Cells))
	}
	if view.PrimaryTotals["A"] != result.PrimaryTotals["A"] {
		t.Errorf("primary totals changed by filtering")
	}
}

func TestRankStable(t *testing.T) {
	e := dimension.NewExtractor(time.UTC)
	result := Aggregate(scenarioRecords(t), dimension.Artist, dimension.Album, e)

	first := Rank(result, 0)
	second := Rank(result, 0)

	if len(first.Cells) != len(second.Cells) {
		t.Fatalf("cell counts differ across runs")
	}
	for i := range first.Cells {
		if first.Cells[i] != second.Cells[i] {
			t.Errorf("cell order differs at %d", i)
		}
	}
	for i := range first.PrimaryKeys {
		if first.PrimaryKeys[i] != second.PrimaryKeys[i] {
			t.Errorf("primary key order differs at %d", i)
		}
	}
}

func TestRankEmpty(t *testing.T) {
	view := Rank(&Result{
		PrimaryTotals: map[string]float64{},
		CellTotals:    map[CellKey]float64{},
	}, 0)
	if len(view.Cells) != 0 || len(view.PrimaryKeys) != 0 {
		t.Errorf("empty result should rank to an empty view")
	}
}
