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

import "sort"

// RankedView is the ordered, threshold-filtered view of an aggregation
// result. Read-only.
type RankedView struct {
	// Cells sorted by primary-group total hours descending, then by the
	// cell's own hours descending. Segments of one primary group are
	// contiguous.
	Cells []*Cell

	PrimaryTotals map[string]float64
	CellTotals    map[CellKey]float64

	// PrimaryKeys in order of first appearance in Cells. These form the
	// y-axis category order.
	PrimaryKeys []string
}

// Rank drops cells at or below the minimum play time and orders the rest.
// Primary totals are computed during the fold, before filtering, so a
// group's rank reflects all of its play time even when some of its cells
// fall under the threshold. The sort is stable: equal keys keep their
// encounter order, and identical input always produces identical output.
func Rank(result *Result, minPlayTimeHours float64) *RankedView {
	view := &RankedView{
		PrimaryTotals: result.PrimaryTotals,
		CellTotals:    result.CellTotals,
	}

	for _, cell := range result.Cells {
		if cell.PlayTimeHours > minPlayTimeHours {
			view.Cells = append(view.Cells, cell)
		}
	}

	sort.SliceStable(view.Cells, func(i, j int) bool {
		a, b := view.Cells[i], view.Cells[j]
		primaryA := view.PrimaryTotals[a.Primary]
		primaryB := view.PrimaryTotals[b.Primary]
		if primaryA != primaryB {
			return primaryA > primaryB
		}
		keyA := CellKey{Primary: a.Primary, Secondary: a.Secondary}
		keyB := CellKey{Primary: b.Primary, Secondary: b.Secondary}
		return view.CellTotals[keyA] > view.CellTotals[keyB]
	})

	seen := make(map[string]bool)
	for _, cell := range view.Cells {
		if !seen[cell.Primary] {
			seen[cell.Primary] = true
			view.PrimaryKeys = append(view.PrimaryKeys, cell.Primary)
		}
	}

	return view
}
