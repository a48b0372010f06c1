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

// Package aggregate folds play records into two-level grouped, ranked
// play-time summaries.
package aggregate

import (
	"github.com/amolden/playchart/internal/dimension"
	"github.com/amolden/playchart/internal/history"
)

// Plays shorter than this are noise (skips, previews) and are excluded
// from aggregation. Stricter than the normalizer's zero-duration check.
const minDurationMs = 10000

const msPerHour = 1000 * 60 * 60

// CellKey identifies one (primary, secondary) aggregation bucket.
type CellKey struct {
	Primary   string
	Secondary string
}

// Cell accumulates play time for one (primary, secondary) pair. Mutated
// only during the fold; read-only afterwards.
type Cell struct {
	Primary       string
	Secondary     string
	PlayTimeHours float64
	PlayCount     int
	SongCount     int
}

// Result is the output of one aggregation pass. Cells are kept in
// first-encounter order so that later sorting is reproducible.
type Result struct {
	Cells []*Cell

	// PrimaryTotals holds total hours per primary key across all of its
	// cells, accumulated independently of per-cell values.
	PrimaryTotals map[string]float64

	// CellTotals holds total hours per cell key.
	CellTotals map[CellKey]float64
}

// Aggregate folds records into cells grouped by the primary and secondary
// dimensions. Records with missing text fields or too little play time
// are skipped, as are records whose primary or secondary key is empty.
// The fold is additive, so any permutation of records yields the same
// cells up to floating-point summation order.
func Aggregate(records []history.PlayRecord, primary, secondary dimension.Dimension, extractor *dimension.Extractor) *Result {
	result := &Result{
		PrimaryTotals: make(map[string]float64),
		CellTotals:    make(map[CellKey]float64),
	}
	cells := make(map[CellKey]*Cell)
	songs := make(map[CellKey]map[string]bool)

	for _, record := range records {
		if record.Name == "" || record.Artist == "" || record.Album == "" {
			continue
		}
		if record.DurationMs < minDurationMs {
			continue
		}

		primaryKey, _ := extractor.Extract(record, primary)
		secondaryKey, _ := extractor.Extract(record, secondary)
		if primaryKey == "" || secondaryKey == "" {
			continue
		}

		key := CellKey{Primary: primaryKey, Secondary: secondaryKey}
		cell, ok := cells[key]
		if !ok {
			cell = &Cell{Primary: primaryKey, Secondary: secondaryKey}
			cells[key] = cell
			songs[key] = make(map[string]bool)
			result.Cells = append(result.Cells, cell)
		}

		hours := float64(record.DurationMs) / msPerHour
		cell.PlayTimeHours += hours
		cell.PlayCount++
		if !songs[key][record.Name] {
			songs[key][record.Name] = true
			cell.SongCount++
		}

		result.PrimaryTotals[primaryKey] += hours
		result.CellTotals[key] += hours
	}

	return result
}
