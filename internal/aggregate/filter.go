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
	"fmt"
	"time"

	"github.com/amolden/playchart/internal/history"
)

// Window selects a contiguous sub-range of the dataset's full time span.
// Start and Width are fractions in [0,1] of that span.
type Window struct {
	Start float64
	Width float64
}

// FullWindow covers the entire dataset.
var FullWindow = Window{Start: 0, Width: 1}

type Category int

const (
	Both Category = iota
	Music
	Podcast
)

func ParseCategory(name string) (Category, error) {
	switch name {
	case "both":
		return Both, nil
	case "music":
		return Music, nil
	case "pod":
		return Podcast, nil
	}
	return 0, fmt.Errorf("unknown category %q - expected both, music, or pod", name)
}

// FilterRecords applies the time window and the music-vs-podcast category
// filter ahead of aggregation. The window is anchored to the earliest and
// latest play in records.
func FilterRecords(records []history.PlayRecord, window Window, category Category) []history.PlayRecord {
	if len(records) == 0 {
		return nil
	}

	first, last := span(records)
	era := last.Sub(first)
	start := first.Add(time.Duration(window.Start * float64(era)))
	end := start.Add(time.Duration(window.Width * float64(era)))

	var kept []history.PlayRecord
	for _, record := range records {
		if category == Podcast && !record.Podcast {
			continue
		}
		if category == Music && record.Podcast {
			continue
		}
		if record.PlayedAt.Before(start) || record.PlayedAt.After(end) {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}

func span(records []history.PlayRecord) (first, last time.Time) {
	first = records[0].PlayedAt
	last = records[0].PlayedAt
	for _, record := range records[1:] {
		if record.PlayedAt.Before(first) {
			first = record.PlayedAt
		}
		if record.PlayedAt.After(last) {
			last = record.PlayedAt
		}
	}
	return first, last
}
