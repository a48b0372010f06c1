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

// Package dimension maps play records onto grouping dimensions. Each
// dimension yields a stable grouping key and a human-readable label.
package dimension

import (
	"fmt"
	"strconv"
	"time"

	"github.com/amolden/playchart/internal/history"
)

type Dimension int

const (
	Title Dimension = iota
	Artist
	Album
	Year
	Month
	Weekday
	Hour
	PartOfDay
)

var names = map[Dimension]string{
	Title:     "title",
	Artist:    "artist",
	Album:     "album",
	Year:      "year",
	Month:     "month",
	Weekday:   "weekday",
	Hour:      "hour",
	PartOfDay: "period",
}

func (d Dimension) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// Parse resolves a dimension name as used on the command line.
func Parse(name string) (Dimension, error) {
	for d, n := range names {
		if n == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown dimension %q - expected one of title, artist, album, year, month, weekday, hour, period", name)
}

// Extractor computes keys and labels for one aggregation pass. It is
// constructed per run with an explicit location so that no process-wide
// formatter state is shared. Key to label is a stable function within a
// run, enforced by a cache populated on first sighting.
type Extractor struct {
	loc    *time.Location
	labels map[Dimension]map[string]string
}

func NewExtractor(loc *time.Location) *Extractor {
	if loc == nil {
		loc = time.Local
	}
	return &Extractor{
		loc:    loc,
		labels: make(map[Dimension]map[string]string),
	}
}

// Extract returns the grouping key and display label of a record for the
// given dimension. Textual dimensions have label equal to key; calendar
// dimensions use an integer key with a long-form label.
func (e *Extractor) Extract(record history.PlayRecord, dim Dimension) (key, label string) {
	switch dim {
	case Title:
		return record.Name, record.Name
	case Artist:
		return record.Artist, record.Artist
	case Album:
		return record.Album, record.Album
	}

	local := record.PlayedAt.In(e.loc)
	switch dim {
	case Year:
		key = strconv.Itoa(local.Year())
		label = local.Format("2006")
	case Month:
		key = strconv.Itoa(int(local.Month()))
		label = local.Month().String()
	case Weekday:
		key = strconv.Itoa(int(local.Weekday()))
		label = local.Weekday().String()
	case Hour:
		key = strconv.Itoa(local.Hour())
		label = local.Format("3 PM")
	case PartOfDay:
		var part int
		part, label = partOfDay(local.Hour())
		key = strconv.Itoa(part)
	}

	e.remember(dim, key, label)
	return key, label
}

// partOfDay buckets a local hour. The partition is non-overlapping:
// [6,13) is early, [13,21) is late, everything else is night.
func partOfDay(hour int) (int, string) {
	switch {
	case hour >= 6 && hour < 13:
		return 0, "early"
	case hour >= 13 && hour < 21:
		return 1, "late"
	default:
		return 2, "night"
	}
}

func (e *Extractor) remember(dim Dimension, key, label string) {
	byKey, ok := e.labels[dim]
	if !ok {
		byKey = make(map[string]string)
		e.labels[dim] = byKey
	}
	// First sighting wins, keeping key to label stable within a run.
	if _, ok := byKey[key]; !ok {
		byKey[key] = label
	}
}

// Label resolves the display label recorded for a key during extraction.
// Textual dimensions report no label; callers fall back to the key.
func (e *Extractor) Label(dim Dimension, key string) (string, bool) {
	label, ok := e.labels[dim][key]
	return label, ok
}
