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

package view

import (
	"strings"
	"testing"
	"time"

	"github.com/amolden/playchart/internal/aggregate"
	"github.com/amolden/playchart/internal/dimension"
	"github.com/amolden/playchart/internal/history"
)

func assembleRecords(t *testing.T, records []history.PlayRecord, primary, secondary dimension.Dimension) *Chart {
	t.Helper()
	e := dimension.NewExtractor(time.UTC)
	result := aggregate.Aggregate(records, primary, secondary, e)
	ranked := aggregate.Rank(result, 0)
	return Assemble(ranked, primary, secondary, e)
}

func play(t *testing.T, name, artist, album string, durationMs int64, timestamp string) history.PlayRecord {
	t.Helper()
	playedAt, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		t.Fatalf("parsing %q: %v", timestamp, err)
	}
	return history.PlayRecord{
		Name:       name,
		Artist:     artist,
		Album:      album,
		PlayedAt:   playedAt,
		DurationMs: durationMs,
	}
}

func TestQuantify(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0.5, "30 Minutes Played"},
		{2.3456, "2.35 Hours Played"},
		{1.5, "90 Minutes Played"},
		{2.0, "2 Hours Played"},
		{0.004, "0 Minutes Played"},
	}
	for _, c := range cases {
		if got := quantify(c.hours); got != c.want {
			t.Errorf("quantify(%v) = %q, want %q", c.hours, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"short", "short"},
		{"exactly nineteen ch", "exactly nineteen ch"},
		{"this is twenty chars", "this is twenty char…"},
		{"a very long label that keeps going", "a very long label t…"},
	}
	for _, c := range cases {
		if got := truncate(c.label); got != c.want {
			t.Errorf("truncate(%q) = %q, want %q", c.label, got, c.want)
		}
	}
}

func TestAssembleHoverText(t *testing.T) {
	records := []history.PlayRecord{
		play(t, "n1", "A", "X", 1800000, "2023-01-01T10:00:00Z"), // 30 minutes
	}
	chart := assembleRecords(t, records, dimension.Artist, dimension.Album)

	if len(chart.Bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(chart.Bars))
	}
	want := "X | A | 30 Minutes Played"
	if chart.Bars[0].HoverText != want {
		t.Errorf("HoverText = %q, want %q", chart.Bars[0].HoverText, want)
	}
}

func TestAssembleHoverTextUsesCalendarLabel(t *testing.T) {
	records := []history.PlayRecord{
		play(t, "n1", "A", "X", 1800000, "2023-03-01T10:00:00Z"),
	}
	chart := assembleRecords(t, records, dimension.Month, dimension.Album)

	if !strings.Contains(chart.Bars[0].HoverText, "| March |") {
		t.Errorf("HoverText = %q, want the month label", chart.Bars[0].HoverText)
	}
	if chart.Axis.TickLabels["3"] != "March" {
		t.Errorf("TickLabels[3] = %q, want March", chart.Axis.TickLabels["3"])
	}
}

func TestAssembleCalendarBreakoutUsesLabel(t *testing.T) {
	records := []history.PlayRecord{
		play(t, "n1", "A", "X", 1800000, "2023-03-01T10:00:00Z"), // 30 minutes
	}
	chart := assembleRecords(t, records, dimension.Artist, dimension.Month)

	if len(chart.Bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(chart.Bars))
	}
	bar := chart.Bars[0]
	if bar.SecondaryLabel != "March" {
		t.Errorf("SecondaryLabel = %q, want %q", bar.SecondaryLabel, "March")
	}
	want := "March | A | 30 Minutes Played"
	if bar.HoverText != want {
		t.Errorf("HoverText = %q, want %q", bar.HoverText, want)
	}
	if bar.Color != StringColor(colorSeed, "March") {
		t.Errorf("Color = %q, want the hash of the label", bar.Color)
	}
	if bar.Color == StringColor(colorSeed, "3") {
		t.Errorf("Color hashed from the grouping key instead of the label")
	}
}

func TestAssembleOrderAndContiguity(t *testing.T) {
	records := []history.PlayRecord{
		play(t, "n1", "A", "X", 600000, "2023-01-01T10:00:00Z"),
		play(t, "n2", "A", "Y", 1200000, "2023-01-02T10:00:00Z"),
		play(t, "n3", "B", "X", 60000000, "2023-01-03T10:00:00Z"),
	}
	chart := assembleRecords(t, records, dimension.Artist, dimension.Album)

	wantOrder := []string{"B", "A", "A"}
	wantSecondary := []string{"X", "Y", "X"}
	if len(chart.Bars) != len(wantOrder) {
		t.Fatalf("got %d bars, want %d", len(chart.Bars), len(wantOrder))
	}
	for i := range wantOrder {
		if chart.Bars[i].Primary != wantOrder[i] || chart.Bars[i].SecondaryLabel != wantSecondary[i] {
			t.Errorf("Bars[%d] = %s/%s, want %s/%s", i,
				chart.Bars[i].Primary, chart.Bars[i].SecondaryLabel, wantOrder[i], wantSecondary[i])
		}
	}

	wantTicks := []string{"B", "A"}
	for i, tick := range wantTicks {
		if chart.Axis.TickOrder[i] != tick {
			t.Errorf("TickOrder[%d] = %q, want %q", i, chart.Axis.TickOrder[i], tick)
		}
	}
}

func TestAssembleTruncatesLongTextualTicks(t *testing.T) {
	long := "An Extremely Long Artist Name Indeed"
	records := []history.PlayRecord{
		play(t, "n1", long, "X", 600000, "2023-01-01T10:00:00Z"),
	}
	chart := assembleRecords(t, records, dimension.Artist, dimension.Album)

	label := chart.Axis.TickLabels[long]
	if !strings.HasSuffix(label, "…") || len([]rune(label)) != 20 {
		t.Errorf("TickLabels[%q] = %q, want truncated to 20 runes", long, label)
	}
}

func TestAssembleColorsAreDeterministic(t *testing.T) {
	records := []history.PlayRecord{
		play(t, "n1", "A", "X", 600000, "2023-01-01T10:00:00Z"),
		play(t, "n2", "B", "X", 600000, "2023-01-02T10:00:00Z"),
	}
	chart := assembleRecords(t, records, dimension.Artist, dimension.Album)

	if chart.Bars[0].Color != chart.Bars[1].Color {
		t.Errorf("same secondary label should share a color: %q vs %q",
			chart.Bars[0].Color, chart.Bars[1].Color)
	}
	again := assembleRecords(t, records, dimension.Artist, dimension.Album)
	if chart.Bars[0].Color != again.Bars[0].Color {
		t.Errorf("colors changed between runs")
	}
}

func TestAssembleEmpty(t *testing.T) {
	chart := assembleRecords(t, nil, dimension.Artist, dimension.Album)
	if len(chart.Bars) != 0 || len(chart.Axis.TickOrder) != 0 {
		t.Errorf("empty input should assemble to an empty chart")
	}
}
