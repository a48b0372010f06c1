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

// Package history converts raw streaming-history export records into
// uniform play records.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// RawPlayEvent is one entry of a streaming-history export file. Music
// tracks carry the track fields; podcast episodes carry the episode
// fields instead.
type RawPlayEvent struct {
	Timestamp       string `json:"ts"`
	MsPlayed        int64  `json:"ms_played"`
	TrackName       string `json:"master_metadata_track_name"`
	AlbumArtistName string `json:"master_metadata_album_artist_name"`
	AlbumName       string `json:"master_metadata_album_album_name"`
	EpisodeName     string `json:"episode_name"`
	EpisodeShowName string `json:"episode_show_name"`
}

// PlayRecord is a normalized play event. Immutable once constructed.
// Podcast records use the show name for both artist and album.
type PlayRecord struct {
	Name       string    `json:"name"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album"`
	PlayedAt   time.Time `json:"play_date"`
	DurationMs int64     `json:"duration_played"`
	Podcast    bool      `json:"is_podcast"`
}

// Album names in exports are noisy. Stripped in order: parenthetical
// suffixes, bracketed suffixes, then "...: Box Set" suffixes.
var (
	parenPattern   = regexp.MustCompile(`\s*\(.*\)`)
	bracketPattern = regexp.MustCompile(`\s*\[.*\]`)
	boxSetPattern  = regexp.MustCompile(`:.*Box Set`)
)

// Normalize converts raw export events to play records. Events with no
// play time are dropped. The input is not modified.
func Normalize(raw []RawPlayEvent) ([]PlayRecord, error) {
	records := make([]PlayRecord, 0, len(raw))
	for _, event := range raw {
		if event.MsPlayed <= 0 {
			continue
		}

		playedAt, err := time.Parse(time.RFC3339, event.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing play timestamp %q: %w", event.Timestamp, err)
		}

		record := PlayRecord{
			Name:       event.TrackName,
			Artist:     cleanArtist(event.AlbumArtistName),
			Album:      cleanAlbum(event.AlbumName),
			PlayedAt:   playedAt,
			DurationMs: event.MsPlayed,
			// An episode has no track name; podcast status is inferred
			// from that absence rather than an explicit flag.
			Podcast: event.TrackName == "",
		}
		if record.Name == "" {
			record.Name = event.EpisodeName
		}
		if record.Artist == "" {
			record.Artist = event.EpisodeShowName
		}
		if record.Album == "" {
			record.Album = event.EpisodeShowName
		}

		records = append(records, record)
	}
	return records, nil
}

func cleanArtist(artist string) string {
	return strings.ReplaceAll(artist, "Kanye West", "Ye")
}

func cleanAlbum(album string) string {
	album = parenPattern.ReplaceAllString(album, "")
	album = bracketPattern.ReplaceAllString(album, "")
	album = boxSetPattern.ReplaceAllString(album, "")
	return album
}

// ReadFile parses one export file and normalizes its events. A file that
// fails to parse fails as a whole; there is no per-record recovery.
func ReadFile(path string) ([]PlayRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	var raw []RawPlayEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %q - ensure files are unzipped and in .json format: %w", path, err)
	}

	records, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalizing %q: %w", path, err)
	}
	return records, nil
}
