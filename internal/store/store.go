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

// Package store persists normalized plays, shared dataset blobs, and
// analytics beacons in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/amolden/playchart/internal/history"
	"github.com/amolden/playchart/internal/migration"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(migration.Create); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddPlays inserts a batch of plays transactionally.
func (s *Store) AddPlays(records []history.PlayRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
	INSERT INTO Play (name, artist, album, played_at, duration_ms, podcast)
	VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.Exec(record.Name, record.Artist, record.Album,
			record.PlayedAt.Unix(), record.DurationMs, record.Podcast)
		if err != nil {
			return fmt.Errorf("inserting play %q: %w", record.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing plays: %w", err)
	}
	return nil
}

// GetPlays returns plays in [start, end), ordered by play time. Zero
// start and end mean no bound on that side.
func (s *Store) GetPlays(start, end time.Time) ([]history.PlayRecord, error) {
	query := `
	SELECT name, artist, album, played_at, duration_ms, podcast
	FROM Play
	WHERE (? = 0 OR played_at >= ?)
	AND (? = 0 OR played_at < ?)
	ORDER BY played_at
	`
	startUnix, endUnix := int64(0), int64(0)
	if !start.IsZero() {
		startUnix = start.Unix()
	}
	if !end.IsZero() {
		endUnix = end.Unix()
	}

	rows, err := s.db.Query(query, startUnix, startUnix, endUnix, endUnix)
	if err != nil {
		return nil, fmt.Errorf("querying plays: %w", err)
	}
	defer rows.Close()

	var records []history.PlayRecord
	for rows.Next() {
		var record history.PlayRecord
		var playedAt int64
		if err := rows.Scan(&record.Name, &record.Artist, &record.Album,
			&playedAt, &record.DurationMs, &record.Podcast); err != nil {
			return nil, fmt.Errorf("scanning play: %w", err)
		}
		record.PlayedAt = time.Unix(playedAt, 0)
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountPlays returns the total number of stored plays.
func (s *Store) CountPlays() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(id) FROM Play").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting plays: %w", err)
	}
	return count, nil
}

// GetLatestPlay returns the time of the most recent stored play, or the
// zero time when the database is empty.
func (s *Store) GetLatestPlay() (time.Time, error) {
	row := s.db.QueryRow("SELECT played_at FROM Play ORDER BY played_at DESC LIMIT 1")
	var playedAt int64
	err := row.Scan(&playedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting latest play: %w", err)
	}
	return time.Unix(playedAt, 0), nil
}

// SaveDataset stores an opaque blob and returns its identifier. The blob
// is not inspected; schema is the caller's concern.
func (s *Store) SaveDataset(data []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec("INSERT INTO Dataset (id, data, created) VALUES (?, ?, ?)",
		id, data, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("saving dataset: %w", err)
	}
	return id, nil
}

// GetDataset fetches a stored blob. Returns sql.ErrNoRows when the id is
// unknown.
func (s *Store) GetDataset(id string) ([]byte, error) {
	row := s.db.QueryRow("SELECT data FROM Dataset WHERE id = ?", id)
	var data []byte
	if err := row.Scan(&data); err != nil {
		return nil, fmt.Errorf("getting dataset %q: %w", id, err)
	}
	return data, nil
}

// AddBeacon records one analytics hit.
func (s *Store) AddBeacon(query, remote string) error {
	_, err := s.db.Exec("INSERT INTO Beacon (query, remote, created) VALUES (?, ?, ?)",
		query, remote, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("recording beacon: %w", err)
	}
	return nil
}
