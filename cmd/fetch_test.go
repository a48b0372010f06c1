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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/amolden/playchart/internal/store"
)

func TestFetchDataset(t *testing.T) {
	data, err := json.Marshal(testPlays(t))
	if err != nil {
		t.Fatalf("encoding plays: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/store" || r.URL.Query().Get("id") != "abc123" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "playchart.db")
	if err := fetchDataset(dbPath, srv.URL, "abc123"); err != nil {
		t.Fatalf("fetchDataset() error: %v", err)
	}

	db, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer db.Close()

	count, err := db.CountPlays()
	if err != nil {
		t.Fatalf("CountPlays() error: %v", err)
	}
	if count != 2 {
		t.Errorf("CountPlays() = %d, want 2", count)
	}
}

func TestFetchDatasetDoesNotRetryClientErrors(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "unknown dataset", http.StatusNotFound)
	}))
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "playchart.db")
	if err := fetchDataset(dbPath, srv.URL, "nope"); err == nil {
		t.Fatalf("fetchDataset() should have errored on 404")
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1 (client errors don't get better)", requests)
	}
}

func TestFetchDatasetRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not play data"))
	}))
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "playchart.db")
	if err := fetchDataset(dbPath, srv.URL, "abc123"); err == nil {
		t.Fatalf("fetchDataset() should have errored on a malformed dataset")
	}
}
