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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/amolden/playchart/internal/chart"
	"github.com/amolden/playchart/internal/history"
	"github.com/amolden/playchart/internal/store"
)

// Datasets past this size are rejected rather than stored.
const maxDatasetBytes = 32 << 20

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the chart and shared datasets over HTTP",
	Long: `Runs an HTTP server. GET / renders the chart for the stored plays
(query parameters mirror the chart flags), /store saves and fetches
shareable datasets, and /analytics records a usage beacon.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := serve(viper.GetString("database"), serveAddr)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8345", "Listen address")
}

type server struct {
	db      *store.Store
	loc     *time.Location
	beacons *rate.Limiter
}

func serve(dbPath string, addr string) error {
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	loc, err := loadLocation()
	if err != nil {
		return err
	}

	s := &server{
		db:      db,
		loc:     loc,
		beacons: rate.NewLimiter(rate.Every(time.Second), 10),
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleChart)
	r.Get("/store", s.handleGetDataset)
	r.Post("/store", s.handleSaveDataset)
	r.Get("/analytics", s.handleAnalytics)

	fmt.Printf("Listening on %s\n", addr)
	return http.ListenAndServe(addr, r)
}

// handleChart renders the chart for the stored plays. Query parameters
// use the original short names: main, break, mindur, start, width, pod.
func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	params := defaultChartParams()
	q := r.URL.Query()

	if v := q.Get("main"); v != "" {
		params.Primary = v
	}
	if v := q.Get("break"); v != "" {
		params.Breakout = v
	}
	if v := q.Get("pod"); v != "" {
		params.Category = v
	}
	var err error
	if params.MinPlayMinutes, err = queryFloat(q.Get("mindur"), params.MinPlayMinutes); err != nil {
		http.Error(w, "bad mindur", http.StatusBadRequest)
		return
	}
	if params.WindowStart, err = queryFloat(q.Get("start"), params.WindowStart); err != nil {
		http.Error(w, "bad start", http.StatusBadRequest)
		return
	}
	if params.WindowWidth, err = queryFloat(q.Get("width"), params.WindowWidth); err != nil {
		http.Error(w, "bad width", http.StatusBadRequest)
		return
	}

	var records []history.PlayRecord
	if id := q.Get("id"); id != "" {
		data, err := s.db.GetDataset(id)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "unknown dataset", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := json.Unmarshal(data, &records); err != nil {
			http.Error(w, "stored dataset is not play data", http.StatusBadRequest)
			return
		}
	} else {
		if records, err = s.db.GetPlays(time.Time{}, time.Time{}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	out, err := runPipeline(records, params, s.loc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.Render(w, out.Chart); err != nil {
		fmt.Printf("rendering chart: %v\n", err)
	}
}

func (s *server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	data, err := s.db.GetDataset(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "unknown dataset", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleSaveDataset stores the request body as an opaque blob and
// responds with its identifier.
func (s *server) handleSaveDataset(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDatasetBytes))
	if err != nil {
		http.Error(w, "dataset too large", http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) == 0 {
		http.Error(w, "empty dataset", http.StatusBadRequest)
		return
	}

	id, err := s.db.SaveDataset(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprint(w, id)
}

func (s *server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	// Beacons are best effort; shed load rather than queue it.
	if s.beacons.Allow() {
		if err := s.db.AddBeacon(r.URL.RawQuery, r.RemoteAddr); err != nil {
			fmt.Printf("recording beacon: %v\n", err)
		}
	}
	fmt.Fprint(w, "k")
}

func queryFloat(value string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}
