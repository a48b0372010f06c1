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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testExport = `[
	{"ts": "2023-01-01T10:00:00Z", "ms_played": 600000,
	 "master_metadata_track_name": "n1",
	 "master_metadata_album_artist_name": "A",
	 "master_metadata_album_album_name": "X"},
	{"ts": "2023-01-03T10:00:00Z", "ms_played": 60000000,
	 "master_metadata_track_name": "n3",
	 "master_metadata_album_artist_name": "B",
	 "master_metadata_album_album_name": "X"},
	{"ts": "2023-01-04T10:00:00Z", "ms_played": 0,
	 "master_metadata_track_name": "skipped",
	 "master_metadata_album_artist_name": "B",
	 "master_metadata_album_album_name": "X"}
]`

func writeTestExport(t *testing.T) (dbPath string, exportPath string) {
	t.Helper()
	dir := t.TempDir()
	exportPath = filepath.Join(dir, "history.json")
	if err := os.WriteFile(exportPath, []byte(testExport), 0o644); err != nil {
		t.Fatalf("writing export file: %v", err)
	}
	return filepath.Join(dir, "playchart.db"), exportPath
}

func TestImportFilesAndPrintTop(t *testing.T) {
	dbPath, exportPath := writeTestExport(t)

	if err := importFiles(dbPath, []string{exportPath}); err != nil {
		t.Fatalf("importFiles() error: %v", err)
	}

	var out bytes.Buffer
	params := defaultChartParams()
	params.MinPlayMinutes = 0
	if err := printTop(&out, dbPath, params, nil); err != nil {
		t.Fatalf("printTop() error: %v", err)
	}

	if !strings.Contains(out.String(), "B") {
		t.Errorf("top output missing artist B:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "2 groups") {
		t.Errorf("top output missing summary:\n%s", out.String())
	}
}

func TestImportFilesRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing bad file: %v", err)
	}

	dbPath := filepath.Join(dir, "playchart.db")
	if err := importFiles(dbPath, []string{badPath}); err == nil {
		t.Fatalf("importFiles() should have errored on a malformed file")
	}

	// Nothing should have been written.
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Errorf("database created despite failed import")
	}
}

func TestWriteChart(t *testing.T) {
	dbPath, exportPath := writeTestExport(t)
	if err := importFiles(dbPath, []string{exportPath}); err != nil {
		t.Fatalf("importFiles() error: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "chart.html")
	params := defaultChartParams()
	params.MinPlayMinutes = 0
	if err := writeChart(dbPath, outPath, params, nil); err != nil {
		t.Fatalf("writeChart() error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading chart: %v", err)
	}
	if !strings.Contains(string(data), "Hours Played") {
		t.Errorf("chart output missing hover text")
	}
}

func TestWriteChartInvalidDate(t *testing.T) {
	dbPath, _ := writeTestExport(t)
	err := writeChart(dbPath, filepath.Join(t.TempDir(), "c.html"), defaultChartParams(), []string{"derp"})
	if err == nil {
		t.Fatalf("writeChart() should have errored with an invalid date string")
	}
}
