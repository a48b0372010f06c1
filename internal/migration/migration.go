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

// Package migration holds the SQLite schema.
package migration

const Create = `
CREATE TABLE IF NOT EXISTS Play (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  artist TEXT NOT NULL,
  album TEXT NOT NULL,
  played_at INTEGER NOT NULL,
  duration_ms INTEGER NOT NULL,
  podcast INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS PlayPlayedAt ON Play (played_at);

CREATE TABLE IF NOT EXISTS Dataset (
  id TEXT PRIMARY KEY,
  data BLOB NOT NULL,
  created INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS Beacon (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  query TEXT NOT NULL,
  remote TEXT NOT NULL,
  created INTEGER NOT NULL
);
`
