package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order on every open. Statements are written to
// be re-runnable (CREATE TABLE IF NOT EXISTS) since there is no version
// table; the cache can always be deleted and rebuilt from the server.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cities (
		id          INTEGER PRIMARY KEY,
		city_name   TEXT NOT NULL,
		ko_name     TEXT NOT NULL DEFAULT '',
		ko_country  TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS trips (
		id          INTEGER PRIMARY KEY,
		title       TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		user_id     INTEGER NOT NULL,
		fetched_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS trip_cities (
		id          INTEGER PRIMARY KEY,
		trip_id     INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		city_id     INTEGER NOT NULL,
		city_name   TEXT NOT NULL DEFAULT '',
		ko_name     TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS trip_days (
		id            INTEGER PRIMARY KEY,
		trip_id       INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		day_sequence  INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedules (
		id                INTEGER PRIMARY KEY,
		trip_id           INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		day_sequence      INTEGER NOT NULL,
		schedule_content  TEXT NOT NULL,
		start_time        TEXT NOT NULL DEFAULT '',
		end_time          TEXT NOT NULL DEFAULT '',
		place_id          INTEGER
	)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		id          INTEGER PRIMARY KEY,
		trip_id     INTEGER NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		item_name   TEXT NOT NULL,
		is_checked  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_trip_days_trip ON trip_days(trip_id, day_sequence)`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_trip ON schedules(trip_id, day_sequence)`,
	`CREATE INDEX IF NOT EXISTS idx_checklist_trip ON checklist_items(trip_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
