package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jwhyun/tripnote/internal/db"
	"github.com/jwhyun/tripnote/internal/domain"
)

// ErrNotCached indicates no snapshot exists locally for the requested trip.
var ErrNotCached = errors.New("trip not in local cache")

// SQLiteSnapshotRepo implements SnapshotRepo on the local cache database.
type SQLiteSnapshotRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteSnapshotRepo creates a SnapshotRepo backed by the given database.
func NewSQLiteSnapshotRepo(database *sql.DB) *SQLiteSnapshotRepo {
	return NewSQLiteSnapshotRepoWithUoW(database, db.NewSQLiteUnitOfWork(database))
}

// NewSQLiteSnapshotRepoWithUoW allows supplying the unit of work that wraps
// snapshot writes.
func NewSQLiteSnapshotRepoWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: database, uow: uow}
}

func (r *SQLiteSnapshotRepo) SaveTrip(ctx context.Context, snap *domain.Snapshot) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tripID := snap.Trip.ID

		// Full replacement per trip; child rows cascade.
		if _, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, tripID); err != nil {
			return fmt.Errorf("clearing cached trip: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO trips (id, title, start_date, end_date, user_id, fetched_at) VALUES (?, ?, ?, ?, ?, ?)`,
			tripID, snap.Trip.Title, snap.Trip.StartDate, snap.Trip.EndDate, snap.Trip.UserID,
			snap.FetchedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("caching trip: %w", err)
		}

		for _, a := range snap.Assignments {
			var cityID int64
			if a.CityID != nil {
				cityID = *a.CityID
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO trip_cities (id, trip_id, city_id, city_name, ko_name, start_date, end_date)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				a.ServerID, tripID, cityID, a.CityName, a.KoName, a.StartDate, a.EndDate,
			); err != nil {
				return fmt.Errorf("caching trip city: %w", err)
			}
		}

		for _, d := range snap.Days {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO trip_days (id, trip_id, day_sequence) VALUES (?, ?, ?)`,
				d.ServerID, tripID, d.Sequence,
			); err != nil {
				return fmt.Errorf("caching trip day: %w", err)
			}
		}

		for seq, entries := range snap.Schedules {
			for _, e := range entries {
				id, ok := e.Life.ServerID()
				if !ok {
					continue
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO schedules (id, trip_id, day_sequence, schedule_content, start_time, end_time, place_id)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`,
					id, tripID, seq, e.Content, e.StartTime, e.EndTime, e.PlaceID,
				); err != nil {
					return fmt.Errorf("caching schedule: %w", err)
				}
			}
		}

		for _, c := range snap.Checklist {
			id, ok := c.Life.ServerID()
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO checklist_items (id, trip_id, item_name, is_checked) VALUES (?, ?, ?, ?)`,
				id, tripID, c.Name, c.Checked,
			); err != nil {
				return fmt.Errorf("caching checklist item: %w", err)
			}
		}

		return nil
	})
}

func (r *SQLiteSnapshotRepo) GetTrip(ctx context.Context, tripID int64) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{Schedules: make(map[int][]domain.ScheduleEntry)}

	var fetchedAt string
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, start_date, end_date, user_id, fetched_at FROM trips WHERE id = ?`, tripID)
	if err := row.Scan(&snap.Trip.ID, &snap.Trip.Title, &snap.Trip.StartDate,
		&snap.Trip.EndDate, &snap.Trip.UserID, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("loading cached trip: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		snap.FetchedAt = t
	}

	if err := r.loadAssignments(ctx, tripID, snap); err != nil {
		return nil, err
	}
	if err := r.loadDays(ctx, tripID, snap); err != nil {
		return nil, err
	}
	if err := r.loadSchedules(ctx, tripID, snap); err != nil {
		return nil, err
	}
	if err := r.loadChecklist(ctx, tripID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *SQLiteSnapshotRepo) loadAssignments(ctx context.Context, tripID int64, snap *domain.Snapshot) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, city_id, city_name, ko_name, start_date, end_date FROM trip_cities WHERE trip_id = ? ORDER BY id`, tripID)
	if err != nil {
		return fmt.Errorf("loading cached trip cities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a domain.CityAssignment
		var cityID int64
		if err := rows.Scan(&a.ServerID, &cityID, &a.CityName, &a.KoName, &a.StartDate, &a.EndDate); err != nil {
			return fmt.Errorf("scanning cached trip city: %w", err)
		}
		if cityID != 0 {
			a.CityID = &cityID
		}
		snap.Assignments = append(snap.Assignments, a)
	}
	return rows.Err()
}

func (r *SQLiteSnapshotRepo) loadDays(ctx context.Context, tripID int64, snap *domain.Snapshot) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, day_sequence FROM trip_days WHERE trip_id = ? ORDER BY day_sequence`, tripID)
	if err != nil {
		return fmt.Errorf("loading cached trip days: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.SnapshotDay
		if err := rows.Scan(&d.ServerID, &d.Sequence); err != nil {
			return fmt.Errorf("scanning cached trip day: %w", err)
		}
		snap.Days = append(snap.Days, d)
	}
	return rows.Err()
}

func (r *SQLiteSnapshotRepo) loadSchedules(ctx context.Context, tripID int64, snap *domain.Snapshot) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, day_sequence, schedule_content, start_time, end_time, place_id
		 FROM schedules WHERE trip_id = ? ORDER BY day_sequence, id`, tripID)
	if err != nil {
		return fmt.Errorf("loading cached schedules: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.ScheduleEntry
		var id int64
		var seq int
		var placeID sql.NullInt64
		if err := rows.Scan(&id, &seq, &e.Content, &e.StartTime, &e.EndTime, &placeID); err != nil {
			return fmt.Errorf("scanning cached schedule: %w", err)
		}
		e.Life = domain.Persisted(id)
		if placeID.Valid {
			e.PlaceID = &placeID.Int64
		}
		snap.Schedules[seq] = append(snap.Schedules[seq], e)
	}
	return rows.Err()
}

func (r *SQLiteSnapshotRepo) loadChecklist(ctx context.Context, tripID int64, snap *domain.Snapshot) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, item_name, is_checked FROM checklist_items WHERE trip_id = ? ORDER BY id`, tripID)
	if err != nil {
		return fmt.Errorf("loading cached checklist: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.ChecklistItem
		var id int64
		if err := rows.Scan(&id, &c.Name, &c.Checked); err != nil {
			return fmt.Errorf("scanning cached checklist item: %w", err)
		}
		c.Life = domain.Persisted(id)
		snap.Checklist = append(snap.Checklist, c)
	}
	return rows.Err()
}

func (r *SQLiteSnapshotRepo) DeleteTrip(ctx context.Context, tripID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, tripID); err != nil {
		return fmt.Errorf("deleting cached trip: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, start_date, end_date, user_id FROM trips ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("listing cached trips: %w", err)
	}
	defer rows.Close()
	var trips []domain.Trip
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(&t.ID, &t.Title, &t.StartDate, &t.EndDate, &t.UserID); err != nil {
			return nil, fmt.Errorf("scanning cached trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
