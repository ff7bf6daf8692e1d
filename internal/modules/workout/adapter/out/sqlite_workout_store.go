package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mapty/internal/modules/workout/domain"

	_ "modernc.org/sqlite"
)

// SQLiteWorkoutStore keeps the session's workouts in an in-memory SQLite
// database. Every connection to ":memory:" is a fresh database, so the pool
// is pinned to a single connection; the data goes away with Close.
type SQLiteWorkoutStore struct {
	db *sql.DB
}

func NewSQLiteWorkoutStore(ctx context.Context) (*SQLiteWorkoutStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	store := &SQLiteWorkoutStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteWorkoutStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS workouts (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  kind TEXT NOT NULL,
  created_at TEXT NOT NULL,
  lat REAL NOT NULL,
  lng REAL NOT NULL,
  distance_km REAL NOT NULL,
  duration_min REAL NOT NULL,
  cadence_spm REAL NOT NULL DEFAULT 0,
  pace_min_per_km REAL NOT NULL DEFAULT 0,
  elevation_gain_m REAL NOT NULL DEFAULT 0,
  speed_kmh REAL NOT NULL DEFAULT 0
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create workouts table: %w", err)
	}
	return nil
}

func (s *SQLiteWorkoutStore) Append(ctx context.Context, w domain.Workout) error {
	const stmt = `
INSERT INTO workouts (id, kind, created_at, lat, lng, distance_km, duration_min, cadence_spm, pace_min_per_km, elevation_gain_m, speed_kmh)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		w.ID,
		string(w.Kind),
		w.CreatedAt.UTC().Format(time.RFC3339Nano),
		w.Coords.Lat,
		w.Coords.Lng,
		w.DistanceKm,
		w.DurationMin,
		w.Running.CadenceSPM,
		w.Running.PaceMinPerKm,
		w.Cycling.ElevationGainM,
		w.Cycling.SpeedKmh,
	)
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}

// List rebuilds workouts from the stored columns, derived metrics included;
// nothing is recomputed on the way out.
func (s *SQLiteWorkoutStore) List(ctx context.Context) ([]domain.Workout, error) {
	const query = `
SELECT id, kind, created_at, lat, lng, distance_km, duration_min, cadence_spm, pace_min_per_km, elevation_gain_m, speed_kmh
FROM workouts ORDER BY seq;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	var out []domain.Workout
	for rows.Next() {
		var (
			w         domain.Workout
			kind      string
			createdAt string
			run       domain.RunningMetrics
			ride      domain.CyclingMetrics
		)
		if err := rows.Scan(&w.ID, &kind, &createdAt, &w.Coords.Lat, &w.Coords.Lng, &w.DistanceKm, &w.DurationMin,
			&run.CadenceSPM, &run.PaceMinPerKm, &ride.ElevationGainM, &ride.SpeedKmh); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		w.Kind = domain.Kind(kind)
		w.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", w.ID, err)
		}
		switch w.Kind {
		case domain.KindRunning:
			w.Running = run
		case domain.KindCycling:
			w.Cycling = ride
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workouts: %w", err)
	}
	return out, nil
}

func (s *SQLiteWorkoutStore) Close() error {
	return s.db.Close()
}
