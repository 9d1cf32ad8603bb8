package db

import "context"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL DEFAULT 'meters',
		notifications_enabled BOOLEAN NOT NULL DEFAULT true,
		relative_height_threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_height_threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_speed_threshold DOUBLE PRECISION NOT NULL DEFAULT 600,
		updated_offline BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		start_time TIMESTAMPTZ NOT NULL DEFAULT now(),
		end_time TIMESTAMPTZ,
		total_ascent DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_descent DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_altitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		min_altitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		alert_triggered BOOLEAN NOT NULL DEFAULT false,
		created_offline BOOLEAN NOT NULL DEFAULT false,
		updated_offline BOOLEAN NOT NULL DEFAULT false,
		deleted_offline BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS track_points (
		id BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		ts_ms BIGINT NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		altitude DOUBLE PRECISION,
		accel_x DOUBLE PRECISION,
		accel_y DOUBLE PRECISION,
		accel_z DOUBLE PRECISION,
		vertical_speed DOUBLE PRECISION NOT NULL DEFAULT 0,
		horizontal_speed DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_speed DOUBLE PRECISION NOT NULL DEFAULT 0,
		gain DOUBLE PRECISION NOT NULL DEFAULT 0,
		loss DOUBLE PRECISION NOT NULL DEFAULT 0,
		rel_altitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_vertical_speed DOUBLE PRECISION NOT NULL DEFAULT 0,
		danger BOOLEAN NOT NULL DEFAULT false,
		alert_type TEXT NOT NULL DEFAULT 'NONE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_track_points_session ON track_points (session_id, ts_ms)`,
}

// EnsureSchema creates the local tables on startup. Statements are
// idempotent so repeated boots are safe.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
