package tracking

import (
	"context"

	"backend-topout/internal/db"
)

// PointStore is the append/query/delete DAO for track points.
type PointStore struct {
	db db.Querier
}

func NewPointStore(db db.Querier) *PointStore {
	return &PointStore{db: db}
}

func (s *PointStore) Insert(ctx context.Context, p TrackPoint) (int64, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO track_points (session_id, ts_ms, lat, lon, altitude, accel_x, accel_y, accel_z,
			vertical_speed, horizontal_speed, total_speed, gain, loss, rel_altitude, avg_vertical_speed,
			danger, alert_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id
	`, p.SessionID, p.TSMillis, p.Lat, p.Lon, p.Altitude, p.AccelX, p.AccelY, p.AccelZ,
		p.VerticalSpeed, p.HorizontalSpeed, p.TotalSpeed, p.Gain, p.Loss, p.RelAltitude, p.AvgVerticalSpeed,
		p.Danger, string(p.AlertType))

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PointStore) BySession(ctx context.Context, sessionID string) ([]TrackPoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, ts_ms, lat, lon, altitude, accel_x, accel_y, accel_z,
			vertical_speed, horizontal_speed, total_speed, gain, loss, rel_altitude, avg_vertical_speed,
			danger, alert_type, created_at
		FROM track_points WHERE session_id=$1
		ORDER BY ts_ms
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrackPoint
	for rows.Next() {
		var p TrackPoint
		var alert string
		if err := rows.Scan(&p.ID, &p.SessionID, &p.TSMillis, &p.Lat, &p.Lon, &p.Altitude,
			&p.AccelX, &p.AccelY, &p.AccelZ,
			&p.VerticalSpeed, &p.HorizontalSpeed, &p.TotalSpeed, &p.Gain, &p.Loss,
			&p.RelAltitude, &p.AvgVerticalSpeed, &p.Danger, &alert, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.AlertType = AlertType(alert)
		points = append(points, p)
	}
	return points, nil
}

func (s *PointStore) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM track_points WHERE session_id=$1`, sessionID)
	return err
}
