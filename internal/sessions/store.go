package sessions

import (
	"context"
	"fmt"

	"backend-topout/internal/db"

	"github.com/google/uuid"
)

const sessionColumns = `id, user_id, title, start_time, end_time,
		total_ascent, total_descent, max_altitude, min_altitude, avg_rate, alert_triggered,
		created_offline, updated_offline, deleted_offline, created_at, updated_at`

type Store struct {
	db db.Querier
}

func NewStore(db db.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, userID, title string) (Session, error) {
	session := Session{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO sessions (id, user_id, title)
		VALUES ($1,$2,$3)
		RETURNING start_time, created_at, updated_at
	`, session.ID, session.UserID, session.Title)
	if err := row.Scan(&session.StartTime, &session.CreatedAt, &session.UpdatedAt); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Store) ByID(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions WHERE id=$1
	`, id)
	return scanSession(row)
}

// Save writes the full row back, dirty flags included. Used by the sync
// engine to persist the remote-returned canonical session.
func (s *Store) Save(ctx context.Context, session Session) error {
	_, err := s.db.Exec(ctx, `
		UPDATE sessions
		SET title=$2, end_time=$3,
		    total_ascent=$4, total_descent=$5, max_altitude=$6, min_altitude=$7, avg_rate=$8,
		    alert_triggered=$9, created_offline=$10, updated_offline=$11, deleted_offline=$12,
		    updated_at=now()
		WHERE id=$1
	`, session.ID, session.Title, session.EndTime,
		session.TotalAscent, session.TotalDescent, session.MaxAltitude, session.MinAltitude, session.AvgRate,
		session.AlertTriggered, session.CreatedOffline, session.UpdatedOffline, session.DeletedOffline)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	return err
}

func (s *Store) UpdateTitle(ctx context.Context, id, title string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE sessions SET title=$2, updated_at=now() WHERE id=$1
	`, id, title)
	return err
}

func (s *Store) UpdateSummary(ctx context.Context, id string, summary Summary) error {
	_, err := s.db.Exec(ctx, `
		UPDATE sessions
		SET end_time=$2, total_ascent=$3, total_descent=$4, max_altitude=$5, min_altitude=$6,
		    avg_rate=$7, alert_triggered=$8, updated_at=now()
		WHERE id=$1
	`, id, summary.EndTime, summary.TotalAscent, summary.TotalDescent,
		summary.MaxAltitude, summary.MinAltitude, summary.AvgRate, summary.AlertTriggered)
	return err
}

// List returns the user's sessions, newest first. Rows awaiting remote
// deletion are excluded from normal listing.
func (s *Store) List(ctx context.Context, userID string) ([]Session, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id=$1 AND deleted_offline=false
		ORDER BY start_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, session)
	}
	return list, nil
}

// ForSync returns every session with any dirty flag set, in one query.
func (s *Store) ForSync(ctx context.Context) ([]Session, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE created_offline OR updated_offline OR deleted_offline
		ORDER BY start_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, session)
	}
	return list, nil
}

func (s *Store) MarkCreatedOffline(ctx context.Context, id string) error {
	return s.setFlag(ctx, id, FlagCreated, true)
}

func (s *Store) MarkUpdatedOffline(ctx context.Context, id string) error {
	return s.setFlag(ctx, id, FlagUpdated, true)
}

func (s *Store) MarkDeletedOffline(ctx context.Context, id string) error {
	return s.setFlag(ctx, id, FlagDeleted, true)
}

// ResolveSync clears the given dirty flag after a confirmed remote push.
func (s *Store) ResolveSync(ctx context.Context, id string, flag SyncFlag) error {
	return s.setFlag(ctx, id, flag, false)
}

func (s *Store) setFlag(ctx context.Context, id string, flag SyncFlag, value bool) error {
	var column string
	switch flag {
	case FlagCreated:
		column = "created_offline"
	case FlagUpdated:
		column = "updated_offline"
	case FlagDeleted:
		column = "deleted_offline"
	default:
		return fmt.Errorf("unknown sync flag %q", flag)
	}

	_, err := s.db.Exec(ctx, `UPDATE sessions SET `+column+`=$2, updated_at=now() WHERE id=$1`, id, value)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.StartTime, &s.EndTime,
		&s.TotalAscent, &s.TotalDescent, &s.MaxAltitude, &s.MinAltitude, &s.AvgRate, &s.AlertTriggered,
		&s.CreatedOffline, &s.UpdatedOffline, &s.DeletedOffline, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}
