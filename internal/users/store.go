package users

import (
	"context"
	"errors"

	"backend-topout/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/google/uuid"
)

const userColumns = `id, name, unit, notifications_enabled,
		relative_height_threshold, total_height_threshold, avg_speed_threshold,
		updated_offline, created_at, updated_at`

type Store struct {
	db db.Querier
}

func NewStore(db db.Querier) *Store {
	return &Store{db: db}
}

// Get returns the singleton profile row.
func (s *Store) Get(ctx context.Context) (User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users LIMIT 1`)
	return scanUser(row)
}

// EnsureAnonymous creates the profile on first boot (the anonymous
// sign-in) and returns it; later boots return the existing row.
func (s *Store) EnsureAnonymous(ctx context.Context) (User, error) {
	user, err := s.Get(ctx)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return User{}, err
	}

	user = User{
		ID:                   uuid.NewString(),
		Name:                 "Climber",
		Unit:                 "meters",
		NotificationsEnabled: true,
		AvgSpeedThreshold:    600,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, name, unit, notifications_enabled, avg_speed_threshold)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at
	`, user.ID, user.Name, user.Unit, user.NotificationsEnabled, user.AvgSpeedThreshold)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Store) Save(ctx context.Context, user User) error {
	_, err := s.db.Exec(ctx, `
		UPDATE users
		SET name=$2, unit=$3, notifications_enabled=$4,
		    relative_height_threshold=$5, total_height_threshold=$6, avg_speed_threshold=$7,
		    updated_offline=$8, updated_at=now()
		WHERE id=$1
	`, user.ID, user.Name, user.Unit, user.NotificationsEnabled,
		user.RelativeHeightThreshold, user.TotalHeightThreshold, user.AvgSpeedThreshold,
		user.UpdatedOffline)
	return err
}

// MarkSynced clears the updated_offline flag after a confirmed push.
func (s *Store) MarkSynced(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `UPDATE users SET updated_offline=false, updated_at=now() WHERE id=$1`, id)
	return err
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Unit, &u.NotificationsEnabled,
		&u.RelativeHeightThreshold, &u.TotalHeightThreshold, &u.AvgSpeedThreshold,
		&u.UpdatedOffline, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
