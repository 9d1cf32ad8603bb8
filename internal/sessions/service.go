package sessions

import (
	"context"
	"log"
)

// RemoteStore is the slice of the remote backend this service needs.
type RemoteStore interface {
	UpdateSession(ctx context.Context, session Session) error
	DeleteSession(ctx context.Context, id string) error
}

// PointDeleter removes a session's locally persisted track points.
type PointDeleter interface {
	DeleteBySession(ctx context.Context, sessionID string) error
}

type Service struct {
	store  *Store
	points PointDeleter
	remote RemoteStore
}

func NewService(store *Store, points PointDeleter, remote RemoteStore) *Service {
	return &Service{store: store, points: points, remote: remote}
}

func (s *Service) List(ctx context.Context, userID string) ([]Session, error) {
	return s.store.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.store.ByID(ctx, id)
}

// UpdateTitle renames a session locally and pushes the change. A failed
// push marks the row updated_offline for the sync engine; the rename
// itself always sticks locally.
func (s *Service) UpdateTitle(ctx context.Context, id, title string) (Session, error) {
	if err := s.store.UpdateTitle(ctx, id, title); err != nil {
		return Session{}, err
	}
	session, err := s.store.ByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	// A session that never reached the remote will carry the title
	// along when its creation syncs; no second flag needed.
	if session.CreatedOffline {
		return session, nil
	}

	if err := s.remote.UpdateSession(ctx, session); err != nil {
		log.Printf("remote session update failed, deferring to sync: %v", err)
		if err := s.store.MarkUpdatedOffline(ctx, id); err != nil {
			return Session{}, err
		}
		session.UpdatedOffline = true
	}
	return session, nil
}

// Delete removes a session. A session the remote has never seen is
// purged locally right away; otherwise remote deletion is attempted and
// a failure leaves the row behind flagged deleted_offline.
func (s *Service) Delete(ctx context.Context, id string) error {
	session, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.points.DeleteBySession(ctx, id); err != nil {
		return err
	}

	if session.CreatedOffline {
		return s.store.Delete(ctx, id)
	}

	if err := s.remote.DeleteSession(ctx, id); err != nil {
		log.Printf("remote session delete failed, deferring to sync: %v", err)
		return s.store.MarkDeletedOffline(ctx, id)
	}
	return s.store.Delete(ctx, id)
}
