package users

import (
	"context"
	"log"

	"backend-topout/internal/tracking"
)

// RemoteStore is the slice of the remote backend this service needs.
type RemoteStore interface {
	UpdateUser(ctx context.Context, user User) error
}

type Service struct {
	store  *Store
	remote RemoteStore
}

func NewService(store *Store, remote RemoteStore) *Service {
	return &Service{store: store, remote: remote}
}

func (s *Service) Get(ctx context.Context) (User, error) {
	return s.store.Get(ctx)
}

// UpdateSettings applies a partial edit locally and pushes it. A failed
// push leaves the row flagged updated_offline for the sync engine; the
// local edit always sticks.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) (User, error) {
	user, err := s.store.Get(ctx)
	if err != nil {
		return User{}, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Unit != nil {
		user.Unit = *patch.Unit
	}
	if patch.NotificationsEnabled != nil {
		user.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.RelativeHeightThreshold != nil {
		user.RelativeHeightThreshold = *patch.RelativeHeightThreshold
	}
	if patch.TotalHeightThreshold != nil {
		user.TotalHeightThreshold = *patch.TotalHeightThreshold
	}
	if patch.AvgSpeedThreshold != nil {
		user.AvgSpeedThreshold = *patch.AvgSpeedThreshold
	}

	if err := s.store.Save(ctx, user); err != nil {
		return User{}, err
	}

	if err := s.remote.UpdateUser(ctx, user); err != nil {
		log.Printf("remote user update failed, deferring to sync: %v", err)
		user.UpdatedOffline = true
		if err := s.store.Save(ctx, user); err != nil {
			return User{}, err
		}
	}
	return user, nil
}

// Thresholds adapts the stored profile to the tracker's threshold
// shape, falling back to defaults when the profile is unreadable.
func (s *Service) Thresholds(ctx context.Context) (tracking.Thresholds, error) {
	user, err := s.store.Get(ctx)
	if err != nil {
		return tracking.DefaultThresholds(), err
	}
	return tracking.Thresholds{
		RelativeHeight: user.RelativeHeightThreshold,
		TotalHeight:    user.TotalHeightThreshold,
		AvgSpeed:       user.AvgSpeedThreshold,
	}, nil
}
