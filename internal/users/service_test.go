package users

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
)

type stubRemote struct {
	fail   bool
	pushes int
}

func (r *stubRemote) UpdateUser(_ context.Context, _ User) error {
	if r.fail {
		return errors.New("remote unavailable")
	}
	r.pushes++
	return nil
}

func str(v string) *string   { return &v }
func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }

func TestUpdateSettingsAppliesPatch(t *testing.T) {
	mock := newMock(t)
	remote := &stubRemote{}
	svc := NewService(NewStore(mock), remote)

	mock.ExpectQuery(`SELECT id, name, unit`).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(userRow("u1", false)...))
	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", "Alex", "meters", false, 100.0, 0.0, 600.0, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	user, err := svc.UpdateSettings(context.Background(), SettingsPatch{
		Name:                    str("Alex"),
		NotificationsEnabled:    boolp(false),
		RelativeHeightThreshold: f64(100),
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if user.Name != "Alex" || user.NotificationsEnabled || user.RelativeHeightThreshold != 100 {
		t.Fatalf("patch not applied: %+v", user)
	}
	// untouched fields survive
	if user.Unit != "meters" || user.AvgSpeedThreshold != 600 {
		t.Fatalf("nil patch fields must stay: %+v", user)
	}
	if remote.pushes != 1 {
		t.Fatalf("expected one remote push")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateSettingsRemoteFailureFlags(t *testing.T) {
	mock := newMock(t)
	remote := &stubRemote{fail: true}
	svc := NewService(NewStore(mock), remote)

	mock.ExpectQuery(`SELECT id, name, unit`).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(userRow("u1", false)...))
	// first save with the patch, second save carrying the dirty flag
	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", "Alex", "meters", true, 0.0, 0.0, 600.0, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users`).
		WithArgs("u1", "Alex", "meters", true, 0.0, 0.0, 600.0, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	user, err := svc.UpdateSettings(context.Background(), SettingsPatch{Name: str("Alex")})
	if err != nil {
		t.Fatalf("the local edit must stick: %v", err)
	}
	if !user.UpdatedOffline {
		t.Fatalf("remote failure must flag updated_offline")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestThresholdsAdapter(t *testing.T) {
	mock := newMock(t)
	svc := NewService(NewStore(mock), &stubRemote{})

	row := userRow("u1", false)
	row[4] = 100.0  // relative
	row[5] = 3000.0 // total
	row[6] = 500.0  // avg speed
	mock.ExpectQuery(`SELECT id, name, unit`).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(row...))

	th, err := svc.Thresholds(context.Background())
	if err != nil {
		t.Fatalf("thresholds: %v", err)
	}
	if th.RelativeHeight != 100 || th.TotalHeight != 3000 || th.AvgSpeed != 500 {
		t.Fatalf("unexpected thresholds: %+v", th)
	}
}

func TestThresholdsFallBackToDefaults(t *testing.T) {
	mock := newMock(t)
	svc := NewService(NewStore(mock), &stubRemote{})

	mock.ExpectQuery(`SELECT id, name, unit`).
		WillReturnError(errors.New("db down"))

	th, err := svc.Thresholds(context.Background())
	if err == nil {
		t.Fatalf("expected an error alongside the defaults")
	}
	if th.AvgSpeed != 600 || th.RelativeHeight != 0 || th.TotalHeight != 0 {
		t.Fatalf("expected defaults, got %+v", th)
	}
}
