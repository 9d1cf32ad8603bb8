package users

import "time"

// User is the singleton local profile mirroring the remote user
// document. Created once by anonymous sign-in, never deleted.
type User struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Unit                    string  `json:"unit"`
	NotificationsEnabled    bool    `json:"notifications_enabled"`
	RelativeHeightThreshold float64 `json:"relative_height_threshold"`
	TotalHeightThreshold    float64 `json:"total_height_threshold"`
	AvgSpeedThreshold       float64 `json:"avg_speed_threshold"`

	UpdatedOffline bool `json:"updated_offline"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingsPatch is a partial settings update from the UI. Nil fields
// are left unchanged.
type SettingsPatch struct {
	Name                    *string  `json:"name,omitempty"`
	Unit                    *string  `json:"unit,omitempty"`
	NotificationsEnabled    *bool    `json:"notifications_enabled,omitempty"`
	RelativeHeightThreshold *float64 `json:"relative_height_threshold,omitempty"`
	TotalHeightThreshold    *float64 `json:"total_height_threshold,omitempty"`
	AvgSpeedThreshold       *float64 `json:"avg_speed_threshold,omitempty"`
}
