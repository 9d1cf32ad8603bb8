package tracking

import "time"

// AlertType classifies the active safety alert for one tick.
type AlertType string

const (
	AlertNone                   AlertType = "NONE"
	AlertRapidAscent            AlertType = "RAPID_ASCENT"
	AlertRapidDescent           AlertType = "RAPID_DESCENT"
	AlertRelativeHeightExceeded AlertType = "RELATIVE_HEIGHT_EXCEEDED"
	AlertTotalHeightExceeded    AlertType = "TOTAL_HEIGHT_EXCEEDED"
)

// Thresholds are the user's configured alert limits. A relative or
// total height threshold of exactly 0 means disabled, not zero
// tolerance.
type Thresholds struct {
	RelativeHeight float64 // meters above/below session start
	TotalHeight    float64 // absolute altitude in meters
	AvgSpeed       float64 // meters per minute
}

// DefaultThresholds applies when no user profile is available: height
// alerts disabled, 600 m/min average vertical speed.
func DefaultThresholds() Thresholds {
	return Thresholds{RelativeHeight: 0, TotalHeight: 0, AvgSpeed: 600}
}

// Metrics is the derived snapshot computed for every fused sample.
type Metrics struct {
	VerticalSpeed    float64   `json:"vertical_speed"`
	HorizontalSpeed  float64   `json:"horizontal_speed"`
	TotalSpeed       float64   `json:"total_speed"`
	Gain             float64   `json:"gain"`
	Loss             float64   `json:"loss"`
	RelAltitude      float64   `json:"rel_altitude"`
	AvgVerticalSpeed float64   `json:"avg_vertical_speed"`
	Danger           bool      `json:"danger"`
	AlertType        AlertType `json:"alert_type"`
}

// TrackPoint is one persisted observation: raw sensor values plus the
// full metrics snapshot at that instant. Rows are append-only per
// session; they are only ever deleted in bulk.
type TrackPoint struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	TSMillis  int64  `json:"ts_ms"`

	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
	Altitude *float64 `json:"altitude,omitempty"`
	AccelX   *float64 `json:"accel_x,omitempty"`
	AccelY   *float64 `json:"accel_y,omitempty"`
	AccelZ   *float64 `json:"accel_z,omitempty"`

	Metrics

	CreatedAt time.Time `json:"created_at"`
}
