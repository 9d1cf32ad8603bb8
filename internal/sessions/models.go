package sessions

import "time"

// Session is one climbing session row in the local store. The three
// offline flags mark changes not yet confirmed by the remote backend; a
// row with deleted_offline set stays in the table (excluded from
// listing) until remote deletion is confirmed.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	TotalAscent    float64 `json:"total_ascent"`
	TotalDescent   float64 `json:"total_descent"`
	MaxAltitude    float64 `json:"max_altitude"`
	MinAltitude    float64 `json:"min_altitude"`
	AvgRate        float64 `json:"avg_rate"`
	AlertTriggered bool    `json:"alert_triggered"`

	CreatedOffline bool `json:"created_offline"`
	UpdatedOffline bool `json:"updated_offline"`
	DeletedOffline bool `json:"deleted_offline"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SyncFlag names one of the session dirty flags for ResolveSync.
type SyncFlag string

const (
	FlagCreated SyncFlag = "created"
	FlagUpdated SyncFlag = "updated"
	FlagDeleted SyncFlag = "deleted"
)

// Summary carries the final statistics written by FinishSession.
type Summary struct {
	EndTime        time.Time
	TotalAscent    float64
	TotalDescent   float64
	MaxAltitude    float64
	MinAltitude    float64
	AvgRate        float64
	AlertTriggered bool
}
