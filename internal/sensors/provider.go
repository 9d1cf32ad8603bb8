package sensors

import "context"

// Acceleration is one accelerometer reading in m/s^2 per axis.
type Acceleration struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	TS int64   `json:"ts"`
}

// Altitude is one barometric reading. Altitude in meters, pressure in hPa.
type Altitude struct {
	Altitude float64 `json:"altitude"`
	Pressure float64 `json:"pressure"`
	TS       int64   `json:"ts"`
}

// Location is one GPS fix. Speed is horizontal ground speed in m/s.
type Location struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Altitude float64 `json:"altitude"`
	Speed    float64 `json:"speed"`
	TS       int64   `json:"ts"`
}

// Provider is the device sensor capability. Each read is independent and
// may fail on its own (no fix yet, hardware missing); a failed read never
// implies anything about the other two sources. Implementations are
// selected at startup and injected, never looked up globally.
type Provider interface {
	Acceleration(ctx context.Context) (Acceleration, error)
	AltitudeReading(ctx context.Context) (Altitude, error)
	Location(ctx context.Context) (Location, error)
}

// FusedSample is one fuse tick's snapshot: the most recent reading from
// each source, nil for a source that has never produced a value. Nil
// means "no update", not a zero reading.
type FusedSample struct {
	SessionID string        `json:"session_id"`
	Accel     *Acceleration `json:"accel,omitempty"`
	Baro      *Altitude     `json:"baro,omitempty"`
	Loc       *Location     `json:"loc,omitempty"`
}
