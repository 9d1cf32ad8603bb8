package tracking

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	"backend-topout/internal/sensors"
)

// PointWriter appends one track point. Satisfied by *PointStore.
type PointWriter interface {
	Insert(ctx context.Context, point TrackPoint) (int64, error)
}

// Broadcaster fans a live payload out to session subscribers.
// Satisfied by *stream.Hub.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}

// Tracker turns the aggregator's fused-sample stream into persisted
// track points with alerting. One instance per session; it exclusively
// owns the running accumulators, and a new session always gets a fresh
// instance. Samples are processed strictly in arrival order.
type Tracker struct {
	sessionID  string
	points     PointWriter
	hub        Broadcaster
	thresholds Thresholds

	mu            sync.Mutex
	paused        bool
	startAltitude *float64
	lastAltitude  *float64
	gain          float64
	loss          float64
	sumAbsVert    float64
	sampleCount   int64
	latest        Metrics

	errs     chan error
	running  bool
	stopOnce sync.Once
	doneOnce sync.Once
	stopped  chan struct{}
	done     chan struct{}
}

func NewTracker(sessionID string, points PointWriter, hub Broadcaster, thresholds Thresholds) *Tracker {
	return &Tracker{
		sessionID:  sessionID,
		points:     points,
		hub:        hub,
		thresholds: thresholds,
		errs:       make(chan error, 8),
		stopped:    make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run consumes samples until the channel closes or Stop is called.
// Intended to run on its own goroutine.
func (t *Tracker) Run(ctx context.Context, samples <-chan sensors.FusedSample) {
	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	defer t.doneOnce.Do(func() { close(t.done) })
	for {
		select {
		case <-t.stopped:
			return
		case <-ctx.Done():
			return
		case sample, ok := <-samples:
			if !ok {
				return
			}
			t.Process(ctx, sample)
		}
	}
}

// Process runs the per-sample algorithm once. It returns the persisted
// point, or nil when the tracker is paused or the write failed.
func (t *Tracker) Process(ctx context.Context, sample sensors.FusedSample) *TrackPoint {
	t.mu.Lock()
	if t.paused {
		t.mu.Unlock()
		return nil
	}

	altitude := resolveAltitude(sample)

	// one-time latch on the first altitude-bearing sample
	if t.startAltitude == nil && altitude != nil {
		v := *altitude
		t.startAltitude = &v
	}

	verticalSpeed := 0.0
	if t.lastAltitude != nil && altitude != nil {
		verticalSpeed = RatePerMinute(*t.lastAltitude, *altitude)
	}

	horizontalSpeed := 0.0
	if sample.Loc != nil {
		horizontalSpeed = sample.Loc.Speed
	}
	totalSpeed := math.Sqrt(verticalSpeed*verticalSpeed + horizontalSpeed*horizontalSpeed)

	if t.lastAltitude != nil && altitude != nil {
		delta := *altitude - *t.lastAltitude
		if delta > 0 {
			t.gain += delta
		} else {
			t.loss += -delta
		}
	}

	t.sumAbsVert += math.Abs(verticalSpeed)
	t.sampleCount++
	avgVerticalSpeed := t.sumAbsVert / float64(t.sampleCount)

	// sticky: keeps its value across ticks without an altitude
	if altitude != nil {
		v := *altitude
		t.lastAltitude = &v
	}

	relAltitude := 0.0
	if altitude != nil && t.startAltitude != nil {
		relAltitude = *altitude - *t.startAltitude
	}

	danger, alert := EvaluateAlert(t.thresholds, avgVerticalSpeed, relAltitude, altitude)

	metrics := Metrics{
		VerticalSpeed:    verticalSpeed,
		HorizontalSpeed:  horizontalSpeed,
		TotalSpeed:       totalSpeed,
		Gain:             t.gain,
		Loss:             t.loss,
		RelAltitude:      relAltitude,
		AvgVerticalSpeed: avgVerticalSpeed,
		Danger:           danger,
		AlertType:        alert,
	}
	t.latest = metrics
	t.mu.Unlock()

	point := TrackPoint{
		SessionID: t.sessionID,
		TSMillis:  time.Now().UnixMilli(),
		Altitude:  altitude,
		Metrics:   metrics,
	}
	if sample.Loc != nil {
		point.Lat = &sample.Loc.Lat
		point.Lon = &sample.Loc.Lon
	}
	if sample.Accel != nil {
		point.AccelX = &sample.Accel.X
		point.AccelY = &sample.Accel.Y
		point.AccelZ = &sample.Accel.Z
	}

	id, err := t.points.Insert(ctx, point)
	if err != nil {
		log.Printf("track point insert failed for session %s: %v", t.sessionID, err)
		select {
		case t.errs <- err:
		default:
		}
		return nil
	}
	point.ID = id

	if t.hub != nil {
		payload, _ := json.Marshal(point)
		t.hub.Broadcast(t.sessionID, payload)
	}

	return &point
}

// Pause discards incoming samples without touching any state. Upstream
// polling keeps running.
func (t *Tracker) Pause() {
	t.mu.Lock()
	t.paused = true
	t.mu.Unlock()
}

// Resume continues from the exact prior state; no re-basing.
func (t *Tracker) Resume() {
	t.mu.Lock()
	t.paused = false
	t.mu.Unlock()
}

// Stop ends sample consumption. Idempotent; after it returns no further
// track points are written by this instance.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopped)
	})
	t.mu.Lock()
	running := t.running
	t.mu.Unlock()
	if running {
		<-t.done
	}
}

// Latest returns the most recently computed metrics snapshot.
func (t *Tracker) Latest() Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}

// Errors surfaces persistence failures from the consume loop.
func (t *Tracker) Errors() <-chan error {
	return t.errs
}

// resolveAltitude prefers the GPS altitude over the barometric one.
func resolveAltitude(sample sensors.FusedSample) *float64 {
	if sample.Loc != nil {
		v := sample.Loc.Altitude
		return &v
	}
	if sample.Baro != nil {
		v := sample.Baro.Altitude
		return &v
	}
	return nil
}
