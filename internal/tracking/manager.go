package tracking

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"backend-topout/internal/sensors"
	"backend-topout/internal/sessions"
)

// SessionStore is the slice of the session DAO the manager needs.
type SessionStore interface {
	Create(ctx context.Context, userID, title string) (sessions.Session, error)
	ByID(ctx context.Context, id string) (sessions.Session, error)
	Delete(ctx context.Context, id string) error
	UpdateSummary(ctx context.Context, id string, summary sessions.Summary) error
	MarkCreatedOffline(ctx context.Context, id string) error
}

// PointReader is the slice of the track point DAO the manager needs
// beyond writing.
type PointReader interface {
	PointWriter
	BySession(ctx context.Context, sessionID string) ([]TrackPoint, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// RemoteStore is the slice of the remote backend used when finishing a
// session.
type RemoteStore interface {
	SaveSession(ctx context.Context, session sessions.Session) (sessions.Session, error)
	PushTrackPoints(ctx context.Context, sessionID string, points []TrackPoint) error
}

// ThresholdSource supplies the user's configured alert thresholds.
type ThresholdSource interface {
	Thresholds(ctx context.Context) (Thresholds, error)
}

var (
	ErrSessionActive = errors.New("a session is already being tracked")
	ErrNoSession     = errors.New("no active session")
)

// Manager orchestrates the live session lifecycle: one aggregator and
// one tracker per active session, at most one active session at a time.
type Manager struct {
	store      SessionStore
	points     PointReader
	remote     RemoteStore
	provider   sensors.Provider
	hub        Broadcaster
	thresholds ThresholdSource
	intervals  sensors.Intervals
	userID     string

	mu     sync.Mutex
	active *liveSession
}

type liveSession struct {
	id      string
	agg     *sensors.Aggregator
	tracker *Tracker
	cancel  context.CancelFunc
}

func NewManager(store SessionStore, points PointReader, remote RemoteStore, provider sensors.Provider,
	hub Broadcaster, thresholds ThresholdSource, intervals sensors.Intervals, userID string) *Manager {
	return &Manager{
		store:      store,
		points:     points,
		remote:     remote,
		provider:   provider,
		hub:        hub,
		thresholds: thresholds,
		intervals:  intervals,
		userID:     userID,
	}
}

// Start creates the session row, then brings up the aggregator and
// tracker bound to its id. Row creation failure is fatal: without an id
// there is nothing to track.
func (m *Manager) Start(ctx context.Context, title string) (sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return sessions.Session{}, ErrSessionActive
	}

	session, err := m.store.Create(ctx, m.userID, title)
	if err != nil {
		return sessions.Session{}, err
	}

	th := DefaultThresholds()
	if m.thresholds != nil {
		if loaded, err := m.thresholds.Thresholds(ctx); err != nil {
			log.Printf("threshold lookup failed, using defaults: %v", err)
		} else {
			th = loaded
		}
	}

	// loops outlive the start request; they stop via Cancel/Finish
	runCtx, cancel := context.WithCancel(context.Background())

	agg := sensors.NewAggregator(m.provider, m.intervals)
	tracker := NewTracker(session.ID, m.points, m.hub, th)

	samples := agg.Start(runCtx, session.ID)
	go tracker.Run(runCtx, samples)

	m.active = &liveSession{id: session.ID, agg: agg, tracker: tracker, cancel: cancel}
	return session, nil
}

// Pause is a safe no-op when no session is active.
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.tracker.Pause()
	}
}

// Resume is a safe no-op when no session is active.
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.tracker.Resume()
	}
}

// Latest returns the current metrics snapshot for the active session.
func (m *Manager) Latest() (string, Metrics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return "", Metrics{}, false
	}
	return m.active.id, m.active.tracker.Latest(), true
}

// Cancel discards the active session: all of its track points and its
// row are hard-deleted locally and the remote is never told anything.
func (m *Manager) Cancel(ctx context.Context) error {
	m.mu.Lock()
	live := m.active
	m.active = nil
	m.mu.Unlock()

	if live == nil {
		return ErrNoSession
	}
	m.teardown(live)

	if err := m.points.DeleteBySession(ctx, live.id); err != nil {
		return err
	}
	return m.store.Delete(ctx, live.id)
}

// Finish stops tracking, computes the summary from the persisted
// points, and attempts the remote push. Remote failure never loses
// data: the session is flagged created_offline and the points stay
// local for the sync engine. The local result is returned either way.
func (m *Manager) Finish(ctx context.Context) (sessions.Session, []TrackPoint, error) {
	m.mu.Lock()
	live := m.active
	m.active = nil
	m.mu.Unlock()

	if live == nil {
		return sessions.Session{}, nil, ErrNoSession
	}
	m.teardown(live)

	points, err := m.points.BySession(ctx, live.id)
	if err != nil {
		return sessions.Session{}, nil, err
	}

	summary := Summarize(points)
	summary.EndTime = time.Now()
	if err := m.store.UpdateSummary(ctx, live.id, summary); err != nil {
		return sessions.Session{}, nil, err
	}

	session, err := m.store.ByID(ctx, live.id)
	if err != nil {
		return sessions.Session{}, nil, err
	}

	if err := m.pushFinished(ctx, session, points); err != nil {
		log.Printf("remote push failed for session %s, deferring to sync: %v", live.id, err)
		if err := m.store.MarkCreatedOffline(ctx, live.id); err != nil {
			return sessions.Session{}, nil, err
		}
		session.CreatedOffline = true
	}

	return session, points, nil
}

func (m *Manager) pushFinished(ctx context.Context, session sessions.Session, points []TrackPoint) error {
	if m.remote == nil {
		return errors.New("no remote store configured")
	}
	if _, err := m.remote.SaveSession(ctx, session); err != nil {
		return err
	}
	if err := m.remote.PushTrackPoints(ctx, session.ID, points); err != nil {
		return err
	}
	// points are durable remotely, drop the local copies
	return m.points.DeleteBySession(ctx, session.ID)
}

func (m *Manager) teardown(live *liveSession) {
	live.agg.Stop()
	live.tracker.Stop()
	live.cancel()
}

// Summarize folds a point series into the session's final statistics.
func Summarize(points []TrackPoint) sessions.Summary {
	var s sessions.Summary

	var lastAlt *float64
	altSeen := false
	avgSum := 0.0

	for _, p := range points {
		if p.Danger {
			s.AlertTriggered = true
		}
		avgSum += p.AvgVerticalSpeed

		if p.Altitude == nil {
			continue
		}
		alt := *p.Altitude
		if !altSeen || alt > s.MaxAltitude {
			s.MaxAltitude = alt
		}
		if !altSeen || alt < s.MinAltitude {
			s.MinAltitude = alt
		}
		altSeen = true

		if lastAlt != nil {
			delta := alt - *lastAlt
			if delta > 0 {
				s.TotalAscent += delta
			} else {
				s.TotalDescent += -delta
			}
		}
		v := alt
		lastAlt = &v
	}

	if len(points) > 0 {
		s.AvgRate = avgSum / float64(len(points))
	}
	return s
}
