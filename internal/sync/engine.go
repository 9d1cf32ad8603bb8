package sync

import (
	"context"
	"log"

	"backend-topout/internal/remote"
	"backend-topout/internal/sessions"
	"backend-topout/internal/tracking"
	"backend-topout/internal/users"
)

// Result is the informational outcome of one sync pass. Failures are
// data here, never errors: the caller only uses this to tell the user
// what happened.
type Result struct {
	SessionsCreated int  `json:"sessions_created"`
	SessionsUpdated int  `json:"sessions_updated"`
	SessionsDeleted int  `json:"sessions_deleted"`
	SessionsFailed  int  `json:"sessions_failed"`
	UserUpdated     bool `json:"user_updated"`
	UserFailed      bool `json:"user_failed"`
	Changed         bool `json:"changed"`
}

// SessionStore is the slice of the session DAO the engine needs.
type SessionStore interface {
	ForSync(ctx context.Context) ([]sessions.Session, error)
	Save(ctx context.Context, session sessions.Session) error
	Delete(ctx context.Context, id string) error
	ResolveSync(ctx context.Context, id string, flag sessions.SyncFlag) error
}

// PointStore is the slice of the track point DAO the engine needs.
type PointStore interface {
	BySession(ctx context.Context, sessionID string) ([]tracking.TrackPoint, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// UserStore is the slice of the user DAO the engine needs.
type UserStore interface {
	Get(ctx context.Context) (users.User, error)
	MarkSynced(ctx context.Context, id string) error
}

// Engine reconciles local offline changes with the remote store. It is
// retry-by-re-invocation: no backoff lives here, connectivity events
// drive it from outside. Safe to call repeatedly; already-clean records
// are untouched.
type Engine struct {
	sessions SessionStore
	points   PointStore
	users    UserStore
	remote   remote.Store
}

func NewEngine(sessionStore SessionStore, pointStore PointStore, userStore UserStore, remoteStore remote.Store) *Engine {
	return &Engine{
		sessions: sessionStore,
		points:   pointStore,
		users:    userStore,
		remote:   remoteStore,
	}
}

// Run pushes every dirty record once. Each record is handled in
// isolation: one failure never aborts the rest, it is only counted.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	var res Result

	e.syncUser(ctx, &res)

	dirty, err := e.sessions.ForSync(ctx)
	if err != nil {
		return res, err
	}

	for _, session := range dirty {
		// first-match order: a session is processed under exactly
		// one branch per pass
		switch {
		case session.CreatedOffline:
			if e.syncCreated(ctx, session) {
				res.SessionsCreated++
			} else {
				res.SessionsFailed++
			}
		case session.UpdatedOffline:
			if e.syncUpdated(ctx, session) {
				res.SessionsUpdated++
			} else {
				res.SessionsFailed++
			}
		case session.DeletedOffline:
			if e.syncDeleted(ctx, session) {
				res.SessionsDeleted++
			} else {
				res.SessionsFailed++
			}
		}
	}

	res.Changed = res.SessionsCreated+res.SessionsUpdated+res.SessionsDeleted > 0 || res.UserUpdated
	return res, nil
}

func (e *Engine) syncUser(ctx context.Context, res *Result) {
	user, err := e.users.Get(ctx)
	if err != nil {
		log.Printf("sync: user load failed: %v", err)
		res.UserFailed = true
		return
	}
	if !user.UpdatedOffline {
		return
	}

	if err := e.remote.UpdateUser(ctx, user); err != nil {
		log.Printf("sync: user push failed: %v", err)
		res.UserFailed = true
		return
	}
	if err := e.users.MarkSynced(ctx, user.ID); err != nil {
		log.Printf("sync: user flag clear failed: %v", err)
		res.UserFailed = true
		return
	}
	res.UserUpdated = true
}

// syncCreated pushes a session the remote has never seen, then its
// points. The created_offline flag is cleared only after the points are
// confirmed remote and purged locally; any earlier failure leaves the
// flag and the points untouched for the next pass.
func (e *Engine) syncCreated(ctx context.Context, session sessions.Session) bool {
	canonical, err := e.remote.SaveSession(ctx, session)
	if err != nil {
		log.Printf("sync: session %s create push failed: %v", session.ID, err)
		return false
	}

	// remote may canonicalize fields; keep local identity and flags
	canonical.ID = session.ID
	canonical.CreatedOffline = session.CreatedOffline
	canonical.UpdatedOffline = session.UpdatedOffline
	canonical.DeletedOffline = session.DeletedOffline
	if err := e.sessions.Save(ctx, canonical); err != nil {
		log.Printf("sync: session %s canonical save failed: %v", session.ID, err)
		return false
	}

	points, err := e.points.BySession(ctx, session.ID)
	if err != nil {
		log.Printf("sync: session %s point load failed: %v", session.ID, err)
		return false
	}
	if err := e.remote.PushTrackPoints(ctx, session.ID, points); err != nil {
		log.Printf("sync: session %s point push failed: %v", session.ID, err)
		return false
	}
	if err := e.points.DeleteBySession(ctx, session.ID); err != nil {
		log.Printf("sync: session %s point purge failed: %v", session.ID, err)
		return false
	}

	if err := e.sessions.ResolveSync(ctx, session.ID, sessions.FlagCreated); err != nil {
		log.Printf("sync: session %s flag clear failed: %v", session.ID, err)
		return false
	}
	return true
}

func (e *Engine) syncUpdated(ctx context.Context, session sessions.Session) bool {
	if err := e.remote.UpdateSession(ctx, session); err != nil {
		log.Printf("sync: session %s update push failed: %v", session.ID, err)
		return false
	}
	if err := e.sessions.ResolveSync(ctx, session.ID, sessions.FlagUpdated); err != nil {
		log.Printf("sync: session %s flag clear failed: %v", session.ID, err)
		return false
	}
	return true
}

// syncDeleted confirms remote deletion before the row is physically
// removed locally.
func (e *Engine) syncDeleted(ctx context.Context, session sessions.Session) bool {
	if err := e.remote.DeleteSession(ctx, session.ID); err != nil {
		log.Printf("sync: session %s delete push failed: %v", session.ID, err)
		return false
	}
	if err := e.sessions.Delete(ctx, session.ID); err != nil {
		log.Printf("sync: session %s local delete failed: %v", session.ID, err)
		return false
	}
	return true
}
