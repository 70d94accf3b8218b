package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"usermgmt/internal/app/usersync"
	"usermgmt/internal/cache"
	"usermgmt/internal/logging"
)

// Session is the UI state of one browser session.
type Session struct {
	ID    string         `json:"-"`
	State usersync.State `json:"state"`
	Form  usersync.Form  `json:"form"`
}

func newSession(id string) *Session {
	return &Session{
		ID:    id,
		State: usersync.NewState(),
		Form:  usersync.NewForm(nil),
	}
}

// Sessions maps the session cookie to state kept in a SessionCache.
type Sessions struct {
	cache      cache.SessionCache
	cookieName string
	ttl        time.Duration
	logger     logging.Logger
}

func NewSessions(c cache.SessionCache, cookieName string, ttl time.Duration, logger logging.Logger) *Sessions {
	return &Sessions{
		cache:      c,
		cookieName: cookieName,
		ttl:        ttl,
		logger:     logger.With("component", "web_sessions"),
	}
}

// Load returns the caller's session, starting a new one (and setting the
// cookie) when there is none or it cannot be read.
func (s *Sessions) Load(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		data, err := s.cache.Get(r.Context(), c.Value)
		switch {
		case err != nil:
			s.logger.Error("failed to read session", "error", err)
		case data != nil:
			sess := newSession(c.Value)
			if err := json.Unmarshal(data, sess); err == nil {
				return sess
			}
			s.logger.Error("discarding unreadable session", "error", err)
		}
	}

	sess := newSession(uuid.NewString())
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Sessions) Save(ctx context.Context, sess *Session) {
	data, err := json.Marshal(sess)
	if err != nil {
		s.logger.Error("failed to marshal session", "error", err)
		return
	}
	if err := s.cache.Set(ctx, sess.ID, data, s.ttl); err != nil {
		s.logger.Error("failed to save session", "error", err)
	}
}
