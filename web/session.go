package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionCookieName = "workhours_session"

type session struct {
	admin   bool
	expires time.Time
}

// sessionStore keeps server-side sessions in memory, keyed by an opaque
// random token carried in a cookie.
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]session
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]session),
	}
}

func (s *sessionStore) create(admin bool) (string, time.Time) {
	token := uuid.NewString()
	expires := s.now().Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[token] = session{admin: admin, expires: expires}
	return token, expires
}

func (s *sessionStore) lookup(token string) (session, bool) {
	if token == "" {
		return session{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[token]
	if !ok {
		return session{}, false
	}
	if !s.now().Before(current.expires) {
		delete(s.sessions, token)
		return session{}, false
	}
	return current, true
}

func (s *sessionStore) destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *sessionStore) pruneLocked() {
	now := s.now()
	for token, current := range s.sessions {
		if !now.Before(current.expires) {
			delete(s.sessions, token)
		}
	}
}

type contextKey int

const (
	adminContextKey contextKey = iota
	requestIDContextKey
)

// WithAdmin returns a context that marks the request as made by an admin.
func WithAdmin(ctx context.Context, admin bool) context.Context {
	return context.WithValue(ctx, adminContextKey, admin)
}

// IsAdmin reports whether the request context carries an admin session.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminContextKey).(bool)
	return admin
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
