package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"wardwatch/internal/model"
)

type sessionEntry struct {
	session model.Session
	expires time.Time
}

// Registry maps opaque tokens to Session values so an authenticated session
// survives dashboard refreshes without re-prompting. State is exclusive to
// this process; there is no cross-instance sharing.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]sessionEntry
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]sessionEntry),
	}
}

// Create stores the session and returns its token. Only authenticated
// sessions are worth registering; callers pass the result of Login.
func (r *Registry) Create(s model.Session) string {
	token := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked(time.Now())
	r.sessions[token] = sessionEntry{session: s, expires: time.Now().Add(r.ttl)}
	return token
}

func (r *Registry) Get(token string) (model.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[token]
	if !ok {
		return model.Session{}, false
	}
	if time.Now().After(entry.expires) {
		delete(r.sessions, token)
		return model.Session{}, false
	}
	return entry.session, true
}

// Delete invalidates the token immediately; a dashboard pass in flight for
// that context fails the guard on its next check.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) purgeLocked(now time.Time) {
	for token, entry := range r.sessions {
		if now.After(entry.expires) {
			delete(r.sessions, token)
		}
	}
}
