package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 90 * 24 * time.Hour

// Session ties a bearer token to a logged-in account. Sessions live in
// memory only; the system's model is one interactive session per process,
// so they intentionally do not survive a restart.
type Session struct {
	Token     string
	Username  string
	Role      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]Session)}
}

// Create issues a new session for the account.
func (s *SessionStore) Create(username, role string) Session {
	now := time.Now()
	sess := Session{
		Token:     uuid.NewString(),
		Username:  username,
		Role:      role,
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// GetByToken returns the live session for the token, or nil if unknown or
// expired. Expired sessions are removed on sight.
func (s *SessionStore) GetByToken(token string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return nil
	}
	return &sess
}

// Delete removes the session for the token, if any.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Cleanup removes expired sessions.
func (s *SessionStore) Cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
