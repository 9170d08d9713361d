package mem

import (
	"sync"
	"time"
)

// Session is the server-held snapshot of a logged-in principal. For the
// superuser there is no backing account row, so the session itself is the
// system of record; for stored users it is a display cache that is only
// re-synced by a fresh login.
type Session struct {
	ID        string
	AccountID string // empty for the superuser
	Username  string
	Role      string
	Email     string
	Phone     string
	Address   string
	Photo     string // stored filename, "" = none
	LoggedIn  bool
	Superuser bool
}

type SessionStore interface {
	Put(s *Session, ttl time.Duration)

	// Get returns a copy of the session if present and not expired.
	Get(id string) (*Session, bool)

	// Update applies fn to the stored session under the store lock.
	Update(id string, fn func(*Session)) bool

	Delete(id string)
}

type sessionEntry struct {
	session   Session
	expiresAt time.Time
}

type Sessions struct {
	mu   sync.RWMutex
	data map[string]sessionEntry
}

func NewSessions() *Sessions {
	return &Sessions{
		data: make(map[string]sessionEntry),
	}
}

func (s *Sessions) Put(sess *Session, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.ID] = sessionEntry{
		session:   *sess,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	copied := e.session
	return &copied, true
}

func (s *Sessions) Update(id string, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return false
	}
	fn(&e.session)
	s.data[id] = e
	return true
}

func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}
