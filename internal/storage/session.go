package storage

import (
	"sync"
	"time"
)

type entry[V any] struct {
	session  V
	lastSeen time.Time
}

// SessionStorage keeps live quiz sessions in memory, keyed by chat, cookie or screen.
// Every access refreshes an entry's last-seen time; EvictIdle drops stale ones.
type SessionStorage[K comparable, V any] struct {
	mu       sync.Mutex
	sessions map[K]*entry[V]
	now      func() time.Time
}

// NewSessionStorage creates an empty SessionStorage.
func NewSessionStorage[K comparable, V any]() *SessionStorage[K, V] {
	return &SessionStorage[K, V]{
		sessions: make(map[K]*entry[V]),
		now:      time.Now,
	}
}

// Store saves the session for key, replacing any previous one.
func (s *SessionStorage[K, V]) Store(key K, session V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = &entry[V]{session: session, lastSeen: s.now()}
}

// Get retrieves the session for key.
func (s *SessionStorage[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.lastSeen = s.now()
	return e.session, true
}

// GetOrCreate returns the session for key, creating it with create when missing.
// created reports whether create was called.
func (s *SessionStorage[K, V]) GetOrCreate(key K, create func() V) (session V, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[key]; ok {
		e.lastSeen = s.now()
		return e.session, false
	}
	session = create()
	s.sessions[key] = &entry[V]{session: session, lastSeen: s.now()}
	return session, true
}

// Delete removes the session for key.
func (s *SessionStorage[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// EvictIdle removes the sessions last seen before cutoff and returns how many went.
func (s *SessionStorage[K, V]) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored sessions.
func (s *SessionStorage[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
