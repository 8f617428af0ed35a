package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/ava/internal/chat"
)

// defaultSessionIdle is how long a conversation survives without a new
// message before its memory is dropped.
const defaultSessionIdle = 30 * time.Minute

type session struct {
	dispatcher *chat.Dispatcher
	lastSeen   time.Time
}

// sessionStore hands out per-conversation dispatchers keyed by session
// id. Each session has isolated memory; the underlying clients and
// caches are shared.
type sessionStore struct {
	mu      sync.Mutex
	root    *chat.Dispatcher
	entries map[string]*session
	maxIdle time.Duration
	now     func() time.Time // injectable clock for testing
}

func newSessionStore(root *chat.Dispatcher, maxIdle time.Duration) *sessionStore {
	return &sessionStore{
		root:    root,
		entries: make(map[string]*session),
		maxIdle: maxIdle,
		now:     time.Now,
	}
}

// acquire returns the dispatcher for id, creating a fresh session when
// id is empty or unknown. The returned id identifies the session.
func (s *sessionStore) acquire(id string) (*chat.Dispatcher, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()

	if id != "" {
		if entry, ok := s.entries[id]; ok {
			entry.lastSeen = s.now()
			return entry.dispatcher, id
		}
	}

	if id == "" {
		id = uuid.New().String()
	}
	entry := &session{dispatcher: s.root.NewSession(), lastSeen: s.now()}
	s.entries[id] = entry
	return entry.dispatcher, id
}

// reset clears the conversation memory of a session. Returns false when
// the session does not exist.
func (s *sessionStore) reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return false
	}
	entry.dispatcher.Memory().Reset()
	entry.lastSeen = s.now()
	return true
}

// count returns the number of live sessions.
func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	return len(s.entries)
}

func (s *sessionStore) pruneLocked() {
	cutoff := s.now().Add(-s.maxIdle)
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
