package dataset

import (
	"fmt"
	"sync"

	store "github.com/de-tools/commerce-atlas/pkg/store/csv"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Session collects independently uploaded sources. A session with fewer
// than five sources is awaiting, which is a valid state, not an error; it
// only becomes loadable once every source is present. The content map is
// guarded by the session's own lock, so status reads stay safe against a
// concurrent attach.
type Session struct {
	ID string

	mu      sync.RWMutex
	content map[string][]byte
}

// Received lists the attached source names in conventional order.
func (s *Session) Received() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Filter(store.SourceNames, func(name string, _ int) bool {
		_, ok := s.content[name]
		return ok
	})
}

// Missing lists the source names still awaited, in conventional order.
func (s *Session) Missing() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.missingLocked()
}

func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.content) == len(store.SourceNames)
}

// missingLocked lists the awaited source names; the caller holds mu.
func (s *Session) missingLocked() []string {
	return lo.Filter(store.SourceNames, func(name string, _ int) bool {
		_, ok := s.content[name]
		return !ok
	})
}

// Provider returns an UploadedStreams provider over a copy of the session
// content. It fails while the session is still awaiting sources.
func (s *Session) Provider() (Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.content) != len(store.SourceNames) {
		return nil, fmt.Errorf("session %s is awaiting sources: %v", s.ID, s.missingLocked())
	}
	content := make(map[string][]byte, len(s.content))
	for name, data := range s.content {
		content[name] = data
	}
	return UploadedStreams{Content: content}, nil
}

func (s *Session) attach(source string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[source] = data
}

// SessionStore manages upload sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := &Session{
		ID:      uuid.NewString(),
		content: make(map[string][]byte),
	}
	st.sessions[s.ID] = s
	return s
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Attach stores one uploaded source on the session. Re-attaching a source
// replaces its previous content.
func (st *SessionStore) Attach(id, source string, data []byte) (*Session, error) {
	if !lo.Contains(store.SourceNames, source) {
		return nil, fmt.Errorf("unknown source %q, expected one of %v", source, store.SourceNames)
	}

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown upload session %q", id)
	}

	s.attach(source, data)
	return s, nil
}

// Drop removes a session once its content has been activated or abandoned.
func (st *SessionStore) Drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
