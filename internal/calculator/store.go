package calculator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"deskcalc/internal/session"
)

// Session pairs one controller with its display recorder. The engine and
// controller assume a single caller, so every dispatch and snapshot runs
// under the session mutex; that is the external synchronization the core
// requires when exposed to concurrent HTTP clients.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu   sync.Mutex
	ctrl *session.Controller
	view *session.Recorder
}

// Snapshot is a consistent copy of the session's presentation state.
type Snapshot struct {
	Display      string
	Preview      string
	MemorySet    bool
	ErrorLatched bool
	History      []string
}

func newSession() *Session {
	view := session.NewRecorder()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		ctrl:      session.New(view),
		view:      view,
	}
}

// Press dispatches one command and returns the resulting snapshot, plus
// whether this press tripped the error latch.
func (s *Session) Press(cmd string) (snap Snapshot, latched bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	was := s.ctrl.ErrorLatched()
	s.ctrl.Handle(cmd)
	return s.snapshotLocked(), s.ctrl.ErrorLatched() && !was
}

// State returns the current snapshot without dispatching anything.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Display:      s.view.DisplayText(),
		Preview:      s.view.PreviewText(),
		MemorySet:    s.view.MemoryIndicator(),
		ErrorLatched: s.ctrl.ErrorLatched(),
		History:      s.view.History(),
	}
}

// Store holds the live sessions, keyed by ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers and returns a fresh session.
func (st *Store) Create() *Session {
	s := newSession()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes the session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
