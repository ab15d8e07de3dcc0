package services

import (
	"sync"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
)

type Status int

const (
	StatusInitializing Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Status   Status
	Token    string
	Identity *models.Identity
	Loading  bool
	Err      string
}

// State is the in-memory session shared with the view layer. Readers use the
// exported accessors; only AuthService mutates it.
type State struct {
	mu       sync.RWMutex
	status   Status
	token    string
	identity *models.Identity
	loading  bool
	err      string
}

// NewState returns a state in Initializing with the loading flag set.
func NewState() *State {
	return &State{status: StatusInitializing, loading: true}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Status:   s.status,
		Token:    s.token,
		Identity: s.identity.Clone(),
		Loading:  s.loading,
		Err:      s.err,
	}
}

func (s *State) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *State) IsAuthenticated() bool {
	return s.Status() == StatusAuthenticated
}

// Identity returns a copy of the current identity, nil when logged out.
func (s *State) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Clone()
}

func (s *State) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *State) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *State) setErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *State) authenticate(token string, identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusAuthenticated
	s.token = token
	s.identity = identity.Clone()
	s.err = ""
}

// reset drops token and identity. The last error is left alone.
func (s *State) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusUnauthenticated
	s.token = ""
	s.identity = nil
}
