// ABOUTME: In-memory session state for the onboarding wizard
// ABOUTME: Holds the transient enrichment candidate across wizard steps
package onboarding

import (
	"sync"

	"github.com/google/uuid"
)

// Profile is the wizard's working state: the enrichment candidate plus
// the step-2 answers. It lives only in the session and is discarded
// once the master profile contact is created or the flow is abandoned.
type Profile struct {
	Candidate
	Formation          string   `json:"formation"`
	Hobbies            []string `json:"hobbies"`
	SportDetails       string   `json:"sport_details"`
	StyleCommunication string   `json:"style_communication"`
	ObjectifsCRM       []string `json:"objectifs_crm"`
}

// Session is per-browser wizard state.
type Session struct {
	Profile        *Profile
	SkipOnboarding bool
}

// SessionStore keeps wizard sessions in memory, keyed by an opaque
// cookie token. State does not survive a restart, which is fine for a
// flow that is only ever run once.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// New creates a session and returns its token.
func (s *SessionStore) New() (string, *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	session := &Session{}
	s.sessions[token] = session
	return token, session
}

// Get returns the session for a token, or nil when unknown.
func (s *SessionStore) Get(token string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[token]
}

// Drop discards a session once the wizard completes.
func (s *SessionStore) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
