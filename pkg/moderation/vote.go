package moderation

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrVoteClosed is returned for presses on a session that already met quorum
var ErrVoteClosed = errors.New("vote session has already reached quorum")

// PressResult is the outcome of a single counter press
type PressResult struct {
	Tally   int
	Reached bool // session has met quorum
	Crossed bool // this press is the one that met it
}

// VoteSession tracks one quorum-gated session vote. The counter records
// presses, not distinct voters: repeated presses from the same member all
// count. Presser IDs are kept so deduplication can be added later.
type VoteSession struct {
	ID          string
	InitiatorID string
	Required    int

	mu       sync.Mutex
	tally    int
	reached  bool
	pressers []string
}

// Press records one press and invokes render while still holding the session
// lock, so the counter mutation and the rendered label stay in order. Exactly
// one press ever observes Crossed, regardless of interleaving. A press on a
// session that already met quorum returns ErrVoteClosed without rendering.
func (s *VoteSession) Press(presserID string, render func(PressResult) error) (PressResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reached {
		return PressResult{Tally: s.tally, Reached: true}, ErrVoteClosed
	}

	s.tally++
	s.pressers = append(s.pressers, presserID)

	res := PressResult{Tally: s.tally}
	if s.tally >= s.Required {
		s.reached = true
		res.Reached = true
		res.Crossed = true
	}

	if render != nil {
		if err := render(res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Tally returns the current press count
func (s *VoteSession) Tally() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

// Reached reports whether the session has met quorum
func (s *VoteSession) Reached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reached
}

// Pressers returns a copy of the recorded presser IDs in press order
func (s *VoteSession) Pressers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.pressers))
	copy(out, s.pressers)
	return out
}

// VoteManager owns the single active session. Beginning a new session
// supersedes the previous one; presses addressed to a superseded session are
// no longer resolvable and get ignored by the handler.
type VoteManager struct {
	mu      sync.Mutex
	current *VoteSession
}

// NewVoteManager creates an empty manager
func NewVoteManager() *VoteManager {
	return &VoteManager{}
}

// Begin starts a fresh session with a zero tally, replacing any prior one
func (m *VoteManager) Begin(initiatorID string, required int) *VoteSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = &VoteSession{
		ID:          uuid.New().String(),
		InitiatorID: initiatorID,
		Required:    required,
	}
	return m.current
}

// Get resolves a session by ID. Only the active session is reachable.
func (m *VoteManager) Get(id string) (*VoteSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.ID != id {
		return nil, false
	}
	return m.current, true
}
