package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State of a résumé analysis session.
type State string

// Session states.
const (
	StateIdle        State = "idle"
	StateExtracting  State = "extracting"
	StateResolving   State = "resolving"
	StateAggregating State = "aggregating"
	StateReady       State = "ready"
	StateEmpty       State = "empty"
	StateFailed      State = "failed"
)

var stateTransitions = map[State][]State{
	StateIdle:        {StateExtracting},
	StateExtracting:  {StateResolving, StateEmpty, StateFailed},
	StateResolving:   {StateAggregating, StateEmpty, StateFailed},
	StateAggregating: {StateReady, StateFailed},
	StateReady:       {StateAggregating},
	StateFailed:      {StateAggregating},
}

// CanTransition tells if session may move from s to next.
func (s State) CanTransition(next State) bool {
	for _, st := range stateTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// Final tells if no work is pending in this state.
func (s State) Final() bool {
	switch s {
	case StateReady, StateEmpty, StateFailed:
		return true
	}
	return false
}

// NoLinksMessage is reported for documents without any github link.
const NoLinksMessage = "No GitHub links found in resume"

// Progress of document parsing.
type Progress struct {
	Pages      int `json:"pages"`
	TotalPages int `json:"total_pages"`
}

// Session is the state of one uploaded résumé.
type Session struct {
	ID           string    `json:"id"`
	State        State     `json:"state"`
	DocumentName string    `json:"document_name,omitempty"`
	Progress     Progress  `json:"progress"`
	Links        []string  `json:"links"`
	Usernames    []string  `json:"usernames"`
	Report       *Report   `json:"report,omitempty"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSession creates session in idle state.
func NewSession(documentName string, now time.Time) *Session {
	return &Session{
		ID:           uuid.NewString(),
		State:        StateIdle,
		DocumentName: documentName,
		Links:        []string{},
		Usernames:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Transition moves session to next state. Returns error for transitions not allowed by state machine.
func (s *Session) Transition(next State, now time.Time) error {
	if !s.State.CanTransition(next) {
		return fmt.Errorf("invalid session state transition %s -> %s", s.State, next)
	}
	s.State = next
	s.UpdatedAt = now

	return nil
}
