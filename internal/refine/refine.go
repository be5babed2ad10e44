// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refine applies free-text edit instructions to a drafted email by
// replaying the whole conversation transcript to the generation service.
package refine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pdiddy/ir-outreach/internal/llm"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

// Instruction wraps a user's edit request as the next user turn. The reply
// is plain email text; the JSON contract does not apply to refinements.
func Instruction(instruction string) string {
	return "Revise the email based on this instruction: " + instruction +
		"\n\nReturn ONLY the complete revised email (including Subject: line). No JSON, no explanation."
}

// Outcome is the result of one refinement.
type Outcome struct {
	EmailText  string           `json:"emailText" yaml:"emailText"`
	Transcript types.Transcript `json:"updatedTranscript" yaml:"updatedTranscript"`
}

// Refine revises the last draft in transcript according to instruction.
//
// When currentDraft is non-empty and differs from the last turn (ignoring
// surrounding whitespace and line-ending style), the last turn is first
// replaced with currentDraft so the model edits what the user sees. The
// instruction turn and the trimmed reply are then appended, growing the
// transcript by two.
//
// The input slice is never modified. On a generation failure the returned
// Outcome carries the reconciled transcript with no turns appended, along
// with a *types.GenerationError. Invalid input yields a
// *types.ValidationError before any call is made.
func Refine(ctx context.Context, client llm.Client, transcript types.Transcript, instruction, currentDraft string, maxTokens int) (Outcome, error) {
	if err := transcript.Validate(); err != nil {
		return Outcome{}, err
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return Outcome{}, &types.ValidationError{Field: "instruction", Reason: "must not be empty"}
	}

	reconciled := Reconcile(transcript, currentDraft)

	msgs := append(reconciled.Clone(), types.Turn{Role: types.RoleUser, Content: Instruction(instruction)})
	reply, err := client.Complete(ctx, llm.Request{Messages: msgs, MaxTokens: maxTokens})
	if err != nil {
		return Outcome{Transcript: reconciled}, &types.GenerationError{Op: "refine", Err: err}
	}

	revised := strings.TrimSpace(reply)
	return Outcome{
		EmailText:  revised,
		Transcript: append(msgs, types.Turn{Role: types.RoleAssistant, Content: revised}),
	}, nil
}

// Reconcile returns a copy of transcript whose last turn is currentDraft
// when the two differ. An empty currentDraft, or one equal to the last turn
// after trimming and CRLF normalisation, leaves the copy unchanged.
func Reconcile(transcript types.Transcript, currentDraft string) types.Transcript {
	out := transcript.Clone()
	if len(out) == 0 || strings.TrimSpace(currentDraft) == "" {
		return out
	}
	last := &out[len(out)-1]
	if normalize(last.Content) != normalize(currentDraft) {
		last.Content = currentDraft
	}
	return out
}

func normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// State is the lifecycle of a Session.
type State int

const (
	// Initial has no transcript.
	Initial State = iota
	// Active holds a refinable transcript.
	Active
	// Refining has a call in flight.
	Refining
)

func (s State) String() string {
	switch s {
	case Initial:
		return "initial"
	case Active:
		return "active"
	case Refining:
		return "refining"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrRefineInProgress is returned when a refinement is requested while
	// another is in flight on the same session.
	ErrRefineInProgress = errors.New("a refinement is already in progress")

	// ErrNoTranscript is returned when Refine is called before Start.
	ErrNoTranscript = errors.New("session has no transcript")
)

// Session owns one transcript and serializes its refinements.
type Session struct {
	client    llm.Client
	maxTokens int

	mu         sync.Mutex
	state      State
	transcript types.Transcript
}

// NewSession returns a session in the Initial state.
func NewSession(client llm.Client, maxTokens int) *Session {
	return &Session{client: client, maxTokens: maxTokens}
}

// Start loads transcript and moves the session to Active.
func (s *Session) Start(transcript types.Transcript) error {
	if err := transcript.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Refining {
		return ErrRefineInProgress
	}
	s.transcript = transcript.Clone()
	s.state = Active
	return nil
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the current transcript.
func (s *Session) Transcript() types.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Clone()
}

// Refine applies instruction to the session's transcript. The session
// returns to Active whether or not the call succeeds; on failure it keeps
// the reconciled transcript.
func (s *Session) Refine(ctx context.Context, instruction, currentDraft string) (string, error) {
	s.mu.Lock()
	switch s.state {
	case Initial:
		s.mu.Unlock()
		return "", ErrNoTranscript
	case Refining:
		s.mu.Unlock()
		return "", ErrRefineInProgress
	}
	s.state = Refining
	transcript := s.transcript.Clone()
	s.mu.Unlock()

	out, err := Refine(ctx, s.client, transcript, instruction, currentDraft, s.maxTokens)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Active
	if out.Transcript != nil {
		s.transcript = out.Transcript
	}
	return out.EmailText, err
}
