// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Role identifies the speaker of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation with the generation service.
type Turn struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Transcript is the ordered exchange between the caller and the generation
// service. It starts with the assembled prompt and the first draft and is
// replayed in full on every refinement.
type Transcript []Turn

// NewTranscript seeds a transcript from the prompt that produced an email
// and the email itself.
func NewTranscript(prompt, email string) Transcript {
	return Transcript{
		{Role: RoleUser, Content: prompt},
		{Role: RoleAssistant, Content: email},
	}
}

// Validate reports whether the transcript can be refined: it needs at
// least two turns, known roles, and must end with an assistant turn.
func (t Transcript) Validate() error {
	if len(t) < 2 {
		return &ValidationError{Field: "transcript", Reason: "must contain at least 2 turns"}
	}
	for i, turn := range t {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return &ValidationError{Field: "transcript", Reason: fmt.Sprintf("turn %d has unknown role %q", i, turn.Role)}
		}
	}
	if t[len(t)-1].Role != RoleAssistant {
		return &ValidationError{Field: "transcript", Reason: "must end with an assistant turn"}
	}
	return nil
}

// Clone returns a copy that shares no backing array with t.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Last returns the final turn. It panics on an empty transcript.
func (t Transcript) Last() Turn {
	return t[len(t)-1]
}
