// Package synthesis implements prompt and question generation. It assembles
// model input from an idea and its clarifying answers, invokes the
// completion client, and normalizes loosely structured model output.
package synthesis

import (
	"github.com/google/uuid"

	"promptcraft/internal/sessions"
)

// MaxQuestionIdeaLength caps idea text for question synthesis. Prompt
// synthesis uses the session write-boundary limit.
const MaxQuestionIdeaLength = 2000

// GenerateCommand carries the input for prompt synthesis: a session id
// alone loads the stored idea and answers; an idea text with an explicit
// answer list is used as-is, and a session id alongside it names the
// session the submission updates.
type GenerateCommand struct {
	SessionID *uuid.UUID               `json:"sessionId"`
	AppIdea   string                   `json:"appIdea"`
	Answers   []sessions.AnswerCommand `json:"answers"`
	UserID    *uuid.UUID               `json:"userId"`
}

// GenerateResult carries the synthesized prompt and, when persistence
// succeeded, the session it was stored against.
type GenerateResult struct {
	Prompt    string     `json:"prompt"`
	SessionID *uuid.UUID `json:"sessionId,omitempty"`
}
