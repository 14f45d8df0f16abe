// Package sessions implements the persistence gateway for PromptCraft.
// It provides types, data access, and HTTP handlers for prompt sessions,
// their clarifying answers, and generated prompts.
package sessions

import (
	"time"

	"github.com/google/uuid"
)

// Length limits enforced at the write boundary.
const (
	MaxIdeaLength   = 5000
	MaxPromptLength = 10000
)

// CustomInputExplanation is the sentinel explanation stored when a user
// supplies free text instead of picking a predefined option.
const CustomInputExplanation = "Custom input"

// Session represents one in-progress or completed app-idea submission.
// UserID is nil for anonymous sessions and, once set at creation, is
// never reassigned.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	AppIdea   string     `json:"app_idea"`
	UserID    *uuid.UUID `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// Answer represents one clarifying answer within a session. Question text
// is denormalized; there is no question-definition foreign key.
type Answer struct {
	SessionID      uuid.UUID `json:"session_id"`
	Question       string    `json:"question"`
	SelectedAnswer string    `json:"selected_answer"`
	Explanation    string    `json:"explanation"`
	CreatedAt      time.Time `json:"created_at"`
}

// SavedPrompt is the read model for saved-prompt listings: a session
// joined with its generated prompt.
type SavedPrompt struct {
	ID        uuid.UUID `json:"id"`
	AppIdea   string    `json:"app_idea"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateOrUpdateCommand carries the data for session creation or an
// idea-text update on an existing session.
type CreateOrUpdateCommand struct {
	AppIdea   string     `json:"app_idea"`
	UserID    *uuid.UUID `json:"user_id"`
	SessionID *uuid.UUID `json:"session_id"`
}

// AnswerCommand carries one clarifying answer write.
type AnswerCommand struct {
	Question       string `json:"question"`
	SelectedAnswer string `json:"selected_answer"`
	Explanation    string `json:"explanation"`
}
