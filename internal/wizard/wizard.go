// Package wizard implements the multi-step prompt wizard: a server-held
// state machine sequencing template selection, idea entry, clarifying
// questions, and result display, with debounced background persistence.
package wizard

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"promptcraft/internal/catalog"
	"promptcraft/pkg/timer"
)

// Step identifies a wizard state.
type Step string

// Wizard steps, in forward order.
const (
	StepTemplateSelect Step = "template_select"
	StepIdeaEntry      Step = "idea_entry"
	StepClarify        Step = "clarify"
	StepResult         Step = "result"
)

// MinIdeaLength is the minimum-content guard on the idea entry step.
// Advancing to clarifying questions requires more than this many characters.
const MinIdeaLength = 10

// Answer is one recorded clarifying answer within a wizard.
type Answer struct {
	Value       string `json:"value"`
	Explanation string `json:"explanation"`
	Custom      bool   `json:"custom"`
}

// State is the serializable view of a wizard returned to callers.
type State struct {
	ID         uuid.UUID                    `json:"id"`
	Step       Step                         `json:"step"`
	TemplateID string                       `json:"templateId,omitempty"`
	AppIdea    string                       `json:"appIdea"`
	Questions  []catalog.QuestionDefinition `json:"questions"`
	Answers    map[string]Answer            `json:"answers"`
	SessionID  *uuid.UUID                   `json:"sessionId,omitempty"`
	Prompt     string                       `json:"prompt,omitempty"`
	Generating bool                         `json:"generating"`
}

// wizard is the mutable state machine instance. All field access goes
// through mu; the debouncer fires on its own goroutine.
type wizard struct {
	mu sync.Mutex

	id         uuid.UUID
	step       Step
	templateID string
	appIdea    string
	questions  []catalog.QuestionDefinition
	answers    map[string]Answer
	sessionID  *uuid.UUID
	userID     *uuid.UUID
	prompt     string
	generating bool

	ideaSave *timer.Debouncer
}

// snapshot builds a State from the wizard. Callers must hold mu.
func (w *wizard) snapshot() *State {
	answers := make(map[string]Answer, len(w.answers))
	for k, v := range w.answers {
		answers[k] = v
	}

	return &State{
		ID:         w.id,
		Step:       w.step,
		TemplateID: w.templateID,
		AppIdea:    w.appIdea,
		Questions:  w.questions,
		Answers:    answers,
		SessionID:  w.sessionID,
		Prompt:     w.prompt,
		Generating: w.generating,
	}
}

// ideaSufficient reports whether the idea passes the minimum-content guard.
func ideaSufficient(idea string) bool {
	return len(strings.TrimSpace(idea)) > MinIdeaLength
}

// allAnswered reports whether every question has a non-empty answer.
// Callers must hold mu.
func (w *wizard) allAnswered() bool {
	for _, q := range w.questions {
		a, ok := w.answers[q.ID]
		if !ok || strings.TrimSpace(a.Value) == "" {
			return false
		}
	}
	return len(w.questions) > 0
}

// previous returns the step a backward transition lands on.
func previous(s Step) (Step, bool) {
	switch s {
	case StepIdeaEntry:
		return StepTemplateSelect, true
	case StepClarify:
		return StepIdeaEntry, true
	case StepResult:
		return StepClarify, true
	default:
		return "", false
	}
}
