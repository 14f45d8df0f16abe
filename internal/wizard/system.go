package wizard

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for wizard operations. Operations
// that call the model synchronously take a context; background saves run
// detached from any request.
type System interface {
	Handler() *Handler

	Start(userID *uuid.UUID) *State
	Get(id uuid.UUID) (*State, error)

	ApplyTemplate(id uuid.UUID, templateID string) (*State, error)
	StartFromScratch(id uuid.UUID) (*State, error)
	SetIdea(id uuid.UUID, idea string) (*State, error)
	Advance(id uuid.UUID) (*State, error)
	Back(id uuid.UUID) (*State, error)
	SetAnswer(id uuid.UUID, questionID, value string, custom bool) (*State, error)
	Restart(id uuid.UUID) (*State, error)
	Discard(id uuid.UUID) error

	GenerateQuestions(ctx context.Context, id uuid.UUID) (*State, error)
	Generate(ctx context.Context, id uuid.UUID) (*State, error)
}
