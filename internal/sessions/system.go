package sessions

import (
	"context"

	"github.com/google/uuid"

	"promptcraft/pkg/pagination"
)

// System defines the public contract for the persistence gateway.
type System interface {
	Handler() *Handler

	CreateOrUpdate(ctx context.Context, cmd CreateOrUpdateCommand) (*Session, error)
	Find(ctx context.Context, id uuid.UUID) (*Session, error)
	Answers(ctx context.Context, sessionID uuid.UUID) ([]Answer, error)
	UpsertAnswer(ctx context.Context, sessionID uuid.UUID, cmd AnswerCommand) (*Answer, error)
	SaveGeneratedPrompt(ctx context.Context, sessionID uuid.UUID, prompt string) error

	ListSaved(
		ctx context.Context,
		ownerID uuid.UUID,
		page pagination.PageRequest,
	) (*pagination.PageResult[SavedPrompt], error)

	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
