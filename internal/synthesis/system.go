package synthesis

import (
	"context"

	"promptcraft/internal/catalog"
)

// System defines the public contract for synthesis operations.
type System interface {
	Handler() *Handler

	GeneratePrompt(ctx context.Context, cmd GenerateCommand) (*GenerateResult, error)
	GenerateQuestions(ctx context.Context, appIdea string) ([]catalog.QuestionDefinition, error)
}
