package sessions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"promptcraft/pkg/pagination"
	"promptcraft/pkg/query"
	"promptcraft/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a session repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "sessions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) CreateOrUpdate(ctx context.Context, cmd CreateOrUpdateCommand) (*Session, error) {
	if err := validateIdea(cmd.AppIdea); err != nil {
		return nil, err
	}

	if cmd.SessionID == nil {
		q := `
			INSERT INTO prompt_sessions(app_idea, user_id)
			VALUES ($1, $2)
			RETURNING id, app_idea, user_id, created_at`

		s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
			return repository.QueryOne(ctx, tx, scanSession, q, cmd.AppIdea, cmd.UserID)
		})
		if err != nil {
			return nil, repository.MapError(err, ErrSessionNotFound, ErrDuplicate)
		}

		r.logger.Info("session created", "id", s.ID, "anonymous", s.UserID == nil)
		return &s, nil
	}

	// Idea updates key on the session id alone. An in-progress anonymous
	// session has no owner to check, and owners are never reassigned here.
	q := `
		UPDATE prompt_sessions
		SET app_idea = $1
		WHERE id = $2
		RETURNING id, app_idea, user_id, created_at`

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		return repository.QueryOne(ctx, tx, scanSession, q, cmd.AppIdea, *cmd.SessionID)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrSessionNotFound, ErrDuplicate)
	}

	return &s, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, scanSession, q, args...)
	if err != nil {
		return nil, repository.MapError(err, ErrSessionNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Answers(ctx context.Context, sessionID uuid.UUID) ([]Answer, error) {
	q := `
		SELECT session_id, question, selected_answer, explanation, created_at
		FROM clarifying_answers
		WHERE session_id = $1
		ORDER BY created_at`

	answers, err := repository.QueryMany(ctx, r.db, scanAnswer, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return answers, nil
}

// upsertAnswerSQL overwrites in place: clarifying_answers carries a
// uniqueness constraint on (session_id, question), so re-answering a
// question updates the existing row rather than accumulating duplicates.
const upsertAnswerSQL = `
	INSERT INTO clarifying_answers(session_id, question, selected_answer, explanation)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (session_id, question)
	DO UPDATE SET selected_answer = EXCLUDED.selected_answer,
		explanation = EXCLUDED.explanation
	RETURNING session_id, question, selected_answer, explanation, created_at`

func (r *repo) UpsertAnswer(ctx context.Context, sessionID uuid.UUID, cmd AnswerCommand) (*Answer, error) {
	if strings.TrimSpace(cmd.Question) == "" {
		return nil, ErrQuestionRequired
	}

	args := []any{sessionID, cmd.Question, cmd.SelectedAnswer, cmd.Explanation}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Answer, error) {
		return repository.QueryOne(ctx, tx, scanAnswer, upsertAnswerSQL, args...)
	})
	if err != nil {
		return nil, repository.MapReferenceError(err, ErrSessionNotFound, ErrDuplicate, ErrSessionNotFound)
	}

	return &a, nil
}

func (r *repo) SaveGeneratedPrompt(ctx context.Context, sessionID uuid.UUID, prompt string) error {
	if err := validatePrompt(prompt); err != nil {
		return err
	}

	q := `
		INSERT INTO generated_prompts(session_id, prompt)
		VALUES ($1, $2)`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q, sessionID, prompt)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapReferenceError(err, ErrSessionNotFound, ErrDuplicate, ErrSessionNotFound)
	}

	r.logger.Info("generated prompt saved", "session_id", sessionID, "length", len(prompt))
	return nil
}

func (r *repo) ListSaved(
	ctx context.Context,
	ownerID uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[SavedPrompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(savedProjection, savedSort).
		WhereEquals("UserID", ownerID).
		WhereSearch(page.Search, "AppIdea", "Prompt").
		OrderByFields(page.Sort)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count saved prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	prompts, err := repository.QueryMany(ctx, r.db, scanSavedPrompt, pageSQL, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("query saved prompts: %w", err)
	}

	result := pagination.NewPageResult(prompts, total, page.Page, page.PageSize)
	return &result, nil
}

// Delete removes a session and cascades its answers and generated prompt.
// The owner predicate is part of the delete statement, so a wrong owner and
// a missing id are indistinguishable to the caller.
func (r *repo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM prompt_sessions WHERE id = $1 AND user_id = $2",
			id, ownerID,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFoundOrForbidden, ErrDuplicate)
	}

	r.logger.Info("session deleted", "id", id)
	return nil
}

func validateIdea(idea string) error {
	if strings.TrimSpace(idea) == "" {
		return ErrIdeaRequired
	}
	if len(idea) > MaxIdeaLength {
		return ErrIdeaTooLong
	}
	return nil
}

func validatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrPromptRequired
	}
	if len(prompt) > MaxPromptLength {
		return ErrPromptTooLong
	}
	return nil
}
