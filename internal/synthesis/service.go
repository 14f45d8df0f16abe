package synthesis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"promptcraft/internal/catalog"
	"promptcraft/internal/sessions"
	"promptcraft/pkg/formatting"
	"promptcraft/pkg/llm"
)

type service struct {
	sessions sessions.System
	client   llm.Client
	logger   *slog.Logger
}

// New creates a synthesis service implementing the System interface.
func New(
	sessionSys sessions.System,
	client llm.Client,
	logger *slog.Logger,
) System {
	return &service{
		sessions: sessionSys,
		client:   client,
		logger:   logger.With("system", "synthesis"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) GeneratePrompt(ctx context.Context, cmd GenerateCommand) (*GenerateResult, error) {
	var (
		idea      string
		answers   []sessions.Answer
		sessionID *uuid.UUID
	)

	// A session id with no inline idea means "generate from what is
	// stored". Inline input always wins; a session id alongside it only
	// names the row the submission should update.
	if cmd.SessionID != nil && cmd.AppIdea == "" {
		var session *sessions.Session

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			session, err = s.sessions.Find(gctx, *cmd.SessionID)
			return err
		})
		g.Go(func() error {
			var err error
			answers, err = s.sessions.Answers(gctx, *cmd.SessionID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		idea = session.AppIdea
		sessionID = cmd.SessionID
	} else {
		if err := validateIdea(cmd.AppIdea, sessions.MaxIdeaLength); err != nil {
			return nil, err
		}
		idea = cmd.AppIdea

		answers = make([]sessions.Answer, 0, len(cmd.Answers))
		for _, a := range cmd.Answers {
			answers = append(answers, sessions.Answer{
				Question:       a.Question,
				SelectedAnswer: a.SelectedAnswer,
				Explanation:    a.Explanation,
			})
		}

		sessionID = s.persistSubmission(ctx, cmd)
	}

	content, err := s.client.Complete(ctx, llm.Request{
		System: promptPersona,
		Prompt: buildPromptInput(idea, answers),
	})
	if err != nil {
		return nil, mapModelError(err)
	}

	if sessionID != nil {
		// Best effort: the computed prompt is returned even when the
		// persistence write fails.
		if err := s.sessions.SaveGeneratedPrompt(ctx, *sessionID, content); err != nil {
			s.logger.Warn("prompt save failed", "session_id", *sessionID, "error", err)
		}
	}

	s.logger.Info("prompt generated", "length", len(content), "persisted", sessionID != nil)

	return &GenerateResult{
		Prompt:    content,
		SessionID: sessionID,
	}, nil
}

func (s *service) GenerateQuestions(ctx context.Context, appIdea string) ([]catalog.QuestionDefinition, error) {
	if err := validateIdea(appIdea, MaxQuestionIdeaLength); err != nil {
		return nil, err
	}

	content, err := s.client.Complete(ctx, llm.Request{
		System:       questionPersona,
		Prompt:       questionInstructions + "\n\nApp idea:\n" + appIdea,
		JSONResponse: true,
	})
	if err != nil {
		return nil, mapModelError(err)
	}

	payload, err := formatting.Parse[questionPayload](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	questions := normalizeQuestions(payload.Questions)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no usable questions in response", ErrUpstream)
	}

	s.logger.Info("questions generated", "count", len(questions))
	return questions, nil
}

// persistSubmission records a direct-submission session and its answers so
// the generated prompt has something to attach to. A known session id
// updates that session in place rather than creating a second one.
// Failures are logged and swallowed; generation proceeds from the
// in-memory input regardless.
func (s *service) persistSubmission(ctx context.Context, cmd GenerateCommand) *uuid.UUID {
	session, err := s.sessions.CreateOrUpdate(ctx, sessions.CreateOrUpdateCommand{
		AppIdea:   cmd.AppIdea,
		UserID:    cmd.UserID,
		SessionID: cmd.SessionID,
	})
	if err != nil {
		s.logger.Warn("session save failed", "error", err)
		return nil
	}

	for _, a := range cmd.Answers {
		if _, err := s.sessions.UpsertAnswer(ctx, session.ID, a); err != nil {
			s.logger.Warn("answer save failed",
				"session_id", session.ID,
				"question", a.Question,
				"error", err,
			)
		}
	}

	return &session.ID
}

func buildPromptInput(idea string, answers []sessions.Answer) string {
	var b strings.Builder

	b.WriteString(promptInstructions)
	b.WriteString("\n\nApp idea:\n")
	b.WriteString(idea)
	b.WriteString("\n\nClarifying answers:\n")

	for _, a := range answers {
		b.WriteString("\nQuestion: ")
		b.WriteString(a.Question)
		b.WriteString("\nAnswer: ")
		b.WriteString(a.SelectedAnswer)
		if a.Explanation == sessions.CustomInputExplanation {
			b.WriteString(" (custom answer)")
		}
		b.WriteString("\nContext: ")
		b.WriteString(a.Explanation)
		b.WriteString("\n")
	}

	return b.String()
}

func validateIdea(idea string, max int) error {
	if strings.TrimSpace(idea) == "" {
		return ErrIdeaRequired
	}
	if len(idea) > max {
		if max == MaxQuestionIdeaLength {
			return ErrIdeaTooLong
		}
		return sessions.ErrIdeaTooLong
	}
	return nil
}

// mapModelError keeps configuration faults distinct and folds every other
// completion failure into the upstream category.
func mapModelError(err error) error {
	if errors.Is(err, llm.ErrNotConfigured) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
