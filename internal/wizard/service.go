package wizard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"promptcraft/internal/catalog"
	"promptcraft/internal/sessions"
	"promptcraft/internal/synthesis"
	"promptcraft/pkg/timer"
)

// ideaSaveDelay is the quiet period before an edited idea is written to
// the persistence gateway.
const ideaSaveDelay = time.Second

type service struct {
	store     *store
	sessions  sessions.System
	synthesis synthesis.System
	catalog   catalog.System
	logger    *slog.Logger
}

// New creates a wizard service implementing the System interface.
func New(
	sessionSys sessions.System,
	synthesisSys synthesis.System,
	catalogSys catalog.System,
	logger *slog.Logger,
) System {
	return &service{
		store:     newStore(),
		sessions:  sessionSys,
		synthesis: synthesisSys,
		catalog:   catalogSys,
		logger:    logger.With("system", "wizard"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Start(userID *uuid.UUID) *State {
	w := &wizard{
		id:       uuid.New(),
		step:     StepTemplateSelect,
		answers:  make(map[string]Answer),
		userID:   userID,
		ideaSave: timer.NewDebouncer(ideaSaveDelay),
	}
	s.store.add(w)

	s.logger.Info("wizard started", "id", w.id, "anonymous", userID == nil)

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

func (s *service) Get(id uuid.UUID) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot(), nil
}

// ApplyTemplate pre-populates the idea text and every answer from a
// template, then jumps directly to idea entry.
func (s *service) ApplyTemplate(id uuid.UUID, templateID string) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	t, err := s.catalog.Template(templateID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepTemplateSelect {
		return nil, ErrInvalidTransition
	}

	w.templateID = t.ID
	w.appIdea = t.IdeaText
	w.questions = s.catalog.Questions()
	w.answers = make(map[string]Answer, len(t.PrefilledAnswers))
	for qid, a := range t.PrefilledAnswers {
		w.answers[qid] = Answer{Value: a.Value, Explanation: a.Explanation}
	}
	w.step = StepIdeaEntry

	w.ideaSave.Schedule(func() { s.saveIdea(w) })

	return w.snapshot(), nil
}

// StartFromScratch clears any idea and answers and moves to idea entry.
func (s *service) StartFromScratch(id uuid.UUID) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepTemplateSelect {
		return nil, ErrInvalidTransition
	}

	w.templateID = ""
	w.appIdea = ""
	w.answers = make(map[string]Answer)
	w.step = StepIdeaEntry

	return w.snapshot(), nil
}

// SetIdea records the idea text and schedules a debounced background save.
// A later edit within the quiet period supersedes the pending save.
func (s *service) SetIdea(id uuid.UUID, idea string) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepIdeaEntry {
		return nil, ErrInvalidTransition
	}

	w.appIdea = idea
	if idea != "" {
		w.ideaSave.Schedule(func() { s.saveIdea(w) })
	}

	return w.snapshot(), nil
}

// Advance moves idea entry to the clarifying step, gated on the
// minimum-content guard. The static question set is loaded if no
// AI-generated set has replaced it.
func (s *service) Advance(id uuid.UUID) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepIdeaEntry {
		return nil, ErrInvalidTransition
	}
	if !ideaSufficient(w.appIdea) {
		return nil, ErrIdeaTooShort
	}

	if len(w.questions) == 0 {
		w.questions = s.catalog.Questions()
	}
	w.step = StepClarify

	return w.snapshot(), nil
}

// Back moves to the previous step. Nothing is discarded.
func (s *service) Back(id uuid.UUID) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	prev, ok := previous(w.step)
	if !ok {
		return nil, ErrInvalidTransition
	}
	w.step = prev

	return w.snapshot(), nil
}

// SetAnswer records one clarifying answer and persists it fire-and-forget.
// An unmatched option value is treated as custom free text.
func (s *service) SetAnswer(id uuid.UUID, questionID, value string, custom bool) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepClarify {
		return nil, ErrInvalidTransition
	}

	var question *catalog.QuestionDefinition
	for i := range w.questions {
		if w.questions[i].ID == questionID {
			question = &w.questions[i]
			break
		}
	}
	if question == nil {
		return nil, ErrUnknownQuestion
	}

	answer := Answer{Value: value, Explanation: sessions.CustomInputExplanation, Custom: true}
	if !custom {
		for _, opt := range question.Options {
			if opt.Value == value {
				answer = Answer{Value: opt.Label, Explanation: opt.Explanation}
				break
			}
		}
	}
	w.answers[questionID] = answer

	go s.saveAnswer(w, question.Question, answer)

	return w.snapshot(), nil
}

// GenerateQuestions replaces the static question set with an AI-generated
// one for the current idea, clearing any recorded answers.
func (s *service) GenerateQuestions(ctx context.Context, id uuid.UUID) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.step != StepIdeaEntry && w.step != StepClarify {
		w.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if !ideaSufficient(w.appIdea) {
		w.mu.Unlock()
		return nil, ErrIdeaTooShort
	}
	idea := w.appIdea
	w.mu.Unlock()

	questions, err := s.synthesis.GenerateQuestions(ctx, idea)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.questions = questions
	w.answers = make(map[string]Answer)

	return w.snapshot(), nil
}

// Generate runs prompt synthesis from the in-memory wizard state, which is
// the effective source of truth regardless of earlier save outcomes. The
// wizard stays on the clarifying step when generation fails.
func (s *service) Generate(ctx context.Context, id uuid.UUID) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.step != StepClarify {
		w.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if w.generating {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	if !w.allAnswered() {
		w.mu.Unlock()
		return nil, ErrUnanswered
	}

	w.generating = true
	// The in-memory answers drive synthesis; the session id (when the
	// debounced save already created one) tells persistence where the
	// prompt belongs.
	cmd := synthesis.GenerateCommand{
		SessionID: w.sessionID,
		AppIdea:   w.appIdea,
		UserID:    w.userID,
		Answers:   make([]sessions.AnswerCommand, 0, len(w.questions)),
	}
	for _, q := range w.questions {
		a := w.answers[q.ID]
		cmd.Answers = append(cmd.Answers, sessions.AnswerCommand{
			Question:       q.Question,
			SelectedAnswer: a.Value,
			Explanation:    a.Explanation,
		})
	}
	w.mu.Unlock()

	result, err := s.synthesis.GeneratePrompt(ctx, cmd)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.generating = false

	if err != nil {
		return nil, err
	}

	w.prompt = result.Prompt
	if result.SessionID != nil {
		w.sessionID = result.SessionID
	}
	w.step = StepResult

	return w.snapshot(), nil
}

// Restart returns a completed wizard to template selection, clearing all
// collected state. Any pending idea save is cancelled.
func (s *service) Restart(id uuid.UUID) (*State, error) {
	w, err := s.store.get(id)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepResult {
		return nil, ErrInvalidTransition
	}

	w.ideaSave.Cancel()
	w.templateID = ""
	w.appIdea = ""
	w.questions = nil
	w.answers = make(map[string]Answer)
	w.sessionID = nil
	w.prompt = ""
	w.step = StepTemplateSelect

	return w.snapshot(), nil
}

// Discard drops a live wizard, cancelling any pending idea save. Durable
// session state is untouched.
func (s *service) Discard(id uuid.UUID) error {
	w, err := s.store.get(id)
	if err != nil {
		return err
	}

	w.ideaSave.Cancel()
	s.store.remove(id)

	s.logger.Info("wizard discarded", "id", id)
	return nil
}

// saveIdea is the debounced background session upsert. Failures are logged
// and swallowed; in-memory state remains the source of truth.
func (s *service) saveIdea(w *wizard) {
	w.mu.Lock()
	idea := w.appIdea
	sessionID := w.sessionID
	userID := w.userID
	w.mu.Unlock()

	if idea == "" {
		return
	}

	session, err := s.sessions.CreateOrUpdate(context.Background(), sessions.CreateOrUpdateCommand{
		AppIdea:   idea,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		s.logger.Warn("idea save failed", "wizard_id", w.id, "error", err)
		return
	}

	if sessionID == nil {
		w.mu.Lock()
		if w.sessionID == nil {
			w.sessionID = &session.ID
		}
		w.mu.Unlock()
	}
}

// saveAnswer is the fire-and-forget per-answer upsert. Skipped silently
// when no session row exists yet.
func (s *service) saveAnswer(w *wizard, question string, answer Answer) {
	w.mu.Lock()
	sessionID := w.sessionID
	w.mu.Unlock()

	if sessionID == nil {
		return
	}

	_, err := s.sessions.UpsertAnswer(context.Background(), *sessionID, sessions.AnswerCommand{
		Question:       question,
		SelectedAnswer: answer.Value,
		Explanation:    answer.Explanation,
	})
	if err != nil {
		s.logger.Warn("answer save failed",
			"wizard_id", w.id,
			"session_id", *sessionID,
			"error", err,
		)
	}
}
