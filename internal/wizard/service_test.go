package wizard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"promptcraft/internal/catalog"
	"promptcraft/internal/sessions"
	"promptcraft/internal/synthesis"
	"promptcraft/internal/wizard"
	"promptcraft/pkg/pagination"
)

type fakeSessions struct {
	mu      sync.Mutex
	ideas   []string
	answers []sessions.AnswerCommand
}

func (f *fakeSessions) Handler() *sessions.Handler {
	return nil
}

func (f *fakeSessions) CreateOrUpdate(ctx context.Context, cmd sessions.CreateOrUpdateCommand) (*sessions.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ideas = append(f.ideas, cmd.AppIdea)

	id := uuid.New()
	if cmd.SessionID != nil {
		id = *cmd.SessionID
	}
	return &sessions.Session{ID: id, AppIdea: cmd.AppIdea, UserID: cmd.UserID}, nil
}

func (f *fakeSessions) Find(ctx context.Context, id uuid.UUID) (*sessions.Session, error) {
	return nil, sessions.ErrSessionNotFound
}

func (f *fakeSessions) Answers(ctx context.Context, sessionID uuid.UUID) ([]sessions.Answer, error) {
	return nil, nil
}

func (f *fakeSessions) UpsertAnswer(ctx context.Context, sessionID uuid.UUID, cmd sessions.AnswerCommand) (*sessions.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, cmd)
	return &sessions.Answer{SessionID: sessionID}, nil
}

func (f *fakeSessions) SaveGeneratedPrompt(ctx context.Context, sessionID uuid.UUID, prompt string) error {
	return nil
}

func (f *fakeSessions) ListSaved(ctx context.Context, ownerID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[sessions.SavedPrompt], error) {
	return nil, nil
}

func (f *fakeSessions) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return nil
}

func (f *fakeSessions) savedIdeas() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ideas...)
}

type fakeSynthesis struct {
	result    *synthesis.GenerateResult
	err       error
	questions []catalog.QuestionDefinition
	block     chan struct{}

	mu      sync.Mutex
	lastCmd synthesis.GenerateCommand
}

func (f *fakeSynthesis) Handler() *synthesis.Handler {
	return nil
}

func (f *fakeSynthesis) GeneratePrompt(ctx context.Context, cmd synthesis.GenerateCommand) (*synthesis.GenerateResult, error) {
	f.mu.Lock()
	f.lastCmd = cmd
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSynthesis) GenerateQuestions(ctx context.Context, appIdea string) ([]catalog.QuestionDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func newWizard(t *testing.T, synth *fakeSynthesis) (wizard.System, *fakeSessions) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &fakeSessions{}
	cat := catalog.New(logger)
	return wizard.New(store, synth, cat, logger), store
}

func advanceToClarify(t *testing.T, sys wizard.System) uuid.UUID {
	t.Helper()
	state := sys.Start(nil)

	if _, err := sys.StartFromScratch(state.ID); err != nil {
		t.Fatalf("scratch failed: %v", err)
	}
	if _, err := sys.SetIdea(state.ID, "A reading tracker for book clubs"); err != nil {
		t.Fatalf("set idea failed: %v", err)
	}
	if _, err := sys.Advance(state.ID); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	return state.ID
}

func answerAll(t *testing.T, sys wizard.System, id uuid.UUID) {
	t.Helper()
	state, err := sys.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	for _, q := range state.Questions {
		if _, err := sys.SetAnswer(id, q.ID, q.Options[0].Value, false); err != nil {
			t.Fatalf("answer %s failed: %v", q.ID, err)
		}
	}
}

func TestStart(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})

	state := sys.Start(nil)
	if state.Step != wizard.StepTemplateSelect {
		t.Errorf("step: got %s, want %s", state.Step, wizard.StepTemplateSelect)
	}
	if state.ID == uuid.Nil {
		t.Error("wizard id not assigned")
	}

	got, err := sys.Get(state.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != state.ID {
		t.Errorf("get returned wrong wizard: %s", got.ID)
	}
}

func TestGetUnknownWizard(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})

	if _, err := sys.Get(uuid.New()); !errors.Is(err, wizard.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestApplyTemplate(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	state := sys.Start(nil)

	got, err := sys.ApplyTemplate(state.ID, "task_tracker")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if got.Step != wizard.StepIdeaEntry {
		t.Errorf("step: got %s, want %s", got.Step, wizard.StepIdeaEntry)
	}
	if got.TemplateID != "task_tracker" {
		t.Errorf("template id: got %s", got.TemplateID)
	}
	if got.AppIdea == "" {
		t.Error("idea text not prefilled")
	}
	if len(got.Questions) != 6 {
		t.Errorf("questions: got %d, want 6", len(got.Questions))
	}

	tmpl, err := catalog.FindTemplate("task_tracker")
	if err != nil {
		t.Fatalf("find template failed: %v", err)
	}
	for qid, want := range tmpl.PrefilledAnswers {
		a, ok := got.Answers[qid]
		if !ok {
			t.Errorf("missing prefilled answer for %s", qid)
			continue
		}
		if a.Value != want.Value || a.Explanation != want.Explanation {
			t.Errorf("answer %s: got %+v, want %+v", qid, a, want)
		}
	}
}

func TestApplyTemplateUnknownID(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	state := sys.Start(nil)

	if _, err := sys.ApplyTemplate(state.ID, "no_such_template"); !errors.Is(err, catalog.ErrTemplateNotFound) {
		t.Errorf("got %v, want ErrTemplateNotFound", err)
	}
}

func TestApplyTemplateWrongStep(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	state := sys.Start(nil)

	if _, err := sys.StartFromScratch(state.ID); err != nil {
		t.Fatalf("scratch failed: %v", err)
	}
	if _, err := sys.ApplyTemplate(state.ID, "task_tracker"); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

func TestAdvanceRequiresSufficientIdea(t *testing.T) {
	tests := []struct {
		name string
		idea string
		want error
	}{
		{"empty", "", wizard.ErrIdeaTooShort},
		{"exactly ten characters", "exactly 10", wizard.ErrIdeaTooShort},
		{"padded whitespace", "   short    ", wizard.ErrIdeaTooShort},
		{"eleven characters", "elevenchars", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, _ := newWizard(t, &fakeSynthesis{})
			state := sys.Start(nil)

			if _, err := sys.StartFromScratch(state.ID); err != nil {
				t.Fatalf("scratch failed: %v", err)
			}
			if tt.idea != "" {
				if _, err := sys.SetIdea(state.ID, tt.idea); err != nil {
					t.Fatalf("set idea failed: %v", err)
				}
			}

			got, err := sys.Advance(state.ID)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Errorf("got %v, want %v", err, tt.want)
				}
				return
			}
			if err != nil {
				t.Fatalf("advance failed: %v", err)
			}
			if got.Step != wizard.StepClarify {
				t.Errorf("step: got %s, want %s", got.Step, wizard.StepClarify)
			}
			if len(got.Questions) != 6 {
				t.Errorf("static questions: got %d, want 6", len(got.Questions))
			}
		})
	}
}

func TestBackTransitions(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	id := advanceToClarify(t, sys)

	state, err := sys.Back(id)
	if err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if state.Step != wizard.StepIdeaEntry {
		t.Errorf("step: got %s, want %s", state.Step, wizard.StepIdeaEntry)
	}
	if state.AppIdea == "" {
		t.Error("idea discarded by backward transition")
	}

	state, err = sys.Back(id)
	if err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if state.Step != wizard.StepTemplateSelect {
		t.Errorf("step: got %s, want %s", state.Step, wizard.StepTemplateSelect)
	}

	if _, err := sys.Back(id); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

func TestSetAnswerFromOption(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	id := advanceToClarify(t, sys)

	state, _ := sys.Get(id)
	q := state.Questions[0]
	opt := q.Options[0]

	got, err := sys.SetAnswer(id, q.ID, opt.Value, false)
	if err != nil {
		t.Fatalf("set answer failed: %v", err)
	}

	a := got.Answers[q.ID]
	if a.Value != opt.Label {
		t.Errorf("value: got %q, want option label %q", a.Value, opt.Label)
	}
	if a.Explanation != opt.Explanation {
		t.Errorf("explanation: got %q, want %q", a.Explanation, opt.Explanation)
	}
	if a.Custom {
		t.Error("option answer marked custom")
	}
}

func TestSetAnswerCustom(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	id := advanceToClarify(t, sys)

	state, _ := sys.Get(id)
	q := state.Questions[0]

	tests := []struct {
		name   string
		value  string
		custom bool
	}{
		{"explicit custom", "Retired sailors", true},
		{"unmatched option value falls back to custom", "not_a_real_option", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sys.SetAnswer(id, q.ID, tt.value, tt.custom)
			if err != nil {
				t.Fatalf("set answer failed: %v", err)
			}

			a := got.Answers[q.ID]
			if !a.Custom {
				t.Error("answer not marked custom")
			}
			if a.Value != tt.value {
				t.Errorf("value: got %q, want %q", a.Value, tt.value)
			}
			if a.Explanation != sessions.CustomInputExplanation {
				t.Errorf("explanation: got %q, want %q", a.Explanation, sessions.CustomInputExplanation)
			}
		})
	}
}

func TestSetAnswerUnknownQuestion(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	id := advanceToClarify(t, sys)

	if _, err := sys.SetAnswer(id, "no_such_question", "x", true); !errors.Is(err, wizard.ErrUnknownQuestion) {
		t.Errorf("got %v, want ErrUnknownQuestion", err)
	}
}

func TestGenerateRequiresAllAnswers(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{result: &synthesis.GenerateResult{Prompt: "p"}})
	id := advanceToClarify(t, sys)

	if _, err := sys.Generate(context.Background(), id); !errors.Is(err, wizard.ErrUnanswered) {
		t.Errorf("got %v, want ErrUnanswered", err)
	}
}

func TestGenerateSuccess(t *testing.T) {
	sessionID := uuid.New()
	synth := &fakeSynthesis{result: &synthesis.GenerateResult{
		Prompt:    "## Your prompt",
		SessionID: &sessionID,
	}}

	sys, _ := newWizard(t, synth)
	id := advanceToClarify(t, sys)
	answerAll(t, sys, id)

	state, err := sys.Generate(context.Background(), id)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if state.Step != wizard.StepResult {
		t.Errorf("step: got %s, want %s", state.Step, wizard.StepResult)
	}
	if state.Prompt != "## Your prompt" {
		t.Errorf("prompt: got %q", state.Prompt)
	}
	if state.SessionID == nil || *state.SessionID != sessionID {
		t.Errorf("session id: got %v, want %s", state.SessionID, sessionID)
	}
	if state.Generating {
		t.Error("generating flag still set")
	}

	synth.mu.Lock()
	cmd := synth.lastCmd
	synth.mu.Unlock()
	if len(cmd.Answers) != 6 {
		t.Errorf("submitted answers: got %d, want 6", len(cmd.Answers))
	}
}

func TestGenerateReusesExistingSession(t *testing.T) {
	sessionID := uuid.New()
	synth := &fakeSynthesis{result: &synthesis.GenerateResult{
		Prompt:    "## First pass",
		SessionID: &sessionID,
	}}

	sys, _ := newWizard(t, synth)
	id := advanceToClarify(t, sys)
	answerAll(t, sys, id)

	if _, err := sys.Generate(context.Background(), id); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Edit after the first result: the regenerated prompt must land on the
	// same session instead of spawning a fresh one.
	if _, err := sys.Back(id); err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if _, err := sys.Generate(context.Background(), id); err != nil {
		t.Fatalf("second generate failed: %v", err)
	}

	synth.mu.Lock()
	cmd := synth.lastCmd
	synth.mu.Unlock()
	if cmd.SessionID == nil || *cmd.SessionID != sessionID {
		t.Errorf("submitted session id: got %v, want %s", cmd.SessionID, sessionID)
	}
	if cmd.AppIdea == "" {
		t.Error("in-memory idea not submitted alongside the session id")
	}
}

func TestGenerateSubmitsLatestAnswerPerQuestion(t *testing.T) {
	synth := &fakeSynthesis{result: &synthesis.GenerateResult{Prompt: "p"}}
	sys, _ := newWizard(t, synth)
	id := advanceToClarify(t, sys)
	answerAll(t, sys, id)

	state, err := sys.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	q := state.Questions[0]

	// Changing an answer replaces it; the submission carries one entry per
	// question, holding the latest value.
	if _, err := sys.SetAnswer(id, q.ID, "Retired sailors", true); err != nil {
		t.Fatalf("re-answer failed: %v", err)
	}
	if _, err := sys.Generate(context.Background(), id); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	synth.mu.Lock()
	cmd := synth.lastCmd
	synth.mu.Unlock()

	if len(cmd.Answers) != len(state.Questions) {
		t.Fatalf("submitted answers: got %d, want %d", len(cmd.Answers), len(state.Questions))
	}
	var matches int
	for _, a := range cmd.Answers {
		if a.Question == q.Question {
			matches++
			if a.SelectedAnswer != "Retired sailors" {
				t.Errorf("answer for %q: got %q, want latest value", q.Question, a.SelectedAnswer)
			}
		}
	}
	if matches != 1 {
		t.Errorf("entries for re-answered question: got %d, want 1", matches)
	}
}

func TestGenerateFailureStaysOnClarify(t *testing.T) {
	synth := &fakeSynthesis{err: synthesis.ErrUpstream}
	sys, _ := newWizard(t, synth)
	id := advanceToClarify(t, sys)
	answerAll(t, sys, id)

	if _, err := sys.Generate(context.Background(), id); !errors.Is(err, synthesis.ErrUpstream) {
		t.Fatalf("got %v, want ErrUpstream", err)
	}

	state, err := sys.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if state.Step != wizard.StepClarify {
		t.Errorf("step after failure: got %s, want %s", state.Step, wizard.StepClarify)
	}
	if state.Generating {
		t.Error("generating flag still set after failure")
	}

	// Answers are intact; a retry can submit immediately.
	synth.err = nil
	synth.result = &synthesis.GenerateResult{Prompt: "retry worked"}
	if _, err := sys.Generate(context.Background(), id); err != nil {
		t.Errorf("retry failed: %v", err)
	}
}

func TestGenerateRejectsConcurrentSubmission(t *testing.T) {
	synth := &fakeSynthesis{
		result: &synthesis.GenerateResult{Prompt: "p"},
		block:  make(chan struct{}),
	}
	sys, _ := newWizard(t, synth)
	id := advanceToClarify(t, sys)
	answerAll(t, sys, id)

	done := make(chan error, 1)
	go func() {
		_, err := sys.Generate(context.Background(), id)
		done <- err
	}()

	// Wait until the first submission is inside the synthesis call.
	deadline := time.After(2 * time.Second)
	for {
		state, err := sys.Get(id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if state.Generating {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first submission never started")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, err := sys.Generate(context.Background(), id); !errors.Is(err, wizard.ErrBusy) {
		t.Errorf("got %v, want ErrBusy", err)
	}

	close(synth.block)
	if err := <-done; err != nil {
		t.Errorf("first submission failed: %v", err)
	}
}

func TestGenerateQuestionsReplacesSetAndClearsAnswers(t *testing.T) {
	synth := &fakeSynthesis{questions: []catalog.QuestionDefinition{
		{ID: "q1", Question: "What makes it different?", Kind: catalog.KindText, AllowCustom: true},
	}}
	sys, _ := newWizard(t, synth)
	id := advanceToClarify(t, sys)
	answerAll(t, sys, id)

	state, err := sys.GenerateQuestions(context.Background(), id)
	if err != nil {
		t.Fatalf("generate questions failed: %v", err)
	}

	if len(state.Questions) != 1 || state.Questions[0].ID != "q1" {
		t.Errorf("questions not replaced: %+v", state.Questions)
	}
	if len(state.Answers) != 0 {
		t.Errorf("answers not cleared: %d remain", len(state.Answers))
	}
}

func TestRestart(t *testing.T) {
	synth := &fakeSynthesis{result: &synthesis.GenerateResult{Prompt: "p"}}
	sys, _ := newWizard(t, synth)
	id := advanceToClarify(t, sys)
	answerAll(t, sys, id)

	if _, err := sys.Generate(context.Background(), id); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	state, err := sys.Restart(id)
	if err != nil {
		t.Fatalf("restart failed: %v", err)
	}

	if state.Step != wizard.StepTemplateSelect {
		t.Errorf("step: got %s, want %s", state.Step, wizard.StepTemplateSelect)
	}
	if state.AppIdea != "" || state.Prompt != "" || state.SessionID != nil {
		t.Errorf("state not cleared: %+v", state)
	}
	if len(state.Answers) != 0 {
		t.Errorf("answers not cleared: %d remain", len(state.Answers))
	}
}

func TestRestartOnlyFromResult(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	id := advanceToClarify(t, sys)

	if _, err := sys.Restart(id); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

func TestDiscard(t *testing.T) {
	sys, _ := newWizard(t, &fakeSynthesis{})
	state := sys.Start(nil)

	if err := sys.Discard(state.ID); err != nil {
		t.Fatalf("discard failed: %v", err)
	}
	if _, err := sys.Get(state.ID); !errors.Is(err, wizard.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if err := sys.Discard(state.ID); !errors.Is(err, wizard.ErrNotFound) {
		t.Errorf("second discard: got %v, want ErrNotFound", err)
	}
}

func TestIdeaSaveIsDebounced(t *testing.T) {
	sys, store := newWizard(t, &fakeSynthesis{})
	state := sys.Start(nil)

	if _, err := sys.StartFromScratch(state.ID); err != nil {
		t.Fatalf("scratch failed: %v", err)
	}

	// Rapid edits within the quiet period collapse to one save of the
	// final text.
	for _, idea := range []string{"A recipe", "A recipe box", "A recipe box for parents"} {
		if _, err := sys.SetIdea(state.ID, idea); err != nil {
			t.Fatalf("set idea failed: %v", err)
		}
	}

	if got := store.savedIdeas(); len(got) != 0 {
		t.Fatalf("save fired before quiet period: %v", got)
	}

	deadline := time.After(3 * time.Second)
	for {
		got := store.savedIdeas()
		if len(got) > 0 {
			if len(got) != 1 {
				t.Errorf("saves: got %d, want 1", len(got))
			}
			if got[0] != "A recipe box for parents" {
				t.Errorf("saved idea: got %q, want final edit", got[0])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("debounced save never fired")
		case <-time.After(25 * time.Millisecond):
		}
	}
}
