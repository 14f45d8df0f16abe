package synthesis_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"promptcraft/internal/sessions"
	"promptcraft/internal/synthesis"
	"promptcraft/pkg/llm"
	"promptcraft/pkg/pagination"
)

type fakeClient struct {
	response   string
	err        error
	calls      int
	lastPrompt string
	lastJSON   bool
}

func (c *fakeClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.calls++
	c.lastPrompt = req.Prompt
	c.lastJSON = req.JSONResponse
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *fakeClient) Configured() bool {
	return true
}

type fakeSessions struct {
	session      *sessions.Session
	answers      []sessions.Answer
	findErr      error
	createErr    error
	savedPrompts map[uuid.UUID]string
	upserted     []sessions.AnswerCommand
	lastCreate   sessions.CreateOrUpdateCommand
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{savedPrompts: make(map[uuid.UUID]string)}
}

func (f *fakeSessions) Handler() *sessions.Handler {
	return nil
}

func (f *fakeSessions) CreateOrUpdate(ctx context.Context, cmd sessions.CreateOrUpdateCommand) (*sessions.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastCreate = cmd

	id := uuid.New()
	if cmd.SessionID != nil {
		id = *cmd.SessionID
	}
	f.session = &sessions.Session{ID: id, AppIdea: cmd.AppIdea, UserID: cmd.UserID}
	return f.session, nil
}

func (f *fakeSessions) Find(ctx context.Context, id uuid.UUID) (*sessions.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.session, nil
}

func (f *fakeSessions) Answers(ctx context.Context, sessionID uuid.UUID) ([]sessions.Answer, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.answers, nil
}

func (f *fakeSessions) UpsertAnswer(ctx context.Context, sessionID uuid.UUID, cmd sessions.AnswerCommand) (*sessions.Answer, error) {
	f.upserted = append(f.upserted, cmd)
	return &sessions.Answer{
		SessionID:      sessionID,
		Question:       cmd.Question,
		SelectedAnswer: cmd.SelectedAnswer,
		Explanation:    cmd.Explanation,
	}, nil
}

func (f *fakeSessions) SaveGeneratedPrompt(ctx context.Context, sessionID uuid.UUID, prompt string) error {
	f.savedPrompts[sessionID] = prompt
	return nil
}

func (f *fakeSessions) ListSaved(ctx context.Context, ownerID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[sessions.SavedPrompt], error) {
	return nil, nil
}

func (f *fakeSessions) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return nil
}

func newService(client *fakeClient, store *fakeSessions) synthesis.System {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return synthesis.New(store, client, logger)
}

func TestGeneratePromptValidatesBeforeModelCall(t *testing.T) {
	tests := []struct {
		name string
		idea string
		want error
	}{
		{"empty idea", "", synthesis.ErrIdeaRequired},
		{"whitespace idea", "   \n\t", synthesis.ErrIdeaRequired},
		{"oversized idea", strings.Repeat("a", 5001), sessions.ErrIdeaTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: "prompt"}
			svc := newService(client, newFakeSessions())

			_, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{AppIdea: tt.idea})
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if client.calls != 0 {
				t.Errorf("model called %d times before validation, want 0", client.calls)
			}
		})
	}
}

func TestGeneratePromptDirectSubmission(t *testing.T) {
	client := &fakeClient{response: "## Build this app"}
	store := newFakeSessions()
	svc := newService(client, store)

	userID := uuid.New()
	result, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{
		AppIdea: "A recipe box for busy parents",
		UserID:  &userID,
		Answers: []sessions.AnswerCommand{
			{Question: "Who is it for?", SelectedAnswer: "Parents", Explanation: "Busy households"},
		},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if result.Prompt != "## Build this app" {
		t.Errorf("prompt: got %q", result.Prompt)
	}
	if result.SessionID == nil {
		t.Fatal("session id missing from result")
	}
	if got := store.savedPrompts[*result.SessionID]; got != "## Build this app" {
		t.Errorf("saved prompt: got %q", got)
	}
	if len(store.upserted) != 1 {
		t.Errorf("upserted answers: got %d, want 1", len(store.upserted))
	}
}

func TestGeneratePromptUpdatesKnownSession(t *testing.T) {
	client := &fakeClient{response: "## Build this app"}
	store := newFakeSessions()
	// A wrongly taken load-from-session path would fail on Find.
	store.findErr = sessions.ErrSessionNotFound
	svc := newService(client, store)

	sessionID := uuid.New()
	result, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{
		SessionID: &sessionID,
		AppIdea:   "A recipe box for busy parents",
		Answers: []sessions.AnswerCommand{
			{Question: "Who is it for?", SelectedAnswer: "Parents"},
		},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if store.lastCreate.SessionID == nil || *store.lastCreate.SessionID != sessionID {
		t.Errorf("session update: got %v, want %s", store.lastCreate.SessionID, sessionID)
	}
	if result.SessionID == nil || *result.SessionID != sessionID {
		t.Errorf("result session id: got %v, want %s", result.SessionID, sessionID)
	}
	if got := store.savedPrompts[sessionID]; got != "## Build this app" {
		t.Errorf("prompt attached to session: got %q", got)
	}
	if !strings.Contains(client.lastPrompt, "A recipe box for busy parents") {
		t.Errorf("inline idea missing from model input:\n%s", client.lastPrompt)
	}
}

func TestGeneratePromptInputRendersAnswersVerbatim(t *testing.T) {
	client := &fakeClient{response: "ok"}
	svc := newService(client, newFakeSessions())

	_, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{
		AppIdea: "A study planner",
		Answers: []sessions.AnswerCommand{
			{
				Question:       "What platform?",
				SelectedAnswer: "Mobile app",
				Explanation:    "An installed iOS/Android experience with offline access and push notifications.",
			},
		},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, want := range []string{
		"App idea:\nA study planner",
		"Question: What platform?",
		"Answer: Mobile app",
		"Context: An installed iOS/Android experience with offline access and push notifications.",
	} {
		if !strings.Contains(client.lastPrompt, want) {
			t.Errorf("model input missing %q:\n%s", want, client.lastPrompt)
		}
	}
	if strings.Contains(client.lastPrompt, "(custom answer)") {
		t.Error("catalog answer flagged as custom")
	}
}

func TestGeneratePromptFlagsCustomAnswers(t *testing.T) {
	client := &fakeClient{response: "ok"}
	svc := newService(client, newFakeSessions())

	_, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{
		AppIdea: "A study planner",
		Answers: []sessions.AnswerCommand{
			{
				Question:       "What platform?",
				SelectedAnswer: "Smart fridge",
				Explanation:    sessions.CustomInputExplanation,
			},
		},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if !strings.Contains(client.lastPrompt, "Answer: Smart fridge (custom answer)") {
		t.Errorf("custom answer not flagged:\n%s", client.lastPrompt)
	}
}

func TestGeneratePromptSurvivesPersistenceFailure(t *testing.T) {
	client := &fakeClient{response: "still generated"}
	store := newFakeSessions()
	store.createErr = errors.New("db down")
	svc := newService(client, store)

	result, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{
		AppIdea: "A plant watering reminder",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.Prompt != "still generated" {
		t.Errorf("prompt: got %q", result.Prompt)
	}
	if result.SessionID != nil {
		t.Error("session id set despite persistence failure")
	}
}

func TestGeneratePromptFromSession(t *testing.T) {
	sessionID := uuid.New()
	store := newFakeSessions()
	store.session = &sessions.Session{ID: sessionID, AppIdea: "A team wiki"}
	store.answers = []sessions.Answer{
		{Question: "Who edits?", SelectedAnswer: "Everyone", Explanation: "Open editing"},
	}

	client := &fakeClient{response: "wiki prompt"}
	svc := newService(client, store)

	result, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{SessionID: &sessionID})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if result.SessionID == nil || *result.SessionID != sessionID {
		t.Errorf("session id: got %v, want %s", result.SessionID, sessionID)
	}
	if !strings.Contains(client.lastPrompt, "A team wiki") {
		t.Error("stored idea missing from model input")
	}
	if !strings.Contains(client.lastPrompt, "Question: Who edits?") {
		t.Error("stored answer missing from model input")
	}
	if got := store.savedPrompts[sessionID]; got != "wiki prompt" {
		t.Errorf("saved prompt: got %q", got)
	}
}

func TestGeneratePromptSessionNotFound(t *testing.T) {
	sessionID := uuid.New()
	store := newFakeSessions()
	store.findErr = sessions.ErrSessionNotFound

	client := &fakeClient{response: "unused"}
	svc := newService(client, store)

	_, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{SessionID: &sessionID})
	if !errors.Is(err, sessions.ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
	if client.calls != 0 {
		t.Errorf("model called %d times for missing session, want 0", client.calls)
	}
}

func TestGeneratePromptModelErrors(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		want      error
	}{
		{"not configured passes through", llm.ErrNotConfigured, llm.ErrNotConfigured},
		{"empty completion wraps upstream", llm.ErrEmptyCompletion, synthesis.ErrUpstream},
		{"transport failure wraps upstream", errors.New("connection refused"), synthesis.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{err: tt.clientErr}
			svc := newService(client, newFakeSessions())

			_, err := svc.GeneratePrompt(context.Background(), synthesis.GenerateCommand{AppIdea: "An idea"})
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateQuestionsValidation(t *testing.T) {
	tests := []struct {
		name string
		idea string
		want error
	}{
		{"empty idea", "", synthesis.ErrIdeaRequired},
		{"oversized idea", strings.Repeat("a", 2001), synthesis.ErrIdeaTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: "{}"}
			svc := newService(client, newFakeSessions())

			_, err := svc.GenerateQuestions(context.Background(), tt.idea)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if client.calls != 0 {
				t.Errorf("model called %d times before validation, want 0", client.calls)
			}
		})
	}
}

func TestGenerateQuestionsNormalization(t *testing.T) {
	client := &fakeClient{response: `{
		"questions": [
			{"question": "Who will use this?", "kind": "choice", "options": [
				{"value": "students", "label": "Students", "explanation": "Campus users"},
				{"label": "Teachers"}
			]},
			{"question": ""},
			{"id": "pace", "question": "How fast should sessions be?", "kind": "dropdown", "allowCustom": false}
		]
	}`}
	svc := newService(client, newFakeSessions())

	questions, err := svc.GenerateQuestions(context.Background(), "A flashcard app")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !client.lastJSON {
		t.Error("question generation should request a JSON response")
	}

	if len(questions) != 2 {
		t.Fatalf("question count: got %d, want 2", len(questions))
	}

	first := questions[0]
	if first.ID != "question_1" {
		t.Errorf("default id: got %s, want question_1", first.ID)
	}
	if first.Placeholder != "Type your answer..." {
		t.Errorf("default placeholder: got %q", first.Placeholder)
	}
	if !first.AllowCustom {
		t.Error("allowCustom should default to true")
	}
	if len(first.Options) != 2 {
		t.Fatalf("option count: got %d, want 2", len(first.Options))
	}
	if first.Options[1].Value != "option_2" {
		t.Errorf("default option value: got %s, want option_2", first.Options[1].Value)
	}
	if first.Options[1].Label != "Teachers" {
		t.Errorf("option label: got %s, want Teachers", first.Options[1].Label)
	}

	second := questions[1]
	if second.ID != "pace" {
		t.Errorf("explicit id: got %s, want pace", second.ID)
	}
	if second.Kind != "both" {
		t.Errorf("invalid kind fallback: got %s, want both", second.Kind)
	}
	if second.AllowCustom {
		t.Error("explicit allowCustom false was overridden")
	}
}

func TestGenerateQuestionsFencedJSON(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"questions\": [{\"question\": \"What matters most?\"}]}\n```"}
	svc := newService(client, newFakeSessions())

	questions, err := svc.GenerateQuestions(context.Background(), "A budgeting app")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("question count: got %d, want 1", len(questions))
	}
}

func TestGenerateQuestionsUnusableResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "Sorry, I cannot help with that."},
		{"empty question list", `{"questions": []}`},
		{"only blank questions", `{"questions": [{"question": "  "}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response}
			svc := newService(client, newFakeSessions())

			_, err := svc.GenerateQuestions(context.Background(), "A budgeting app")
			if !errors.Is(err, synthesis.ErrUpstream) {
				t.Errorf("got %v, want ErrUpstream", err)
			}
		})
	}
}
