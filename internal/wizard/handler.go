package wizard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"promptcraft/pkg/handlers"
	"promptcraft/pkg/routes"
)

// Handler provides HTTP endpoints for wizard operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// StartRequest is the body for wizard creation.
type StartRequest struct {
	UserID *uuid.UUID `json:"userId"`
}

// TemplateRequest selects a template or starts from scratch.
type TemplateRequest struct {
	TemplateID string `json:"templateId"`
	Scratch    bool   `json:"scratch"`
}

// IdeaRequest carries an idea text edit.
type IdeaRequest struct {
	AppIdea string `json:"appIdea"`
}

// AnswerRequest carries one clarifying answer.
type AnswerRequest struct {
	Value  string `json:"value"`
	Custom bool   `json:"custom"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "wizard"),
	}
}

// Routes returns the route group definition for wizard endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/wizards",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Start},
			{Method: "GET", Pattern: "/{id}", Handler: h.Get},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Discard},
			{Method: "POST", Pattern: "/{id}/template", Handler: h.Template},
			{Method: "PUT", Pattern: "/{id}/idea", Handler: h.Idea},
			{Method: "POST", Pattern: "/{id}/advance", Handler: h.Advance},
			{Method: "POST", Pattern: "/{id}/back", Handler: h.Back},
			{Method: "PUT", Pattern: "/{id}/answers/{questionId}", Handler: h.Answer},
			{Method: "POST", Pattern: "/{id}/questions/generate", Handler: h.GenerateQuestions},
			{Method: "POST", Pattern: "/{id}/generate", Handler: h.Generate},
			{Method: "POST", Pattern: "/{id}/restart", Handler: h.Restart},
		},
	}
}

func (h *Handler) wizardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// Start creates a new wizard at template selection.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	state := h.sys.Start(req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, state)
}

// Get returns the current wizard state.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	state, err := h.sys.Get(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Discard drops a live wizard.
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Discard(id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Template applies a template or starts from scratch.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var (
		state *State
		err   error
	)
	if req.Scratch {
		state, err = h.sys.StartFromScratch(id)
	} else {
		state, err = h.sys.ApplyTemplate(id, req.TemplateID)
	}
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Idea records an idea text edit.
func (h *Handler) Idea(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	var req IdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	state, err := h.sys.SetIdea(id, req.AppIdea)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Advance moves idea entry forward to the clarifying step.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	state, err := h.sys.Advance(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Back moves to the previous step.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	state, err := h.sys.Back(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Answer records one clarifying answer.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	state, err := h.sys.SetAnswer(id, r.PathValue("questionId"), req.Value, req.Custom)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// GenerateQuestions replaces the question set with an AI-generated one.
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	state, err := h.sys.GenerateQuestions(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Generate runs prompt synthesis and moves to the result step.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	state, err := h.sys.Generate(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

// Restart returns a completed wizard to template selection.
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	state, err := h.sys.Restart(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
