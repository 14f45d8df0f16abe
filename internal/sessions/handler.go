package sessions

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"promptcraft/pkg/handlers"
	"promptcraft/pkg/pagination"
	"promptcraft/pkg/routes"
)

// Handler provides HTTP endpoints for session and saved-prompt operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SavePromptRequest is the body for the save-prompt endpoint.
type SavePromptRequest struct {
	AppIdea string          `json:"appIdea"`
	UserID  *uuid.UUID      `json:"userId"`
	Answers []AnswerCommand `json:"answers"`
	Prompt  string          `json:"prompt"`
}

// SavePromptResponse confirms a saved prompt and names its session.
type SavePromptResponse struct {
	Success   bool      `json:"success"`
	SessionID uuid.UUID `json:"sessionId"`
}

// SavedPromptsRequest is the body for the get-saved-prompts endpoint.
// Search matches against idea and prompt text; sort accepts a
// comma-separated field list with "-" for descending.
type SavedPromptsRequest struct {
	UserID *uuid.UUID            `json:"userId"`
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
	Search *string               `json:"search,omitempty"`
	Sort   pagination.SortFields `json:"sort,omitempty"`
}

// SavedPromptsResponse carries a page of saved prompts.
type SavedPromptsResponse struct {
	Prompts []SavedPrompt `json:"prompts"`
	Total   int           `json:"total"`
}

// DeleteResponse confirms a session delete.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "sessions"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for session endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/save-prompt", Handler: h.SavePrompt},
			{Method: "POST", Pattern: "/get-saved-prompts", Handler: h.SavedPrompts},
			{Method: "DELETE", Pattern: "/delete-prompt", Handler: h.Delete},
		},
		Children: []routes.Group{
			{
				Prefix: "/sessions",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.CreateOrUpdate},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find},
					{Method: "GET", Pattern: "/{id}/answers", Handler: h.Answers},
					{Method: "PUT", Pattern: "/{id}/answers", Handler: h.UpsertAnswer},
				},
			},
		},
	}
}

// SavePrompt persists a completed idea/answers/prompt triad for an
// authenticated owner. Answer writes are best-effort; the prompt write is not.
func (h *Handler) SavePrompt(w http.ResponseWriter, r *http.Request) {
	var req SavePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.UserID == nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrOwnerRequired)
		return
	}

	session, err := h.sys.CreateOrUpdate(r.Context(), CreateOrUpdateCommand{
		AppIdea: req.AppIdea,
		UserID:  req.UserID,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	for _, answer := range req.Answers {
		if _, err := h.sys.UpsertAnswer(r.Context(), session.ID, answer); err != nil {
			h.logger.Warn("answer save failed",
				"session_id", session.ID,
				"question", answer.Question,
				"error", err,
			)
		}
	}

	if err := h.sys.SaveGeneratedPrompt(r.Context(), session.ID, req.Prompt); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SavePromptResponse{
		Success:   true,
		SessionID: session.ID,
	})
}

// SavedPrompts returns the caller's saved prompts, newest first.
func (h *Handler) SavedPrompts(w http.ResponseWriter, r *http.Request) {
	var req SavedPromptsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.UserID == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrOwnerRequired)
		return
	}

	page := pagination.FromOffset(req.Offset, req.Limit, h.pagination)
	page.Search = req.Search
	page.Sort = req.Sort

	result, err := h.sys.ListSaved(r.Context(), *req.UserID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SavedPromptsResponse{
		Prompts: result.Data,
		Total:   result.Total,
	})
}

// Delete removes a saved session after verifying ownership.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFoundOrForbidden)
		return
	}

	ownerID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrOwnerRequired)
		return
	}

	if err := h.sys.Delete(r.Context(), id, ownerID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DeleteResponse{
		Success: true,
		Message: "prompt deleted",
	})
}

// CreateOrUpdate creates a session or updates an existing session's idea text.
func (h *Handler) CreateOrUpdate(w http.ResponseWriter, r *http.Request) {
	var cmd CreateOrUpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	session, err := h.sys.CreateOrUpdate(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	status := http.StatusOK
	if cmd.SessionID == nil {
		status = http.StatusCreated
	}
	handlers.RespondJSON(w, status, session)
}

// Find returns a single session by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrSessionNotFound)
		return
	}

	session, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// Answers returns all clarifying answers for a session in answer order.
func (h *Handler) Answers(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrSessionNotFound)
		return
	}

	answers, err := h.sys.Answers(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, answers)
}

// UpsertAnswer writes one clarifying answer for a session.
func (h *Handler) UpsertAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrSessionNotFound)
		return
	}

	var cmd AnswerCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	answer, err := h.sys.UpsertAnswer(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, answer)
}
