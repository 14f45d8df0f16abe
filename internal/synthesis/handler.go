package synthesis

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"promptcraft/internal/catalog"
	"promptcraft/pkg/handlers"
	"promptcraft/pkg/routes"
)

// Handler provides HTTP endpoints for synthesis operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// QuestionsRequest is the body for the generate-questions endpoint.
type QuestionsRequest struct {
	AppIdea string `json:"appIdea"`
}

// QuestionsResponse carries the generated clarifying questions.
type QuestionsResponse struct {
	Questions []catalog.QuestionDefinition `json:"questions"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "synthesis"),
	}
}

// Routes returns the route group definition for synthesis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/generate-prompt", Handler: h.GeneratePrompt},
			{Method: "POST", Pattern: "/generate-questions", Handler: h.GenerateQuestions},
		},
	}
}

// GeneratePrompt synthesizes an implementation-ready prompt from a session
// or a direct idea/answers submission.
func (h *Handler) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	var cmd GenerateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.GeneratePrompt(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GenerateQuestions asks the model for idea-specific clarifying questions.
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req QuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	questions, err := h.sys.GenerateQuestions(r.Context(), req.AppIdea)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, QuestionsResponse{Questions: questions})
}
