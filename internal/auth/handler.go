package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"promptcraft/pkg/handlers"
	"promptcraft/pkg/routes"
)

// Handler provides HTTP endpoints for auth operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// MagicLinkRequest carries a passwordless sign-in request.
type MagicLinkRequest struct {
	Email string `json:"email"`
}

// OAuthURLResponse carries the provider authorization URL.
type OAuthURLResponse struct {
	URL string `json:"url"`
}

// StatusResponse confirms an auth operation with no identity payload.
type StatusResponse struct {
	Success bool `json:"success"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "auth"),
	}
}

// Routes returns the route group definition for auth endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/me", Handler: h.Me},
			{Method: "GET", Pattern: "/profile", Handler: h.Profile},
			{Method: "POST", Pattern: "/sign-in", Handler: h.SignIn},
			{Method: "POST", Pattern: "/sign-up", Handler: h.SignUp},
			{Method: "POST", Pattern: "/magic-link", Handler: h.MagicLink},
			{Method: "GET", Pattern: "/oauth/url", Handler: h.OAuthURL},
			{Method: "GET", Pattern: "/oauth/callback", Handler: h.OAuthCallback},
			{Method: "POST", Pattern: "/sign-out", Handler: h.SignOut},
		},
	}
}

// Me returns the current identity, or 401 when signed out.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity := h.sys.Current()
	if identity == nil {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrNotSignedIn)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, identity)
}

// Profile returns the stored profile record for the current identity.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.sys.Profile(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}

// SignIn authenticates with email and password.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	identity, err := h.sys.SignIn(r.Context(), creds)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, identity)
}

// SignUp registers a new account.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	identity, err := h.sys.SignUp(r.Context(), creds)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, identity)
}

// MagicLink sends a one-time sign-in link.
func (h *Handler) MagicLink(w http.ResponseWriter, r *http.Request) {
	var req MagicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.MagicLink(r.Context(), req.Email); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Success: true})
}

// OAuthURL returns the provider authorization URL for the given state.
func (h *Handler) OAuthURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.sys.OAuthURL(r.URL.Query().Get("state"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, OAuthURLResponse{URL: url})
}

// OAuthCallback completes federated sign-in from an authorization code.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidCredentials)
		return
	}

	identity, err := h.sys.OAuthCallback(r.Context(), code)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, identity)
}

// SignOut clears the session with a bounded remote wait.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.SignOut(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Success: true})
}
