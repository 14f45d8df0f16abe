package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"promptcraft/internal/config"
)

// client is a thin REST client for the hosted auth service's identity
// endpoints (password grants, signup, one-time links, logout).
type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func newClient(cfg *config.AuthConfig) *client {
	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID       uuid.UUID `json:"id"`
		Email    string    `json:"email"`
		Metadata struct {
			FullName string `json:"full_name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

func (t *tokenResponse) identity() *Identity {
	return &Identity{
		ID:           t.User.ID,
		Email:        t.User.Email,
		DisplayName:  t.User.Metadata.FullName,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(t.ExpiresIn) * time.Second),
	}
}

func (c *client) signIn(ctx context.Context, email, password string) (*Identity, error) {
	body := map[string]string{"email": email, "password": password}

	var token tokenResponse
	status, err := c.post(ctx, "/token?grant_type=password", "", body, &token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, status)
	}

	return token.identity(), nil
}

func (c *client) signUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"full_name": displayName},
	}

	var token tokenResponse
	status, err := c.post(ctx, "/signup", "", body, &token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
		return nil, ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, status)
	}

	return token.identity(), nil
}

func (c *client) magicLink(ctx context.Context, email string) error {
	body := map[string]any{"email": email, "create_user": true}

	status, err := c.post(ctx, "/otp", "", body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUpstream, status)
	}
	return nil
}

func (c *client) signOut(ctx context.Context, accessToken string) error {
	status, err := c.post(ctx, "/logout", accessToken, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("%w: status %d", ErrUpstream, status)
	}
	return nil
}

func (c *client) post(ctx context.Context, path, bearer string, body, out any) (int, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
		}
	}

	return resp.StatusCode, nil
}
