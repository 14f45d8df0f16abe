package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"promptcraft/internal/config"
)

// oauthFlow handles federated sign-in against a configured OIDC provider.
type oauthFlow struct {
	config   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

func newOAuthFlow(ctx context.Context, cfg *config.AuthConfig) (*oauthFlow, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("discover issuer: %w", err)
	}

	return &oauthFlow{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (f *oauthFlow) authURL(state string) string {
	return f.config.AuthCodeURL(state)
}

// exchange trades an authorization code for a verified identity.
func (f *oauthFlow) exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", ErrUpstream, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("%w: no id_token in response", ErrUpstream)
	}

	idToken, err := f.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: verify id_token: %v", ErrUpstream, err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %v", ErrUpstream, err)
	}

	// Federated subjects are not UUIDs; derive a stable one per subject.
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(idToken.Subject))

	return &Identity{
		ID:           id,
		Email:        claims.Email,
		DisplayName:  claims.Name,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}, nil
}
