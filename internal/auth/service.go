package auth

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"promptcraft/internal/config"
)

type service struct {
	cfg      *config.AuthConfig
	client   *client
	flow     *oauthFlow
	identity *IdentityContext
	profiles *profileRepo
	logger   *slog.Logger
}

// New creates the auth gateway. An unconfigured auth service leaves the
// gateway in a disabled state where every operation returns ErrDisabled;
// an unreachable OIDC issuer disables only federated sign-in.
func New(
	cfg *config.AuthConfig,
	db *sql.DB,
	identity *IdentityContext,
	logger *slog.Logger,
) System {
	logger = logger.With("system", "auth")

	s := &service{
		cfg:      cfg,
		identity: identity,
		profiles: newProfileRepo(db, logger),
		logger:   logger,
	}

	if cfg.Enabled() {
		s.client = newClient(cfg)
	}

	if cfg.Issuer != "" {
		flow, err := newOAuthFlow(context.Background(), cfg)
		if err != nil {
			logger.Warn("oidc discovery failed, oauth sign-in disabled", "error", err)
		} else {
			s.flow = flow
		}
	}

	return s
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Current() *Identity {
	return s.identity.Current()
}

// Profile returns the stored profile record for the current identity.
func (s *service) Profile(ctx context.Context) (*Profile, error) {
	current := s.identity.Current()
	if current == nil {
		return nil, ErrNotSignedIn
	}
	return s.profiles.find(ctx, current.ID)
}

func (s *service) SignIn(ctx context.Context, creds Credentials) (*Identity, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	identity, err := s.client.signIn(ctx, creds.Email, creds.Password)
	if err != nil {
		return nil, err
	}

	s.completeSignIn(ctx, identity)
	return identity, nil
}

func (s *service) SignUp(ctx context.Context, creds Credentials) (*Identity, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	identity, err := s.client.signUp(ctx, creds.Email, creds.Password, creds.DisplayName)
	if err != nil {
		return nil, err
	}

	s.completeSignIn(ctx, identity)
	return identity, nil
}

func (s *service) MagicLink(ctx context.Context, email string) error {
	if s.client == nil {
		return ErrDisabled
	}
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	return s.client.magicLink(ctx, email)
}

func (s *service) OAuthURL(state string) (string, error) {
	if s.flow == nil {
		return "", ErrOAuthUnavailable
	}
	return s.flow.authURL(state), nil
}

func (s *service) OAuthCallback(ctx context.Context, code string) (*Identity, error) {
	if s.flow == nil {
		return nil, ErrOAuthUnavailable
	}

	identity, err := s.flow.exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	s.completeSignIn(ctx, identity)
	return identity, nil
}

// SignOut revokes the remote session with a bounded wait. Local identity
// state is cleared once the call returns or the timeout expires, so a slow
// auth service can never wedge sign-out.
func (s *service) SignOut(ctx context.Context) error {
	current := s.identity.Current()
	if current == nil {
		return nil
	}

	if s.client != nil {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.SignOutTimeoutDuration())
		defer cancel()

		if err := s.client.signOut(ctx, current.AccessToken); err != nil {
			s.logger.Warn("remote sign-out failed", "error", err)
		}
	}

	s.identity.Clear()
	s.logger.Info("signed out", "id", current.ID)
	return nil
}

// completeSignIn records the identity and attempts the best-effort profile
// upsert. Profile failures never block authentication.
func (s *service) completeSignIn(ctx context.Context, identity *Identity) {
	s.identity.Set(identity)

	if err := s.profiles.upsert(ctx, identity.ID, identity.Email, identity.DisplayName); err != nil {
		s.logger.Warn("profile upsert failed", "id", identity.ID, "error", err)
	}

	s.logger.Info("signed in", "id", identity.ID)
}

func validateCredentials(creds Credentials) error {
	if strings.TrimSpace(creds.Email) == "" {
		return ErrEmailRequired
	}
	if creds.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}
