package auth

import "context"

// System defines the public contract for the auth gateway.
type System interface {
	Handler() *Handler

	Current() *Identity
	Profile(ctx context.Context) (*Profile, error)
	SignIn(ctx context.Context, creds Credentials) (*Identity, error)
	SignUp(ctx context.Context, creds Credentials) (*Identity, error)
	MagicLink(ctx context.Context, email string) error
	OAuthURL(state string) (string, error)
	OAuthCallback(ctx context.Context, code string) (*Identity, error)
	SignOut(ctx context.Context) error
}
