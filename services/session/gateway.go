package session

import (
	"context"

	"homehelper/models"
)

// AuthResult is what the identity backend returns on a successful login or
// registration.
type AuthResult struct {
	Token    string          `json:"token"`
	Identity models.Identity `json:"identity"`
}

// IdentityGateway abstracts the identity backend. The store treats it as an
// opaque boundary: roles come back as claims, never derived locally.
type IdentityGateway interface {
	Login(ctx context.Context, creds models.Credentials) (*AuthResult, error)
	Register(ctx context.Context, data models.RegisterData) (*AuthResult, error)
	// Logout is best-effort; the store swallows its errors.
	Logout(ctx context.Context, token string) error
	// FetchCurrentUser resolves a persisted token back to its identity.
	FetchCurrentUser(ctx context.Context, token string) (*models.Identity, error)
}

// CredentialStore persists the two session slots: the opaque auth token and a
// JSON identity snapshot. Both are written together on login/register success
// and cleared together on logout. Implementations must report absent or
// corrupt values as (zero, nil), never as a failure that would crash session
// recovery.
type CredentialStore interface {
	Save(ctx context.Context, token string, identity models.Identity) error
	LoadToken(ctx context.Context) (string, error)
	LoadIdentity(ctx context.Context) (*models.Identity, error)
	Clear(ctx context.Context) error
}
