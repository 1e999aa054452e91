// Package session owns the authenticated identity and its lifecycle: initial
// recovery from persisted credentials, login/register/logout, and the derived
// role predicates every other component consults.
package session

import (
	"context"
	"sync"

	"homehelper/models"
	"homehelper/utils"

	"go.uber.org/zap"
)

// Fallback messages used when the gateway fails without a message of its own.
const (
	loginFailedMessage    = "Login failed"
	registerFailedMessage = "Registration failed"
)

// Store is the single source of truth for authentication state. Construct one
// per client session with New and inject it at the composition root; no other
// component mutates its state directly.
type Store struct {
	gateway IdentityGateway
	creds   CredentialStore
	logger  *zap.Logger

	mu            sync.Mutex
	initOnce      sync.Once
	identity      *models.Identity
	token         string
	authenticated bool
	loading       bool
	lastError     string
}

// Snapshot is an immutable view of the store's state.
type Snapshot struct {
	Identity        *models.Identity
	IsAuthenticated bool
	IsLoading       bool
	LastError       string
}

// New constructs a Store. The store starts in the loading state; call
// Initialize to recover any persisted session.
func New(gateway IdentityGateway, creds CredentialStore) *Store {
	return &Store{
		gateway: gateway,
		creds:   creds,
		logger:  utils.GetLogger(),
		loading: true,
	}
}

// Initialize checks for a persisted token and re-derives the session from it.
// Any failure, including corrupt persisted state, degrades silently to the
// logged-out state. It runs exactly once per store; later calls are no-ops,
// so it cannot race a login that already completed.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() { s.recover(ctx) })
}

func (s *Store) recover(ctx context.Context) {
	token, err := s.creds.LoadToken(ctx)
	if err != nil || token == "" {
		if err != nil {
			s.logger.Warn("session: credential store unreadable, treating as no session", zap.Error(err))
		}
		s.setLoggedOut("")
		return
	}

	identity, err := s.gateway.FetchCurrentUser(ctx, token)
	if err != nil || identity == nil {
		s.logger.Info("session: persisted token rejected, clearing credentials", zap.Error(err))
		if clearErr := s.creds.Clear(ctx); clearErr != nil {
			s.logger.Warn("session: failed to clear stale credentials", zap.Error(clearErr))
		}
		s.setLoggedOut("")
		return
	}

	s.mu.Lock()
	s.identity = identity
	s.token = token
	s.authenticated = true
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
}

// Login authenticates with the gateway. On success the returned token and
// identity are persisted together. On failure the gateway message is recorded
// as LastError and the error is returned so the caller can react; the caller
// is responsible for disabling its submit control while IsLoading.
func (s *Store) Login(ctx context.Context, creds models.Credentials) error {
	return s.authenticate(ctx, loginFailedMessage, func() (*AuthResult, error) {
		return s.gateway.Login(ctx, creds)
	})
}

// Register creates an account and signs in, with the same contract as Login.
func (s *Store) Register(ctx context.Context, data models.RegisterData) error {
	return s.authenticate(ctx, registerFailedMessage, func() (*AuthResult, error) {
		return s.gateway.Register(ctx, data)
	})
}

func (s *Store) authenticate(ctx context.Context, fallback string, call func() (*AuthResult, error)) error {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	result, err := call()
	if err != nil {
		message := err.Error()
		if message == "" {
			message = fallback
		}
		s.setLoggedOut(message)
		return err
	}

	if saveErr := s.creds.Save(ctx, result.Token, result.Identity); saveErr != nil {
		s.logger.Warn("session: failed to persist credentials", zap.Error(saveErr))
	}

	s.mu.Lock()
	identity := result.Identity
	s.identity = &identity
	s.token = result.Token
	s.authenticated = true
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// Logout calls the gateway best-effort, then unconditionally clears the
// persisted credentials and resets to the logged-out state. It never fails
// observably.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if err := s.gateway.Logout(ctx, token); err != nil {
			s.logger.Warn("session: logout call failed, clearing local state anyway", zap.Error(err))
		}
	}
	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Warn("session: failed to clear credentials on logout", zap.Error(err))
	}
	s.setLoggedOut("")
}

// IdentityPatch carries a partial identity update. Nil fields are left as-is.
type IdentityPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// UpdateIdentity shallow-merges the patch into the current identity and
// re-persists the snapshot. It does not call the gateway; syncing the change
// to the backend is the caller's concern. No-op when logged out.
func (s *Store) UpdateIdentity(ctx context.Context, patch IdentityPatch) {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return
	}
	if patch.Name != nil {
		s.identity.Name = *patch.Name
	}
	if patch.Email != nil {
		s.identity.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.identity.Phone = *patch.Phone
	}
	identity := *s.identity
	token := s.token
	s.mu.Unlock()

	if err := s.creds.Save(ctx, token, identity); err != nil {
		s.logger.Warn("session: failed to re-persist identity", zap.Error(err))
	}
}

func (s *Store) setLoggedOut(lastError string) {
	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.authenticated = false
	s.loading = false
	s.lastError = lastError
	s.mu.Unlock()
}

// Snapshot returns the current state. The identity is copied so callers
// cannot mutate store state through it.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		IsAuthenticated: s.authenticated,
		IsLoading:       s.loading,
		LastError:       s.lastError,
	}
	if s.identity != nil {
		identity := *s.identity
		snap.Identity = &identity
	}
	return snap
}

// Token returns the current auth token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// HasRole reports whether the signed-in identity holds the given role.
func (s *Store) HasRole(role models.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil && s.identity.Role == role
}

// IsAdmin reports whether the signed-in identity is an administrator.
func (s *Store) IsAdmin() bool { return s.HasRole(models.RoleAdmin) }

// IsProvider reports whether the signed-in identity is a service provider.
func (s *Store) IsProvider() bool { return s.HasRole(models.RoleProvider) }

// IsUser reports whether the signed-in identity is a customer.
func (s *Store) IsUser() bool { return s.HasRole(models.RoleUser) }

// CanAccess reports whether the signed-in identity holds one of the given
// roles. False when logged out.
func (s *Store) CanAccess(roles []models.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return false
	}
	for _, r := range roles {
		if r == s.identity.Role {
			return true
		}
	}
	return false
}
