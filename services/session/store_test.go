package session

import (
	"context"
	"errors"
	"testing"

	"homehelper/models"
)

type gatewayStub struct {
	loginResult    *AuthResult
	loginErr       error
	registerResult *AuthResult
	registerErr    error
	fetchIdentity  *models.Identity
	fetchErr       error
	logoutErr      error

	loginCalls  int
	fetchCalls  int
	logoutCalls int
}

func (g *gatewayStub) Login(ctx context.Context, creds models.Credentials) (*AuthResult, error) {
	g.loginCalls++
	return g.loginResult, g.loginErr
}

func (g *gatewayStub) Register(ctx context.Context, data models.RegisterData) (*AuthResult, error) {
	return g.registerResult, g.registerErr
}

func (g *gatewayStub) Logout(ctx context.Context, token string) error {
	g.logoutCalls++
	return g.logoutErr
}

func (g *gatewayStub) FetchCurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	g.fetchCalls++
	return g.fetchIdentity, g.fetchErr
}

func testIdentity(role models.Role) models.Identity {
	return models.Identity{ID: "u1", Email: "jo@example.com", Name: "Jo", Role: role}
}

func TestLoginSuccessPersistsBothSlots(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentialStore()
	gw := &gatewayStub{loginResult: &AuthResult{Token: "tok-1", Identity: testIdentity(models.RoleUser)}}
	store := New(gw, creds)

	if err := store.Login(ctx, models.Credentials{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	snap := store.Snapshot()
	if !snap.IsAuthenticated || snap.IsLoading || snap.LastError != "" {
		t.Fatalf("unexpected state after login: %+v", snap)
	}
	if snap.Identity == nil || snap.Identity.ID != "u1" {
		t.Fatalf("expected identity set, got %+v", snap.Identity)
	}

	token, _ := creds.LoadToken(ctx)
	if token != "tok-1" {
		t.Fatalf("expected persisted token, got %q", token)
	}
	identity, _ := creds.LoadIdentity(ctx)
	if identity == nil || identity.Email != "jo@example.com" {
		t.Fatalf("expected persisted identity snapshot, got %+v", identity)
	}
}

func TestLoginFailureRecordsGatewayMessage(t *testing.T) {
	ctx := context.Background()
	gw := &gatewayStub{loginErr: errors.New("Invalid email or password")}
	store := New(gw, NewMemoryCredentialStore())

	err := store.Login(ctx, models.Credentials{Email: "bad@x.com", Password: "wrong"})
	if err == nil {
		t.Fatal("expected login error to propagate to the caller")
	}

	snap := store.Snapshot()
	if snap.LastError != "Invalid email or password" {
		t.Fatalf("expected gateway message recorded, got %q", snap.LastError)
	}
	if snap.IsAuthenticated {
		t.Fatal("expected session to remain unauthenticated")
	}
	if snap.IsLoading {
		t.Fatal("expected loading to end after failure")
	}
}

func TestInitializeWithoutTokenEndsLoggedOut(t *testing.T) {
	store := New(&gatewayStub{}, NewMemoryCredentialStore())

	snap := store.Snapshot()
	if !snap.IsLoading {
		t.Fatal("expected store to start in the loading state")
	}

	store.Initialize(context.Background())

	snap = store.Snapshot()
	if snap.IsAuthenticated || snap.IsLoading {
		t.Fatalf("expected logged-out resolved state, got %+v", snap)
	}
}

func TestInitializeRecoversPersistedSession(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentialStore()
	identity := testIdentity(models.RoleProvider)
	if err := creds.Save(ctx, "tok-9", identity); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	gw := &gatewayStub{fetchIdentity: &identity}
	store := New(gw, creds)
	store.Initialize(ctx)

	snap := store.Snapshot()
	if !snap.IsAuthenticated || snap.Identity == nil || snap.Identity.Role != models.RoleProvider {
		t.Fatalf("expected recovered provider session, got %+v", snap)
	}
	if store.Token() != "tok-9" {
		t.Fatalf("expected recovered token, got %q", store.Token())
	}
}

func TestInitializeExpiredTokenClearsCredentials(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentialStore()
	_ = creds.Save(ctx, "stale", testIdentity(models.RoleUser))

	gw := &gatewayStub{fetchErr: errors.New("token expired")}
	store := New(gw, creds)
	store.Initialize(ctx)

	snap := store.Snapshot()
	if snap.IsAuthenticated || snap.IsLoading {
		t.Fatalf("expected logged-out state, got %+v", snap)
	}
	if token, _ := creds.LoadToken(ctx); token != "" {
		t.Fatalf("expected stale token cleared, got %q", token)
	}
}

func TestInitializeWithCorruptedIdentitySlot(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentialStore()
	creds.Corrupt("tok-7")

	gw := &gatewayStub{fetchErr: errors.New("unknown token")}
	store := New(gw, creds)
	store.Initialize(ctx)

	snap := store.Snapshot()
	if snap.IsAuthenticated || snap.IsLoading {
		t.Fatalf("expected silent downgrade to logged out, got %+v", snap)
	}
	if identity, err := creds.LoadIdentity(ctx); err != nil || identity != nil {
		t.Fatalf("expected corrupt slot to read as absent, got %+v err=%v", identity, err)
	}
}

func TestInitializeRunsOnce(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentialStore()
	identity := testIdentity(models.RoleUser)
	_ = creds.Save(ctx, "tok-1", identity)

	gw := &gatewayStub{fetchIdentity: &identity}
	store := New(gw, creds)
	store.Initialize(ctx)
	store.Initialize(ctx)

	if gw.fetchCalls != 1 {
		t.Fatalf("expected a single recovery check, got %d", gw.fetchCalls)
	}
}

func TestLogoutSwallowsGatewayError(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentialStore()
	gw := &gatewayStub{
		loginResult: &AuthResult{Token: "tok-1", Identity: testIdentity(models.RoleUser)},
		logoutErr:   errors.New("backend unavailable"),
	}
	store := New(gw, creds)
	if err := store.Login(ctx, models.Credentials{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	store.Logout(ctx)

	snap := store.Snapshot()
	if snap.IsAuthenticated || snap.Identity != nil || snap.LastError != "" {
		t.Fatalf("expected clean logged-out state, got %+v", snap)
	}
	if token, _ := creds.LoadToken(ctx); token != "" {
		t.Fatalf("expected credentials cleared, got token %q", token)
	}
	if gw.logoutCalls != 1 {
		t.Fatalf("expected one best-effort logout call, got %d", gw.logoutCalls)
	}
}

func TestUpdateIdentityMergesAndRepersists(t *testing.T) {
	ctx := context.Background()
	creds := NewMemoryCredentialStore()
	gw := &gatewayStub{loginResult: &AuthResult{Token: "tok-1", Identity: testIdentity(models.RoleUser)}}
	store := New(gw, creds)
	_ = store.Login(ctx, models.Credentials{Email: "jo@example.com", Password: "pw"})

	name := "Jo Updated"
	store.UpdateIdentity(ctx, IdentityPatch{Name: &name})

	snap := store.Snapshot()
	if snap.Identity.Name != "Jo Updated" {
		t.Fatalf("expected merged name, got %q", snap.Identity.Name)
	}
	if snap.Identity.Email != "jo@example.com" {
		t.Fatalf("expected untouched email, got %q", snap.Identity.Email)
	}

	persisted, _ := creds.LoadIdentity(ctx)
	if persisted == nil || persisted.Name != "Jo Updated" {
		t.Fatalf("expected re-persisted snapshot, got %+v", persisted)
	}
}

func TestUpdateIdentityNoopWhenLoggedOut(t *testing.T) {
	store := New(&gatewayStub{}, NewMemoryCredentialStore())
	name := "ghost"
	store.UpdateIdentity(context.Background(), IdentityPatch{Name: &name})

	if snap := store.Snapshot(); snap.Identity != nil {
		t.Fatalf("expected no identity, got %+v", snap.Identity)
	}
}

func TestRolePredicates(t *testing.T) {
	ctx := context.Background()
	gw := &gatewayStub{loginResult: &AuthResult{Token: "t", Identity: testIdentity(models.RoleAdmin)}}
	store := New(gw, NewMemoryCredentialStore())

	if store.CanAccess([]models.Role{models.RoleAdmin}) {
		t.Fatal("expected CanAccess false while logged out")
	}

	_ = store.Login(ctx, models.Credentials{Email: "jo@example.com", Password: "pw"})

	if !store.IsAdmin() || store.IsProvider() || store.IsUser() {
		t.Fatal("expected admin-only predicates")
	}
	if !store.CanAccess([]models.Role{models.RoleUser, models.RoleAdmin}) {
		t.Fatal("expected CanAccess true for allowed role")
	}
	if store.CanAccess([]models.Role{models.RoleProvider}) {
		t.Fatal("expected CanAccess false for disallowed role")
	}
}
