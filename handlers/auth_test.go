package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homehelper/models"
	"homehelper/services/session"

	"github.com/gin-gonic/gin"
)

type identityGatewayStub struct{}

func (g *identityGatewayStub) Login(ctx context.Context, creds models.Credentials) (*session.AuthResult, error) {
	if creds.Email != "ana@example.com" || creds.Password != "secret123" {
		return nil, fmt.Errorf("invalid email or password")
	}
	return &session.AuthResult{
		Token:    "tok-1",
		Identity: models.Identity{ID: "u1", Email: "ana@example.com", Name: "Ana", Role: models.RoleUser},
	}, nil
}

func (g *identityGatewayStub) Register(ctx context.Context, data models.RegisterData) (*session.AuthResult, error) {
	return nil, fmt.Errorf("not implemented")
}

func (g *identityGatewayStub) Logout(ctx context.Context, token string) error { return nil }

func (g *identityGatewayStub) FetchCurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	return nil, fmt.Errorf("unknown token")
}

type profileCall struct {
	UserID string
	Name   string
	Phone  string
}

type profileUpdaterStub struct {
	calls []profileCall
	err   error
}

func (p *profileUpdaterStub) UpdateProfile(ctx context.Context, userID, name, phone string, address *models.Address) (*models.Identity, error) {
	p.calls = append(p.calls, profileCall{UserID: userID, Name: name, Phone: phone})
	if p.err != nil {
		return nil, p.err
	}
	return &models.Identity{ID: userID, Name: name, Phone: phone}, nil
}

func newAuthRouter(profiles *profileUpdaterStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	manager := session.NewManagerWithStores(&identityGatewayStub{}, func(sessionID string) session.CredentialStore {
		return session.NewMemoryCredentialStore()
	})
	h := &AuthHandler{Sessions: manager, Profiles: profiles}
	r := gin.New()
	r.POST("/login", h.LoginHandler)
	r.GET("/me", h.MeHandler)
	r.PATCH("/profile", h.UpdateProfileHandler)
	return r
}

func sessionRequest(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload := []byte{}
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionIDHeader, "s1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateProfileSyncsBackend(t *testing.T) {
	profiles := &profileUpdaterStub{}
	r := newAuthRouter(profiles)

	w := sessionRequest(t, r, http.MethodPost, "/login", gin.H{"email": "ana@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}

	w = sessionRequest(t, r, http.MethodPatch, "/profile", gin.H{"name": "Anna", "phone": "555"})
	if w.Code != http.StatusOK {
		t.Fatalf("profile update: status %d, body %s", w.Code, w.Body.String())
	}

	if len(profiles.calls) != 1 {
		t.Fatalf("backend saw %d profile updates, want 1", len(profiles.calls))
	}
	call := profiles.calls[0]
	if call.UserID != "u1" || call.Name != "Anna" || call.Phone != "555" {
		t.Fatalf("backend update = %+v, want u1/Anna/555", call)
	}

	w = sessionRequest(t, r, http.MethodGet, "/me", nil)
	var me struct {
		Identity *models.Identity `json:"identity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Identity == nil || me.Identity.Name != "Anna" || me.Identity.Phone != "555" {
		t.Fatalf("session identity = %+v, want merged Anna/555", me.Identity)
	}
}

func TestUpdateProfileBackendFailureLeavesSession(t *testing.T) {
	profiles := &profileUpdaterStub{err: fmt.Errorf("backend unavailable")}
	r := newAuthRouter(profiles)

	w := sessionRequest(t, r, http.MethodPost, "/login", gin.H{"email": "ana@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}

	w = sessionRequest(t, r, http.MethodPatch, "/profile", gin.H{"name": "Anna"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("profile update: status %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	// The local snapshot keeps the stored name when the backend rejects.
	w = sessionRequest(t, r, http.MethodGet, "/me", nil)
	var me struct {
		Identity *models.Identity `json:"identity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Identity == nil || me.Identity.Name != "Ana" {
		t.Fatalf("session identity = %+v, want unchanged Ana", me.Identity)
	}
}

func TestUpdateProfileRejectsEmailChange(t *testing.T) {
	profiles := &profileUpdaterStub{}
	r := newAuthRouter(profiles)

	w := sessionRequest(t, r, http.MethodPost, "/login", gin.H{"email": "ana@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}

	w = sessionRequest(t, r, http.MethodPatch, "/profile", gin.H{"email": "new@example.com"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("email change: status %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
	if len(profiles.calls) != 0 {
		t.Fatalf("backend saw %d profile updates, want 0", len(profiles.calls))
	}
}
