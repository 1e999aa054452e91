package handlers

import (
	"context"
	"net/http"

	"homehelper/models"
	"homehelper/services/session"
	"homehelper/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionIDHeader carries the client's session identifier. Each value gets its
// own credential slots and recovery lifecycle.
const SessionIDHeader = "X-Session-ID"

// ProfileUpdater syncs profile changes to the identity backend so they
// survive beyond the session's cached snapshot.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID, name, phone string, address *models.Address) (*models.Identity, error)
}

// AuthHandler exposes the session lifecycle over HTTP.
type AuthHandler struct {
	Sessions *session.Manager
	Profiles ProfileUpdater
}

func (h *AuthHandler) storeFor(c *gin.Context) (*session.Store, bool) {
	sessionID := c.GetHeader(SessionIDHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + SessionIDHeader + " header"})
		return nil, false
	}
	store := h.Sessions.StoreFor(sessionID)
	store.Initialize(c.Request.Context())
	return store, true
}

// RegisterHandler creates an account and signs the session in.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	store, ok := h.storeFor(c)
	if !ok {
		return
	}

	var req models.RegisterData
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := store.Register(c.Request.Context(), req); err != nil {
		logger.Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	snap := store.Snapshot()
	c.JSON(http.StatusCreated, gin.H{
		"token":    store.Token(),
		"identity": snap.Identity,
	})
}

// LoginHandler authenticates the session.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	store, ok := h.storeFor(c)
	if !ok {
		return
	}

	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := store.Login(c.Request.Context(), req); err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	snap := store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"token":    store.Token(),
		"identity": snap.Identity,
	})
}

// LogoutHandler ends the session. Always succeeds from the client's point of
// view; backend revocation failures are logged server-side.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		return
	}

	store.Logout(c.Request.Context())
	h.Sessions.Drop(c.GetHeader(SessionIDHeader))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler returns the session snapshot: the identity when signed in, and
// the authentication flags either way.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	store, ok := h.storeFor(c)
	if !ok {
		return
	}

	snap := store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"identity":        snap.Identity,
		"isAuthenticated": snap.IsAuthenticated,
		"isLoading":       snap.IsLoading,
		"error":           snap.LastError,
	})
}

// UpdateProfileHandler writes partial identity fields to the backend, then
// merges them into the signed-in session so the cached snapshot matches the
// stored record.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	store, ok := h.storeFor(c)
	if !ok {
		return
	}

	snap := store.Snapshot()
	if !snap.IsAuthenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in", "redirect": utils.RouteLogin})
		return
	}

	var patch session.IdentityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		logger.Error("Invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if patch.Email != nil {
		// Email is the login key; changing it needs a re-verification flow,
		// not a profile patch.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Email cannot be changed here"})
		return
	}

	var name, phone string
	if patch.Name != nil {
		name = *patch.Name
	}
	if patch.Phone != nil {
		phone = *patch.Phone
	}
	if _, err := h.Profiles.UpdateProfile(c.Request.Context(), snap.Identity.ID, name, phone, nil); err != nil {
		logger.Error("Profile update failed", zap.String("userID", snap.Identity.ID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	store.UpdateIdentity(c.Request.Context(), patch)
	c.JSON(http.StatusOK, gin.H{"identity": store.Snapshot().Identity})
}
