package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homehelper/config"
	"homehelper/models"
	"homehelper/services/session"
	"homehelper/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func tokenTTL() time.Duration {
	hours := config.AppConfig.TokenTTLHours
	if hours <= 0 {
		hours = 72
	}
	return time.Duration(hours) * time.Hour
}

// Login verifies credentials and issues a fresh token. The token's hash is
// stored on the user record and cached so middleware can validate cheaply.
func (s *DefaultIdentityService) Login(ctx context.Context, creds models.Credentials) (*session.AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("identity: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(ctx, userRec)
}

// Register creates a user account and signs it in. The role defaults to
// RoleUser and must be one of the known roles; admins are provisioned out of
// band, not via self-registration.
func (s *DefaultIdentityService) Register(ctx context.Context, data models.RegisterData) (*session.AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(data.Email))
	if email == "" || data.Password == "" || data.Name == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	role := data.Role
	if role == "" {
		role = models.RoleUser
	}
	if role == models.RoleAdmin || !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", data.Role)
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("identity: failed to check existing email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userRec := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         data.Name,
		Role:         role,
		Phone:        data.Phone,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(userRec); err != nil {
		utils.GetLogger().Error("identity: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(ctx, userRec)
}

func (s *DefaultIdentityService) issueToken(ctx context.Context, userRec *models.User) (*session.AuthResult, error) {
	token, err := utils.GenerateToken(userRec.ID, userRec.Email, string(userRec.Role), tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(userRec.ID, bson.M{"token_hash": tokenHash}); err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if s.AuthCache != nil {
		cacheKey := utils.AuthCachePrefix + userRec.ID
		if err := s.AuthCache.Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("identity: failed to warm auth cache", zap.Error(err))
		}
	}

	return &session.AuthResult{Token: token, Identity: userRec.Safe()}, nil
}

// Logout revokes the token: the stored hash is cleared and the cache entry
// dropped, so the token no longer authenticates.
func (s *DefaultIdentityService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	if err := s.Repo.UpdateSetDocument(claims.UserID, bson.M{"token_hash": ""}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.AuthCache != nil {
		_ = s.AuthCache.Del(ctx, utils.AuthCachePrefix+claims.UserID).Err()
	}
	return nil
}

// FetchCurrentUser resolves a token to its identity, rejecting tokens whose
// hash no longer matches the stored one (revoked or superseded).
func (s *DefaultIdentityService) FetchCurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	userRec, err := s.Repo.GetByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return nil, fmt.Errorf("user not found")
	}
	if userRec.TokenHash == "" || userRec.TokenHash != utils.HashToken(token) {
		return nil, fmt.Errorf("token revoked")
	}

	identity := userRec.Safe()
	return &identity, nil
}

// UpdateProfile applies a partial profile update and returns the fresh
// identity view.
func (s *DefaultIdentityService) UpdateProfile(ctx context.Context, userID string, name, phone string, address *models.Address) (*models.Identity, error) {
	set := bson.M{}
	if name != "" {
		set["name"] = name
	}
	if phone != "" {
		set["phone"] = phone
	}
	if address != nil {
		set["address"] = address
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}

	if err := s.Repo.UpdateSetDocument(userID, set); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	userRec, err := s.Repo.GetByID(userID)
	if err != nil || userRec == nil {
		return nil, fmt.Errorf("failed to fetch updated profile: %w", err)
	}
	identity := userRec.Safe()
	return &identity, nil
}

// GetAllUsers lists every user's identity view. Admin use.
func (s *DefaultIdentityService) GetAllUsers(ctx context.Context) ([]models.Identity, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	identities := make([]models.Identity, 0, len(users))
	for i := range users {
		identities = append(identities, users[i].Safe())
	}
	return identities, nil
}
