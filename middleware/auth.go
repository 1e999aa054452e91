package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "homehelper/database/repository/user"
	"homehelper/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "userRole"
)

// JWTAuthMiddleware validates the bearer token, checks its hash against the
// auth cache with a MongoDB fallback, and stores the user id and role on the
// request context.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil || claims.UserID == "" {
			unauthorized(c)
			return
		}
		computedHash := utils.HashToken(tokenString)

		cacheKey := utils.AuthCachePrefix + claims.UserID
		authCache := utils.GetAuthCacheClient()

		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					tokenMismatch(c)
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set(ContextUserIDKey, claims.UserID)
				c.Set(ContextRoleKey, claims.Role)
				c.Next()
				return
			}
			if err != redis.Nil {
				utils.GetLogger().Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		// Cache miss: verify against the stored hash.
		usr, err := users.GetByID(claims.UserID)
		if err != nil || usr == nil {
			unauthorized(c)
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			tokenMismatch(c)
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		c.Set(ContextUserIDKey, usr.ID)
		c.Set(ContextRoleKey, string(usr.Role))
		c.Next()
	}
}

// OptionalAuth parses the bearer token when present without requiring one.
// Public endpoints use it to personalize responses for signed-in sessions.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := utils.ExtractClaims(tokenString); err == nil {
				c.Set(ContextUserIDKey, claims.UserID)
				c.Set(ContextRoleKey, claims.Role)
			}
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "Insufficient authorization",
		"redirect": utils.RouteLogin,
		"from":     c.Request.URL.Path,
	})
}

func tokenMismatch(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "Token mismatch",
		"redirect": utils.RouteLogin,
		"from":     c.Request.URL.Path,
	})
}
