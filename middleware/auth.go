package middleware

import (
	"net/http"
	"strings"

	userRepo "healthhub/database/repository/user"
	"healthhub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Context keys populated by JWTAuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// JWTAuthMiddleware validates the bearer token and binds the authenticated
// user to the request context. The token hash is checked against the auth
// cache first and falls back to the user record, so a logout or token
// rotation invalidates older tokens immediately.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		if !tokenHashValid(c, users, userID, computedHash) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

func tokenHashValid(c *gin.Context, users userRepo.UserRepository, userID, computedHash string) bool {
	cache := utils.GetAuthCacheClient()
	if cache != nil {
		cached, err := cache.Get(c.Request.Context(), utils.AuthCachePrefix+userID).Result()
		if err == nil {
			return cached == computedHash
		}
	}

	user, err := users.GetByIDWithProjection(userID, bson.M{"id": 1, "tokenHash": 1, "isActive": 1})
	if err != nil || user == nil || !user.IsActive {
		return false
	}
	return user.TokenHash == computedHash
}

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. It must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
