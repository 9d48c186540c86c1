package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-commerce-api/internal/users"
)

const userContextKey = "authUser"

// UserResolver loads a user record for an authenticated token.
type UserResolver interface {
	Get(ctx context.Context, userID string) (*users.User, error)
}

// Middleware authenticates requests with a bearer token and attaches the
// resolved user to the gin context.
func Middleware(tokens *Tokens, resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid token"})
			return
		}

		user, err := resolver.Get(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid token"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// AdminOnly rejects requests whose authenticated user is not an admin.
// Must run after Middleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.UserType != users.TypeAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Admins only."})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Middleware, or nil.
func CurrentUser(c *gin.Context) *users.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*users.User)
	return user
}
