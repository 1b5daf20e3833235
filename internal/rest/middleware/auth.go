package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/subflow/subflow/internal/auth"
	"github.com/subflow/subflow/internal/config"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/types"
)

// AuthenticateMiddleware authenticates requests via a JWT bearer token in the
// Authorization header. It sets the user ID and admin capability flag in the
// request context for downstream handlers; capability enforcement itself
// happens explicitly at each operation's entry in the service layer.
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	authProvider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, types.CtxIsAdmin, claims.IsAdmin)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
