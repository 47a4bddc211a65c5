package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gigbud/internal/repository"
	"gigbud/internal/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token on every protected route:
// header shape, blacklist veto, signature/expiry, and that the subject still
// resolves to a user. On success it exposes user_id, email and role.
func AuthMiddleware(tokens *token.Manager, blacklistRepo repository.BlacklistRepository, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := parts[1]

		blacklisted, err := blacklistRepo.IsBlacklisted(tokenString, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to validate token",
			})
			c.Abort()
			return
		}
		if blacklisted {
			abortUnauthorized(c, "Token has been revoked")
			return
		}

		claims, err := tokens.VerifyAccess(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if _, err := userRepo.FindByID(claims.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortUnauthorized(c, "Account no longer exists")
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to resolve account",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

// CORSMiddleware allows the configured frontend origin.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
