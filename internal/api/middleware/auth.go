package middleware

import (
	"KLPoster/internal/pkg/consts"
	"KLPoster/internal/pkg/redis"
	"KLPoster/internal/pkg/response"
	"KLPoster/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the session JWT and injects the user identity
// into the request context. A blacklisted signature counts as expired.
func AuthMiddleware(checkBlacklist bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "token missing or malformed")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "token missing or malformed")
			c.Abort()
			return
		}

		if checkBlacklist {
			value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
			if err != nil {
				response.Fail(c, response.InternalServerError, "unexpected error")
				c.Abort()
				return
			}
			if value != "" {
				response.Fail(c, response.Unauthorized, "token invalid or expired")
				c.Abort()
				return
			}
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("guilds", claims.Guilds)
		c.Set("token", tokenString)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
