package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/response"
	"github.com/kirekcahs/codebrew-pos/pkg/utils"
)

// SessionKey is the gin context key the active *service.Session is stored
// under.
const SessionKey = "pos_session"

// AuthMiddleware validates the terminal session token and resolves the
// live session from the registry. A valid token whose session has been
// logged out (or lost to a restart) is still rejected.
func AuthMiddleware(jwtManager *utils.JWTManager, sessions *service.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateSessionToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		sess, ok := sessions.Get(claims.SessionID)
		if !ok {
			response.Unauthorized(c, "Session has ended, please sign in again")
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// RequireCapability gates a route group on the role capability table.
func RequireCapability(capability enum.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(SessionKey)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		sess, ok := value.(*service.Session)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if !sess.Context().Role.Can(capability) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}
