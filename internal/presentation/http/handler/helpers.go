package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/middleware"
)

// getSession pulls the authenticated session out of the gin context. It
// returns nil after writing a 401 when the auth middleware did not run.
func getSession(c *gin.Context) *service.Session {
	value, exists := c.Get(middleware.SessionKey)
	if !exists {
		c.AbortWithStatusJSON(401, gin.H{
			"success": false,
			"message": "Not authenticated",
		})
		return nil
	}
	sess, ok := value.(*service.Session)
	if !ok {
		c.AbortWithStatusJSON(401, gin.H{
			"success": false,
			"message": "Not authenticated",
		})
		return nil
	}
	return sess
}
