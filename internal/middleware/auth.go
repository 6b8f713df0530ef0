package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskassistant/internal/utils"
)

// ContextUserID is the gin context key set by OptionalAuth.
const ContextUserID = "user_id"

// OptionalAuth reads a bearer token when one is sent and exposes its user
// under ContextUserID. Requests are never rejected: the API identifies
// users by ids in paths and bodies, and the token is informational.
func OptionalAuth(secret []byte, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}
		claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			log.Debug("[auth][token][ignored]", zap.String("path", c.FullPath()), zap.Error(err))
			c.Next()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
