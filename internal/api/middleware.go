package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradeflow/pulse/internal/models"
)

// userKey is the gin context key holding the resolved caller.
const userKey = "user"

// RequireIdentity resolves the caller from the development identity header.
// This is a stand-in for real authentication: the header carries the caller's
// email verbatim. Requests without a resolvable identity are rejected with 401.
func RequireIdentity(header string, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(header)
		if email == "" {
			abortWithError(c, NewError(http.StatusUnauthorized, "missing identity header"))
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			abortWithError(c, NewError(http.StatusInternalServerError, "failed to resolve identity"))
			return
		}
		if user == nil {
			abortWithError(c, NewError(http.StatusUnauthorized, "unknown user"))
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the caller resolved by RequireIdentity, or nil.
func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// RequestLogger logs each request with method, path, status and latency
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
