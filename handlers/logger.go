package handlers

import (
	"agendamento/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped logger set by RequestLogger, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// currentUserID returns the id set by JWTAuthUserMiddleware.
func currentUserID(c *gin.Context) (string, bool) {
	id := c.GetString("userID")
	return id, id != ""
}
