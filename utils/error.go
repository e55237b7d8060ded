package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Erro interno do servidor."})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string) {
	if status >= http.StatusInternalServerError {
		GetLogger().Error(message, zap.String("path", c.Request.URL.Path), zap.Int("status", status))
	} else {
		GetLogger().Warn(message, zap.String("path", c.Request.URL.Path), zap.Int("status", status))
	}
	c.JSON(status, ErrorResponse{Error: message})
}
