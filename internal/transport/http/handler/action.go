package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/R3MiX9002/my-gemini-app/internal/pkg/logger"
)

// withAction tags the request logger with action and stores it back on the
// request so later error logging carries it too.
func withAction(c *gin.Context, action string) context.Context {
	ctx := logger.WithAction(c.Request.Context(), action)
	c.Request = c.Request.WithContext(ctx)
	return ctx
}
