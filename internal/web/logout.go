package web

import (
	"net/http"

	"tunr-web/internal/logger"
	"tunr-web/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Logout drops the local session whatever the backend says.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.SessionFromContext(ctx)

	// 1. Invalidate the token upstream (best-effort)
	if sess.Token != "" {
		if err := h.api.Logout(ctx, sess.Token); err != nil {
			logger.Warn("backend logout failed", map[string]any{"error": err.Error()})
		}
	}

	// 2. Clear every session key
	if accessor, ok := middleware.AccessorFromContext(ctx); ok {
		if err := accessor.ClearSession(ctx); err != nil {
			logger.Error("session clear failed", map[string]any{"error": err.Error()})
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	clearIntent(c, h.cookie.Secure)

	logger.Info("logout", map[string]any{"username": sess.Username})

	c.Redirect(http.StatusSeeOther, "/")
}
