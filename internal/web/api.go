package web

import (
	"net/http"

	"tunr-web/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SessionInfo reports the session and, for ?path=, how that path would
// resolve. The token is never echoed.
func (h *Handler) SessionInfo(c *gin.Context) {
	sess := middleware.SessionFromContext(c.Request.Context())

	body := gin.H{
		"is_logged_in": sess.IsLoggedIn,
		"username":     sess.Username,
	}

	if path := c.Query("path"); path != "" {
		plan := h.router.Resolve(path, sess)
		body["path"] = plan.Path
		body["outcome"] = plan.Outcome.String()
		body["view"] = plan.View
		body["show_nav"] = plan.ShowNav
		if plan.Redirect != "" {
			body["redirect"] = plan.Redirect
		}
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, body)
}
