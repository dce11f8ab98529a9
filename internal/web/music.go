package web

import (
	"net/http"

	"tunr-web/internal/middleware"
	"tunr-web/internal/navigation"

	"github.com/gin-gonic/gin"
)

// MusicConnect sends a logged-in user to the backend's music login.
func (h *Handler) MusicConnect(c *gin.Context) {
	sess := middleware.SessionFromContext(c.Request.Context())

	if d := navigation.Guard(c.Request.URL.Path, sess); !d.Allow {
		setIntent(c, d.From, h.cookie.Secure)
		c.Redirect(http.StatusFound, d.Redirect)
		return
	}

	c.Redirect(http.StatusFound, h.api.MusicLoginURL(sess.Token))
}
