package web

import (
	"net/http"

	"tunr-web/internal/logger"
	"tunr-web/internal/middleware"
	"tunr-web/internal/navigation"

	"github.com/gin-gonic/gin"
)

// Page answers a navigation: render the resolved view or send the visitor
// to log in.
func (h *Handler) Page(c *gin.Context) {
	sess := middleware.SessionFromContext(c.Request.Context())

	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		plan := navigation.RenderPlan{Path: c.Request.URL.Path, View: navigation.ViewNotFound}
		c.HTML(http.StatusNotFound, string(navigation.ViewNotFound), newPageData(plan, sess))
		return
	}

	plan := h.router.Resolve(c.Request.URL.Path, sess)

	if plan.Outcome == navigation.OutcomeRedirect {
		logger.Debug("navigation redirected", map[string]any{
			"from": plan.From,
			"to":   plan.Redirect,
		})
		setIntent(c, plan.From, h.cookie.Secure)
		c.Redirect(http.StatusFound, plan.Redirect)
		return
	}

	data := newPageData(plan, sess)
	status := http.StatusOK

	switch plan.View {
	case navigation.ViewNotFound:
		status = http.StatusNotFound
	case navigation.ViewMusic:
		h.loadMusic(c, &data)
	}

	c.HTML(status, string(plan.View), data)
}

// loadMusic fills the connection status; failures leave it unknown.
func (h *Handler) loadMusic(c *gin.Context, data *pageData) {
	st, err := h.api.MusicStatus(c.Request.Context(), data.Session.Token)
	if err != nil {
		logger.Warn("music status unavailable", map[string]any{"error": err.Error()})
		return
	}
	data.Music = st
	data.MusicKnown = true
}
