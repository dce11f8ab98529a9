package web

import (
	"net/http"
	"strings"

	"tunr-web/internal/backend"
	"tunr-web/internal/logger"
	"tunr-web/internal/middleware"
	"tunr-web/internal/navigation"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidCredentials = "Invalid username or password. Please try again."
	msgCheckCredentials   = "Please check your credentials and try again."
	msgLoginFailed        = "Login failed. Please check your internet connection."
)

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// renderForm redraws a public form view with a message.
func (h *Handler) renderForm(c *gin.Context, status int, view navigation.View, msg string, form map[string]string) {
	sess := middleware.SessionFromContext(c.Request.Context())
	plan := h.router.Resolve("/"+string(view), sess)

	data := newPageData(plan, sess)
	data.Message = msg
	data.Form = form

	c.HTML(status, string(view), data)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, http.StatusBadRequest, navigation.ViewLogin, msgCheckCredentials, nil)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	form := map[string]string{"username": req.Username}

	if req.Username == "" || req.Password == "" {
		h.renderForm(c, http.StatusBadRequest, navigation.ViewLogin, msgCheckCredentials, form)
		return
	}

	accessor, ok := middleware.AccessorFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	res, err := h.api.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status, msg := loginFailure(err)
		logger.Warn("login failed", map[string]any{
			"status": backend.StatusOf(err),
			"error":  err.Error(),
		})
		h.renderForm(c, status, navigation.ViewLogin, msg, form)
		return
	}

	if err := accessor.SetSession(c.Request.Context(), res.Token, res.User); err != nil {
		logger.Error("session write failed", map[string]any{"error": err.Error()})
		h.renderForm(c, http.StatusInternalServerError, navigation.ViewLogin, msgLoginFailed, form)
		return
	}

	dest := consumeIntent(c, h.cookie.Secure)

	logger.Info("login succeeded", map[string]any{
		"username": res.User.Username,
		"redirect": dest,
	})

	c.Redirect(http.StatusSeeOther, dest)
}

// loginFailure maps a backend error to the response status and message.
func loginFailure(err error) (int, string) {
	switch backend.StatusOf(err) {
	case http.StatusUnauthorized:
		return http.StatusUnauthorized, msgInvalidCredentials
	case http.StatusBadRequest:
		return http.StatusBadRequest, msgCheckCredentials
	default:
		return http.StatusBadGateway, msgLoginFailed
	}
}
