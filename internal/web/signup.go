package web

import (
	"errors"
	"net/http"
	"strings"

	"tunr-web/internal/backend"
	"tunr-web/internal/logger"
	"tunr-web/internal/middleware"
	"tunr-web/internal/navigation"

	"github.com/gin-gonic/gin"
)

const (
	msgFieldsRequired   = "All fields are required."
	msgPasswordMismatch = "Passwords do not match."
	msgSignupFailed     = "Signup failed. Please try again."
	msgSignupNoLogin    = "Account created, but we could not log you in. Please log in."
)

type signupRequest struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, http.StatusBadRequest, navigation.ViewSignup, msgFieldsRequired, nil)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	form := map[string]string{"username": req.Username, "email": req.Email}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		h.renderForm(c, http.StatusBadRequest, navigation.ViewSignup, msgFieldsRequired, form)
		return
	}
	if req.Password != req.PasswordConfirm {
		h.renderForm(c, http.StatusBadRequest, navigation.ViewSignup, msgPasswordMismatch, form)
		return
	}

	accessor, ok := middleware.AccessorFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ctx := c.Request.Context()

	res, err := h.api.Signup(ctx, backend.SignupRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, msg := signupFailure(err)
		logger.Warn("signup failed", map[string]any{
			"status": backend.StatusOf(err),
			"error":  err.Error(),
		})
		h.renderForm(c, status, navigation.ViewSignup, msg, form)
		return
	}

	// Some backend builds create the account without issuing a token.
	if res.Token == "" {
		login, err := h.api.Login(ctx, req.Username, req.Password)
		if err != nil {
			logger.Warn("login after signup failed", map[string]any{"error": err.Error()})
			h.renderForm(c, http.StatusOK, navigation.ViewLogin, msgSignupNoLogin, map[string]string{"username": req.Username})
			return
		}
		res = login
	}

	if err := accessor.SetSession(ctx, res.Token, res.User); err != nil {
		logger.Error("session write failed", map[string]any{"error": err.Error()})
		h.renderForm(c, http.StatusInternalServerError, navigation.ViewSignup, msgSignupFailed, form)
		return
	}

	clearIntent(c, h.cookie.Secure)

	logger.Info("signup succeeded", map[string]any{"username": res.User.Username})

	c.Redirect(http.StatusSeeOther, defaultLanding)
}

// signupFailure surfaces the backend's own message for client errors,
// e.g. "Username already taken".
func signupFailure(err error) (int, string) {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) || apiErr.Status >= 500 {
		return http.StatusBadGateway, msgSignupFailed
	}
	if apiErr.Message != "" {
		return http.StatusBadRequest, apiErr.Message
	}
	return http.StatusBadRequest, msgSignupFailed
}
