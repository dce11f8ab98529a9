package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	intentCookieName = "__tunr_from"
	intentTTL        = 5 * time.Minute

	defaultLanding = "/home"
)

// setIntent remembers where an anonymous visitor was headed.
func setIntent(c *gin.Context, from string, secure bool) {
	if _, ok := safeReturnPath(from); !ok {
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     intentCookieName,
		Value:    url.QueryEscape(from),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(intentTTL.Seconds()),
	})
}

// consumeIntent returns the remembered destination, or /home, and
// discards it.
func consumeIntent(c *gin.Context, secure bool) string {
	dest := defaultLanding

	if cookie, err := c.Request.Cookie(intentCookieName); err == nil {
		if raw, err := url.QueryUnescape(cookie.Value); err == nil {
			if p, ok := safeReturnPath(raw); ok {
				dest = p
			}
		}
		clearIntent(c, secure)
	}

	return dest
}

func clearIntent(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     intentCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// safeReturnPath accepts only local absolute paths that are not the
// login or signup pages themselves.
func safeReturnPath(p string) (string, bool) {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return "", false
	}

	u, err := url.Parse(p)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}

	switch strings.TrimRight(u.Path, "/") {
	case "/login", "/signup":
		return "", false
	}

	return p, true
}
