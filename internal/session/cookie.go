package session

import (
	"net/http"
	"time"
)

const (
	// secureCookieName is used when cookies are Secure; __Host- requires it.
	secureCookieName = "__Host-tunr_client"
	plainCookieName  = "tunr_client"

	// ClientCookieTTL bounds how long a browser keeps its storage handle.
	ClientCookieTTL = 365 * 24 * time.Hour
)

// CookieOptions defines how the client cookie is issued.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
}

// CookieName returns the client cookie name for the given security mode.
func CookieName(secure bool) string {
	if secure {
		return secureCookieName
	}
	return plainCookieName
}

func (o CookieOptions) sameSite() http.SameSite {
	if o.SameSite == 0 {
		return http.SameSiteLaxMode
	}
	return o.SameSite
}

// ClientID returns the client identifier carried by the request, if any.
func ClientID(r *http.Request) (string, bool) {
	for _, name := range []string{secureCookieName, plainCookieName} {
		c, err := r.Cookie(name)
		if err == nil && ValidID(c.Value) {
			return c.Value, true
		}
	}
	return "", false
}

// SetClientCookie issues the client cookie.
func SetClientCookie(w http.ResponseWriter, clientID string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(opts.Secure),
		Value:    clientID,
		Path:     "/",
		MaxAge:   int(ClientCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.sameSite(),
	})
}
