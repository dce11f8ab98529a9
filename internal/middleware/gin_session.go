package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinLoadSession adapts the net/http session middleware to Gin.
func GinLoadSession(m *SessionMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		called := false

		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			c.Request = r
			c.Next()
		})

		m.LoadSession(next).ServeHTTP(c.Writer, c.Request)

		// The middleware answered on its own; stop the Gin chain
		if !called {
			c.Abort()
		}
	}
}
