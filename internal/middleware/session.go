package middleware

import (
	"context"
	"net/http"

	"tunr-web/internal/logger"
	"tunr-web/internal/session"
)

// unexported, collision-proof context keys
type accessorContextKeyType struct{}
type sessionContextKeyType struct{}

var (
	accessorKey = accessorContextKeyType{}
	sessionKey  = sessionContextKeyType{}
)

// AccessorFromContext returns the accessor for the requesting client.
func AccessorFromContext(ctx context.Context) (*session.Accessor, bool) {
	a, ok := ctx.Value(accessorKey).(*session.Accessor)
	return a, ok
}

// SessionFromContext returns the session derived at the start of the
// request, or the anonymous session.
func SessionFromContext(ctx context.Context) session.Session {
	s, ok := ctx.Value(sessionKey).(session.Session)
	if !ok {
		return session.Anonymous()
	}
	return s
}

// WithSession attaches an accessor and its derived session to ctx.
func WithSession(ctx context.Context, a *session.Accessor, s session.Session) context.Context {
	ctx = context.WithValue(ctx, accessorKey, a)
	return context.WithValue(ctx, sessionKey, s)
}

type SessionMiddleware struct {
	Backend session.Backend
	Cookie  session.CookieOptions
}

func NewSessionMiddleware(backend session.Backend, cookie session.CookieOptions) *SessionMiddleware {
	return &SessionMiddleware{Backend: backend, Cookie: cookie}
}

// LoadSession identifies the browser, finishes any pending key-scheme
// migration and derives the session once for the rest of the request.
func (m *SessionMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Identify the client, issuing an id on first visit
		clientID, ok := session.ClientID(r)
		if !ok {
			id, err := session.GenerateID()
			if err != nil {
				logger.Error("client id generation failed", map[string]any{"error": err.Error()})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			clientID = id
			session.SetClientCookie(w, clientID, m.Cookie)
		}

		accessor := session.NewAccessor(m.Backend.Client(clientID))

		// 2. One-time legacy migration
		migrated, err := accessor.Migrate(r.Context())
		if err != nil {
			logger.Warn("session migration failed", map[string]any{"error": err.Error()})
		} else if migrated {
			logger.Info("session migrated to canonical keys", map[string]any{"path": r.URL.Path})
		}

		// 3. Derive once; readers downstream never touch storage
		sess := accessor.Session(r.Context())

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), accessor, sess)))
	})
}
