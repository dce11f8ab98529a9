package web

import (
	"context"

	"tunr-web/internal/backend"
	"tunr-web/internal/middleware"
	"tunr-web/internal/navigation"
	"tunr-web/internal/session"

	"github.com/gin-gonic/gin"
)

// API is the slice of the Tunr backend the web layer calls.
type API interface {
	Login(ctx context.Context, username, password string) (*backend.AuthResult, error)
	Signup(ctx context.Context, r backend.SignupRequest) (*backend.AuthResult, error)
	Logout(ctx context.Context, token string) error
	MusicStatus(ctx context.Context, token string) (backend.MusicStatus, error)
	MusicLoginURL(token string) string
}

type Handler struct {
	router      *navigation.Router
	api         API
	cookie      session.CookieOptions
	authLimiter *middleware.RateLimiter
}

type Options struct {
	Cookie      session.CookieOptions
	AuthLimiter *middleware.RateLimiter
}

func NewHandler(router *navigation.Router, api API, opts Options) *Handler {
	return &Handler{
		router:      router,
		api:         api,
		cookie:      opts.Cookie,
		authLimiter: opts.AuthLimiter,
	}
}

// RegisterRoutes wires form posts and the JSON endpoint; every other GET
// is a page navigation resolved by the view router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/login", middleware.GinRateLimit(h.authLimiter), h.Login)
	r.POST("/signup", middleware.GinRateLimit(h.authLimiter), h.Signup)
	r.POST("/logout", h.Logout)

	r.GET("/music/connect", h.MusicConnect)
	r.GET("/api/session", h.SessionInfo)

	r.NoRoute(h.Page)
}

// pageData is what every template receives.
type pageData struct {
	Title   string
	View    navigation.View
	Path    string
	Session session.Session
	ShowNav bool
	Params  navigation.Params
	Message string
	Form    map[string]string

	Music      backend.MusicStatus
	MusicKnown bool
}

var titles = map[navigation.View]string{
	navigation.ViewLanding:     "Welcome",
	navigation.ViewLogin:       "Log in",
	navigation.ViewSignup:      "Sign up",
	navigation.ViewHome:        "Home",
	navigation.ViewSearch:      "Movies",
	navigation.ViewPreferences: "Preferences",
	navigation.ViewWelcome:     "Welcome",
	navigation.ViewLibrary:     "Library",
	navigation.ViewMusic:       "Music",
	navigation.ViewFeed:        "For you",
	navigation.ViewCommunity:   "Community",
	navigation.ViewMovie:       "Movie",
	navigation.ViewProfile:     "Profile",
	navigation.ViewNotFound:    "Not found",
}

func title(v navigation.View) string {
	if t, ok := titles[v]; ok {
		return t
	}
	return string(v)
}

func newPageData(plan navigation.RenderPlan, s session.Session) pageData {
	return pageData{
		Title:   title(plan.View),
		View:    plan.View,
		Path:    plan.Path,
		Session: s,
		ShowNav: plan.ShowNav,
		Params:  plan.Params,
	}
}
