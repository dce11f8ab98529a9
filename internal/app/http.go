package app

import (
	"context"
	"net/http"

	"tunr-web/internal/backend"
	"tunr-web/internal/config"
	"tunr-web/internal/middleware"
	"tunr-web/internal/navigation"
	"tunr-web/internal/session"
	"tunr-web/internal/web"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	router, err := newRouter(cfg, infra.Storage, backend.New(cfg.BackendURL, cfg.BackendTimeout))
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	return router, infra.Close, nil
}

func newRouter(cfg config.Config, storage session.Backend, api web.API) (*gin.Engine, error) {
	// ----------------------------
	// Dependencies
	// ----------------------------

	cookie := session.CookieOptions{Secure: cfg.CookieSecure}
	sessions := middleware.NewSessionMiddleware(storage, cookie)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	handler := web.NewHandler(navigation.DefaultRouter(), api, web.Options{
		Cookie:      cookie,
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateLimit),
	})

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Pages and forms
	// ----------------------------

	// Registered after /health so probes never get a client cookie;
	// NoRoute picks up the session middleware too.
	router.Use(middleware.GinLoadSession(sessions))
	handler.RegisterRoutes(router)

	return router, nil
}
