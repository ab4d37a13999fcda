package router

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/tapcard/internal/config"
	"github.com/tapcard/internal/handler"
	"github.com/tapcard/internal/metrics"
	"github.com/tapcard/web"
)

const sessionName = "tapcard_session"

// Options configures the engine.
type Options struct {
	SessionSecret  string
	VCardRateLimit config.RateLimitConfig
}

// SetupRouter configures the Gin engine and routes.
func SetupRouter(api *handler.API, opts Options) (*gin.Engine, error) {
	if err := handler.RegisterCustomValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		handler.RequestIDMiddleware(),
		handler.LoggerMiddleware(api.Logger()),
		metrics.GinMiddleware(),
	)

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	tmpl, err := web.Templates(template.FuncMap{})
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("load static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/", api.ShowHome)
	r.GET("/healthz", api.Healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/v/:profileID", api.ShowCard)
	r.GET("/api/vcard/:profileID", api.VCardRateLimiter(opts.VCardRateLimit), api.DownloadVCard)

	r.NoRoute(api.NotFound)

	return r, nil
}
