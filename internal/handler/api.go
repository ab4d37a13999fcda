package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tapcard/internal/card"
	"github.com/tapcard/internal/service"
	"github.com/tapcard/internal/theme"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	siteName                = "tapcard"
	defaultAnalyticsTimeout = 5 * time.Second
)

// Options configures the handler set.
type Options struct {
	PublicBaseURL    string
	PhoneRegion      string
	AnalyticsSalt    string
	AnalyticsTimeout time.Duration
	Cache            service.BundleCache
	Logger           *zap.Logger
}

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	profiles bundleLoader
	renderer *card.Renderer
	defaults theme.Theme
	baseURL  string
	tracker  *viewTracker
	stats    cardStatsReader
	logger   *zap.Logger
	checks   []healthCheck
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.AnalyticsTimeout
	if timeout <= 0 {
		timeout = defaultAnalyticsTimeout
	}

	profiles := service.NewProfileService(gdb).WithLogger(logger)
	if opts.Cache != nil {
		profiles = profiles.WithCache(opts.Cache)
	}

	analytics := service.NewAnalyticsService(gdb, opts.AnalyticsSalt)
	api := &API{
		db:       gdb,
		profiles: profiles,
		renderer: card.NewRenderer(opts.PhoneRegion),
		defaults: theme.SystemDefaults(),
		baseURL:  strings.TrimRight(strings.TrimSpace(opts.PublicBaseURL), "/"),
		tracker:  newViewTracker(analytics, timeout, logger),
		stats:    analytics,
		logger:   logger,
	}
	api.AddHealthCheck("database", api.pingDatabase)
	return api
}

// AddHealthCheck registers a dependency probed by /healthz.
func (a *API) AddHealthCheck(name string, check func(ctx context.Context) error) {
	a.checks = append(a.checks, healthCheck{name: name, check: check})
}

// Wait blocks until queued analytics writes have finished.
func (a *API) Wait() {
	a.tracker.Wait()
}

// Logger returns the logger handlers write to.
func (a *API) Logger() *zap.Logger {
	return a.logger
}

func (a *API) pingDatabase(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":    siteName,
			"baseURL": a.baseURL,
		}
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}
	if _, exists := payload["requestID"]; !exists {
		payload["requestID"] = RequestID(c)
	}

	c.HTML(status, template, payload)
}
