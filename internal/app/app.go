// Package app wires configuration, storage, the model client, and the HTTP
// surface into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newsbrief/core/internal/config"
	"github.com/newsbrief/core/internal/database"
	"github.com/newsbrief/core/internal/middleware"
	"github.com/newsbrief/core/internal/modules/briefing"
	"github.com/newsbrief/core/internal/modules/dialogue"
	"github.com/newsbrief/core/internal/modules/news"
	"github.com/newsbrief/core/internal/pkg/anthropic"
	pkgcron "github.com/newsbrief/core/internal/pkg/cron"
	pkgredis "github.com/newsbrief/core/internal/pkg/redis"
	"github.com/newsbrief/core/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → services → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// Redis is optional: without it the briefing hot cache and rate limiter
	// are simply disabled. A configured but unreachable Redis is fatal.
	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	} else {
		logger.Info("redis not configured, hot cache and rate limiting disabled")
	}

	st := store.New(db, rc, logger)

	if purged, err := st.PurgeOlderThan(context.Background(), cfg.RetentionDays); err != nil {
		logger.Warn("startup retention sweep failed", zap.Error(err))
	} else if purged > 0 {
		logger.Info("startup retention sweep", zap.Int64("deleted", purged))
	}

	llm := anthropic.New(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	newsSvc := news.NewService(llm, st, logger, time.Duration(cfg.Prefetch.ThrottleSeconds)*time.Second)
	dlgSvc := dialogue.NewService(llm, logger)
	orch := briefing.NewOrchestrator(st, dlgSvc, cfg.Anthropic.APIKey, logger)
	handler := briefing.NewHandler(orch, logger)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New()
	registerCronJobs(sched, newsSvc, st, cfg, logger)
	go sched.Start(ctx)

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes(rc, handler)

	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
