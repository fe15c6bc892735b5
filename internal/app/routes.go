package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsbrief/core/internal/middleware"
	"github.com/newsbrief/core/internal/modules/briefing"
	pkgredis "github.com/newsbrief/core/internal/pkg/redis"
	"github.com/newsbrief/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client, h *briefing.Handler) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if sqlDB, err := a.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "time": time.Now().Format(time.RFC3339)})
	})
	r.GET("/health/cron", func(c *gin.Context) {
		response.OK(c, gin.H{"jobs": a.sched.List()})
	})

	api := r.Group("/api")
	api.GET("/prefetch-status", h.PrefetchStatus)

	// Generation endpoints each cost a model call, so they sit behind the
	// rate limiter when Redis is available.
	gen := api.Group("")
	if rc != nil {
		gen.Use(middleware.RateLimit(rc.Raw(), a.logger))
	}
	gen.POST("/briefings", h.Create)
	gen.POST("/followup", h.FollowUp)
}
