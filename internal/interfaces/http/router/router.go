// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loreweave-api/internal/config"
	"loreweave-api/internal/interfaces/http/handler"
	"loreweave-api/internal/interfaces/http/middleware"
)

// Handlers 路由所需的全部处理器
type Handlers struct {
	Health    *handler.HealthHandler
	World     *handler.WorldHandler
	Content   *handler.ContentHandler
	Tagging   *handler.TaggingHandler
	Linking   *handler.LinkingHandler
	Timeline  *handler.TimelineHandler
	Analytics *handler.AnalyticsHandler
	Profile   *handler.ProfileHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers Handlers
	limiter  middleware.RateLimiter
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers, limiter middleware.RateLimiter) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		handlers: handlers,
		limiter:  limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
	}, r.limiter)

	// 读接口身份可选，写接口必须携带 X-Actor-ID
	v1 := r.engine.Group("/v1", rateLimit)
	read := v1.Group("", middleware.Actor(false))
	write := v1.Group("", middleware.Actor(true))

	// 世界
	read.GET("/worlds", r.handlers.World.ListWorlds)
	read.GET("/worlds/:wid", r.handlers.World.GetWorld)
	write.POST("/worlds", r.handlers.World.CreateWorld)
	write.PUT("/worlds/:wid", r.handlers.World.UpdateWorld)

	// 世界内内容
	read.GET("/worlds/:wid/content/:kind", r.handlers.Content.ListContent)
	read.GET("/worlds/:wid/content/:kind/by-tags", r.handlers.Tagging.ContentByTags)
	write.POST("/worlds/:wid/content/:kind", r.handlers.Content.CreateContent)

	// 内容条目
	read.GET("/content/:kind/:id", r.handlers.Content.GetContent)
	write.PUT("/content/:kind/:id", r.handlers.Content.UpdateContent)
	write.DELETE("/content/:kind/:id", r.handlers.Content.SoftDeleteContent)
	write.POST("/content/:kind/:id/restore", r.handlers.Content.RestoreContent)

	// 标签
	read.GET("/content/:kind/:id/tags", r.handlers.Tagging.GetContentTags)
	read.GET("/worlds/:wid/tags", r.handlers.Tagging.ListWorldTags)
	write.POST("/content/:kind/:id/tags", r.handlers.Tagging.AddTag)
	write.DELETE("/content/:kind/:id/tags/:name", r.handlers.Tagging.RemoveTag)
	write.PUT("/tags/:tag_id", r.handlers.Tagging.RenameTag)
	write.DELETE("/tags/:tag_id", r.handlers.Tagging.DeleteTag)

	// 互链
	read.GET("/content/:kind/:id/links", r.handlers.Linking.ListLinkedTargets)
	read.GET("/content/:kind/:id/backlinks", r.handlers.Linking.ListLinkingSources)
	write.POST("/content/:kind/:id/links", r.handlers.Linking.CreateLink)
	write.DELETE("/content/:kind/:id/links/:to_kind/:to_id", r.handlers.Linking.DeleteLink)

	// 时间线与搜索
	read.GET("/worlds/:wid/timeline", r.handlers.Timeline.Timeline)
	read.GET("/worlds/:wid/search", r.handlers.Timeline.Search)

	// 分析
	read.GET("/content/:kind/:id/attribution", r.handlers.Analytics.EntityAttribution)
	read.GET("/content/:kind/:id/related", r.handlers.Analytics.RelatedContent)
	read.GET("/worlds/:wid/stats", r.handlers.Analytics.WorldStats)
	read.GET("/worlds/:wid/attribution", r.handlers.Analytics.AttributionNetwork)

	// 作者画像
	read.GET("/profiles/:actor_id", r.handlers.Profile.GetProfile)
	write.PUT("/profiles/me", r.handlers.Profile.UpdateProfile)

	// 管理端旁路
	admin := v1.Group("/admin", middleware.Actor(true))
	admin.PUT("/content/:kind/:id", r.handlers.Content.ForceWriteContent)
	admin.DELETE("/content/:kind/:id", r.handlers.Content.PurgeContent)
}
