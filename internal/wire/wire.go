//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	"loreweave-api/internal/application/analytics"
	"loreweave-api/internal/application/content"
	"loreweave-api/internal/application/linking"
	"loreweave-api/internal/application/profile"
	"loreweave-api/internal/application/tagging"
	"loreweave-api/internal/application/timeline"
	"loreweave-api/internal/application/world"
	"loreweave-api/internal/config"
	"loreweave-api/internal/domain/repository"
	"loreweave-api/internal/infrastructure/persistence/postgres"
	"loreweave-api/internal/infrastructure/persistence/redis"
	"loreweave-api/internal/interfaces/http/handler"
	"loreweave-api/internal/interfaces/http/middleware"
	"loreweave-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewContentRepository,
	postgres.NewTagRepository,
	postgres.NewLinkRepository,
	postgres.NewWorldRepository,
	postgres.NewProfileRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.ContentRepository), new(*postgres.ContentRepository)),
	wire.Bind(new(repository.TagRepository), new(*postgres.TagRepository)),
	wire.Bind(new(repository.LinkRepository), new(*postgres.LinkRepository)),
	wire.Bind(new(repository.WorldRepository), new(*postgres.WorldRepository)),
	wire.Bind(new(repository.ProfileRepository), new(*postgres.ProfileRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvideRateLimiter,
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	content.NewService,
	world.NewService,
	tagging.NewService,
	linking.NewService,
	timeline.NewService,
	analytics.NewService,
	profile.NewService,
	wire.Bind(new(timeline.TagFinder), new(*tagging.Service)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewWorldHandler,
	handler.NewContentHandler,
	handler.NewTaggingHandler,
	handler.NewLinkingHandler,
	handler.NewTimelineHandler,
	handler.NewAnalyticsHandler,
	handler.NewProfileHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端，未启用时返回 nil
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 提供限流器，Redis 未启用时返回 nil 放行
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, pg *postgres.Client, rc *redis.Client) *handler.HealthHandler {
	return handler.NewHealthHandler(pg, rc, cfg.App.Version)
}
