package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/cedarpath/practice-api/internal/ai"
	"github.com/cedarpath/practice-api/internal/config"
	dbpkg "github.com/cedarpath/practice-api/internal/db"
	"github.com/cedarpath/practice-api/internal/logger"
	"github.com/cedarpath/practice-api/internal/middleware"
	"github.com/cedarpath/practice-api/internal/notify"
	"github.com/cedarpath/practice-api/internal/routes"
	"github.com/cedarpath/practice-api/internal/store"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg)

	st := store.New(db, zlog)

	notifier := notify.NewService(cfg, zlog)
	defer notifier.Stop()

	orchestrator := ai.NewOrchestrator(ai.NewAnthropicCompleter(cfg.AnthropicAPIKey), zlog)

	var limiter middleware.CounterStore = middleware.NewMemoryStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Fatalw("invalid REDIS_URL", "error", err)
		}
		limiter = middleware.NewRedisStore(redis.NewClient(opts))
		zlog.Infow("rate limiting backed by redis")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-csrf-token"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Cfg:          cfg,
		Log:          zlog,
		Store:        st,
		Notify:       notifier,
		Orchestrator: orchestrator,
		Limiter:      limiter,
	})

	zlog.Infow("server starting", "addr", cfg.Addr(), "env", cfg.Env)
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatalw("failed to start server", "error", err)
	}
}
