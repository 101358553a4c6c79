package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neurocare-ai/portal/internal/api"
	"github.com/neurocare-ai/portal/internal/core/ports"
	"github.com/neurocare-ai/portal/internal/core/service"
	"github.com/neurocare-ai/portal/internal/infrastructure/db/memory"
	mongodb "github.com/neurocare-ai/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/neurocare-ai/portal/internal/infrastructure/db/redis"
	"github.com/neurocare-ai/portal/internal/infrastructure/queue"
	"github.com/neurocare-ai/portal/internal/infrastructure/upstream"
	"github.com/neurocare-ai/portal/internal/pkg/config"
	"github.com/neurocare-ai/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Token store: redis in production, memory for local development.
	var (
		store ports.TokenStore
		rdb   *redis.Client
	)
	if cfg.Session.Store == "memory" {
		store = memory.NewTokenStore()
		log.Warn().Msg("using in-memory token store, sessions will not survive restarts")
	} else {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		rdb = client
		store = redisdb.NewTokenStore(client)
	}

	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	auditRepo := mongodb.NewAuditRepository(mongoDB)
	auditSvc := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(0, auditSvc, log)
	dispatcher.Start(ctx)

	gateway := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	sessions := service.NewSessionManager(store, gateway, dispatcher, log)
	defer sessions.StopAll()

	e := api.NewRouter(api.Deps{
		Sessions:     sessions,
		Upstream:     gateway,
		Audit:        dispatcher,
		AuditReader:  auditRepo,
		Redis:        rdb,
		Mongo:        mongoClient,
		CookieName:   cfg.Session.CookieName,
		SecureCookie: cfg.Env == "production",
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
