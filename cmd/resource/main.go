// Command resource serves the asset API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/smartoffice/platform/internal/api"
	"github.com/smartoffice/platform/internal/api/handler"
	"github.com/smartoffice/platform/internal/core/ports"
	"github.com/smartoffice/platform/internal/core/security"
	"github.com/smartoffice/platform/internal/core/service"
	mongodb "github.com/smartoffice/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/smartoffice/platform/internal/infrastructure/db/redis"
	"github.com/smartoffice/platform/internal/infrastructure/queue"
	"github.com/smartoffice/platform/internal/pkg/config"
	"github.com/smartoffice/platform/pkg/logger"
)

const defaultPort = "8082"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Init(logger.Options{Service: "resource"})
		log.Fatal().Err(err).Msg("resource service stopped")
	}
}

func run(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(ctx, nil)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "resource",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "smartoffice-resource",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	assetRepo := mongodb.NewAssetRepository(db)
	if err := assetRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	auditRepo := mongodb.NewAuditRepository(db)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	checks := map[string]handler.Checker{"mongo": mongodb.Ping(client)}

	// Redis only backs Idempotency-Key replay. Without it creates still work.
	var idem ports.IdempotencyStore
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, idempotency keys disabled")
	} else {
		defer rdb.Close()
		idem = redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = redisdb.Ping(rdb)
	}

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Named("audit"))
	// Workers outlive the signal so Close can drain events from in-flight requests.
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Close()

	validator, err := security.NewTokenValidator(cfg.TokenConfig(), nil)
	if err != nil {
		return err
	}
	assets := service.NewAssetService(assetRepo, idem, dispatcher, logger.Named("assets"))

	e := api.NewResourceRouter(api.Options{
		Service:        "resource",
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Checks:         checks,
	}, assets, validator)

	return api.Serve(ctx, e, cfg.Addr(defaultPort), log)
}
