// Command identity serves user registration and login.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/smartoffice/platform/internal/api"
	"github.com/smartoffice/platform/internal/api/handler"
	"github.com/smartoffice/platform/internal/core/ports"
	"github.com/smartoffice/platform/internal/core/security"
	"github.com/smartoffice/platform/internal/core/service"
	mongodb "github.com/smartoffice/platform/internal/infrastructure/db/mongo"
	"github.com/smartoffice/platform/internal/infrastructure/db/postgres"
	"github.com/smartoffice/platform/internal/pkg/config"
	"github.com/smartoffice/platform/pkg/logger"
)

const defaultPort = "8081"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Init(logger.Options{Service: "identity"})
		log.Fatal().Err(err).Msg("identity service stopped")
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
		Service: "identity",
	})

	users, checks, closeStore, err := openCredentialStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	issuer, err := security.NewTokenIssuer(cfg.TokenConfig(), nil)
	if err != nil {
		return err
	}
	auth, err := service.NewAuthService(users, security.NewBcryptHasher(cfg.Bcrypt.Cost), issuer, logger.Named("auth"))
	if err != nil {
		return err
	}

	e := api.NewIdentityRouter(api.Options{
		Service:        "identity",
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Checks:         checks,
	}, auth)

	return api.Serve(ctx, e, cfg.Addr(defaultPort), log)
}

// openCredentialStore connects the backend selected by CREDENTIAL_STORE and
// prepares its schema.
func openCredentialStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, map[string]handler.Checker, func(), error) {
	switch cfg.CredentialStore {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "smartoffice-identity",
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := mongodb.NewCredentialRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("credential store: mongo")
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}
		return repo, map[string]handler.Checker{"mongo": mongodb.Ping(client)}, closeFn, nil

	default:
		db, err := postgres.Connect(ctx, postgres.Config{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		log.Info().Msg("credential store: postgres")
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("postgres close")
			}
		}
		return postgres.NewCredentialRepository(db), map[string]handler.Checker{"postgres": postgres.Ping(db)}, closeFn, nil
	}
}
