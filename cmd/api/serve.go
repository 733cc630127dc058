package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/99minutos/auth-api/internal/api"
	"github.com/99minutos/auth-api/internal/api/handler"
	"github.com/99minutos/auth-api/internal/core/service"
	"github.com/99minutos/auth-api/internal/infrastructure/config"
	"github.com/99minutos/auth-api/internal/infrastructure/db/mongo"
	"github.com/99minutos/auth-api/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-api/internal/infrastructure/httpserver"
	"github.com/99minutos/auth-api/internal/infrastructure/security"
	"github.com/99minutos/auth-api/pkg/logger"
)

func serveCmd() *cli.Command {
	var envFiles cli.StringSlice
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "env-file",
				Usage:       "dotenv file(s) to load before reading the environment",
				Value:       cli.NewStringSlice(".env"),
				Destination: &envFiles,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.Context, envFiles.Value()...)
			if err != nil {
				return err
			}
			return serve(c.Context, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "auth-api",
	})
	ctx = logger.WithContext(ctx, log)

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.ConnectTimeout,
		AppName:  "auth-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	checks := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	tokens, err := security.NewJWTManager(cfg.TokenKey, cfg.TokenTTL, nil)
	if err != nil {
		return err
	}
	opts := []service.Option{service.WithStoreTimeout(cfg.StoreTimeout)}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		opts = append(opts, service.WithEmailClaimer(redis.NewEmailClaimer(rdb, 0)))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("registration email claims enabled")
	}

	authService := service.NewAuthService(users, security.NewBcryptHasher(security.DefaultCost), tokens, log, opts...)

	router := api.NewRouter(api.Deps{
		AuthService: authService,
		Tokens:      tokens,
		Checks:      checks,
		Log:         log,
	})

	return httpserver.Serve(ctx, ":"+cfg.Port, router, log, httpserver.Options{
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
}
