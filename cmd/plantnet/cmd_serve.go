package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/plantnet/plantnet-api/internal/api"
	"github.com/plantnet/plantnet-api/internal/api/handler"
	"github.com/plantnet/plantnet-api/internal/core/ports"
	"github.com/plantnet/plantnet-api/internal/core/service"
	mongodb "github.com/plantnet/plantnet-api/internal/infrastructure/db/mongo"
	redisstore "github.com/plantnet/plantnet-api/internal/infrastructure/db/redis"
	"github.com/plantnet/plantnet-api/internal/infrastructure/payment"
)

const shutdownTimeout = 10 * time.Second

// plantnet serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	checks := map[string]handler.HealthCheck{
		"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}

	// --- Redis (optional) ---
	var (
		guard       ports.TransactionGuard
		revocations ports.RevocationStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		guard = redisstore.NewTransactionGuard(rdb)
		revocations = redisstore.NewRevocationStore(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	} else {
		log.Warn().Msg("REDIS_ADDR not set: logout revocation and transaction claims disabled")
	}

	// --- Payments ---
	var gateway ports.PaymentGateway = payment.DisabledGateway{}
	if cfg.Stripe.SecretKey != "" {
		sg, err := payment.NewStripeGateway(cfg.Stripe.SecretKey)
		if err != nil {
			return err
		}
		gateway = sg
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY empty: payment intents will fail")
	}

	// --- Services ---
	plantRepo := mongodb.NewPlantRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	e, err := api.NewRouter(api.Deps{
		Plants:       service.NewPlantService(plantRepo, log),
		Orders:       service.NewOrderService(plantRepo, orderRepo, guard, log),
		Payments:     service.NewPaymentService(plantRepo, gateway, cfg.Stripe.Currency, log),
		Sessions:     service.NewSessionService(cfg.Session.Secret, cfg.Session.TTL, revocations, log),
		Users:        service.NewUserService(userRepo, log),
		Roles:        userRepo,
		HealthChecks: checks,
		Logger:       log,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
	}, api.Options{
		CookieName:     cfg.Session.Cookie,
		Production:     cfg.Production(),
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("plantNet server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
