package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"hush/config"
	"hush/internal/account"
	accountmodel "hush/internal/account/model"
	accountrepo "hush/internal/account/repository"
	"hush/internal/auth"
	"hush/internal/ephemeral"
	"hush/internal/fabric"
	"hush/internal/message"
	messagemodel "hush/internal/message/model"
	messagerepo "hush/internal/message/repository"
	"hush/pkg/logger"
	"hush/pkg/reaper"
	"hush/transport/httpapi"
)

func main() {
	godotenv.Load()

	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.LoggerMode{
		Development: cfg.Logger.Development,
		Level:       cfg.Logger.Level,
	})
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := newPostgres(ctx, cfg.Postgres)
	if err != nil {
		appLogger.Error("failed to connect to postgres", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}

	accountRepo := accountrepo.NewAccountRepository(db, appLogger)
	messageRepo := messagerepo.NewMessageRepository(db)
	ephemeralStore := ephemeral.NewRedisStore(redisClient)
	issuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	hub := fabric.NewHub(appLogger)

	accountUsecase := account.NewUsecase(accountRepo, ephemeralStore, issuer, appLogger, cfg.PreKey.RefillThreshold)
	messageUsecase := message.NewUsecase(messageRepo, hub, appLogger, time.Duration(cfg.Message.TTLDays)*24*time.Hour)

	router := httpapi.NewRouter(httpapi.Deps{
		Account:    httpapi.NewAccountHandlers(accountUsecase, issuer),
		Message:    httpapi.NewMessageHandlers(messageUsecase),
		Issuer:     issuer,
		Revocation: accountRepo,
		Ephemeral:  ephemeralStore,
		Hub:        hub,
		Logger:     appLogger,
		MaxRPM:     cfg.RateLimit.MaxRequestsPerMinute,
		CORSDomain: cfg.CORS.Domain,
		Production: cfg.Server.Environment == "production",
		Version:    "1.0.0",
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	reap := reaper.New(messageRepo, accountRepo, time.Hour, appLogger)
	reapCtx, reapCancel := context.WithCancel(context.Background())
	go reap.Run(reapCtx)

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	reapCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", "err", err)
	}
}

// newPostgres opens the connection pool and registers the models with bun's
// dialect, following the connector pattern the teacher's repository tests
// use to stand up their own testcontainers database.
func newPostgres(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	connector := pgdriver.NewConnector(pgdriver.WithDSN(dsn))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	db.RegisterModel(
		(*accountmodel.Account)(nil),
		(*accountmodel.SignedPreKey)(nil),
		(*accountmodel.OneTimePreKey)(nil),
		(*accountmodel.RevokedToken)(nil),
		(*messagemodel.QueuedCiphertext)(nil),
	)

	return db, nil
}
