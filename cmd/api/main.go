package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookly/internal/auth"
	"bookly/internal/config"
	"bookly/internal/handler"
	"bookly/internal/infra/blocklist"
	"bookly/internal/infra/db"
	"bookly/internal/infra/mail"
	infraRepo "bookly/internal/infra/repository"
	"bookly/internal/logging"
	"bookly/internal/server"
	"bookly/internal/tasks"
	"bookly/internal/usecase"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .envはあれば読む
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if cfg.RevocationTTL < cfg.AccessTTL {
		logger.Warn("REVOCATION_TTL is shorter than ACCESS_TOKEN_TTL; revoked tokens may become valid again before they expire",
			"revocation_ttl", cfg.RevocationTTL, "access_ttl", cfg.AccessTTL)
	}

	//DB接続
	gormDB, err := db.Connect(cfg.DSN(), logger, cfg.LogLevel == "debug")
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(gormDB) }()
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	//失効リスト（redis）
	redisClient, err := blocklist.NewClient(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()
	revoked := blocklist.NewRedisBlocklist(redisClient, cfg.RevocationTTL, cfg.StoreTimeout)

	//メールキュー（asynq）
	redisOpt, err := tasks.ParseRedis(cfg.RedisURL)
	if err != nil {
		return err
	}
	queue := asynq.NewClient(redisOpt)
	defer func() { _ = queue.Close() }()
	mailer := tasks.NewQueueMailer(queue, logger)

	worker := tasks.NewServer(redisOpt, 5, logger)
	sender := mail.NewSender(mail.SMTPConfig{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	})
	if err := worker.Start(tasks.NewServeMux(tasks.NewEmailHandler(sender, logger))); err != nil {
		return err
	}
	defer worker.Shutdown()

	//token
	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTTL, logger)
	if err != nil {
		return err
	}
	guard := auth.NewGuard(codec, revoked, logger)
	verifyLinks := auth.NewLinkSigner(cfg.JWTSecret, cfg.VerifySalt, logger)
	resetLinks := auth.NewLinkSigner(cfg.JWTSecret, cfg.ResetSalt, logger)

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	tagRepo := infraRepo.NewTagGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(
		userRepo,
		auth.NewBcryptPasswordHasher(cfg.BcryptCost),
		codec,
		verifyLinks,
		resetLinks,
		revoked,
		mailer,
		usecase.AuthConfig{
			Domain:     cfg.Domain,
			RefreshTTL: cfg.RefreshTTL,
			LinkMaxAge: cfg.LinkMaxAge,
		},
		logger,
	)

	e := server.New(server.Deps{
		Logger:       logger,
		AllowedHosts: cfg.AllowedHosts,
		CORSOrigins:  cfg.CORSOrigins,
		Tokens:       guard,
		Users:        userRepo,
		Health:       func(ctx context.Context) error { return ping(ctx, gormDB, cfg.StoreTimeout) },
		Auth:         handler.NewAuthHandler(authUC),
		Books:        handler.NewBookHandler(usecase.NewBookUsecase(bookRepo)),
		Tags:         handler.NewTagHandler(usecase.NewTagUsecase(tagRepo, txManager)),
		Reviews:      handler.NewReviewHandler(usecase.NewReviewUsecase(reviewRepo, bookRepo)),
	})

	//Server起動
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.GoEnv)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func ping(ctx context.Context, gdb *gorm.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return db.Ping(ctx, gdb)
}
