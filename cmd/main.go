package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/chat-service/config"
	"github.com/cwrk-planet/chat-service/internal/pg"
	redisx "github.com/cwrk-planet/chat-service/internal/redis"
	"github.com/cwrk-planet/chat-service/internal/repository/postgres"
	"github.com/cwrk-planet/chat-service/internal/service"
	httpx "github.com/cwrk-planet/chat-service/internal/transport/http"
	"github.com/cwrk-planet/chat-service/internal/transport/ws"
	"github.com/cwrk-planet/logger/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting chat-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := pg.NewPool(ctx, pg.Config{
		DSN:             cfg.Postgres.DSN,
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		MaxConnLifetime: cfg.Postgres.ConnLifetime(),
		MaxConnIdleTime: cfg.Postgres.ConnIdleTime(),
		ApplicationName: cfg.Logging.Service,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- redis (опционален: без него presence живёт только в базе) ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisx.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("redis unavailable, presence degraded", "err", err)
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	// --- repos ---
	roomRepo := postgres.NewRoomRepo(pool)
	memberRepo := postgres.NewMemberRepo(pool)
	banRepo := postgres.NewBanRepo(pool)
	messageRepo := postgres.NewMessageRepo(pool)
	friendRepo := postgres.NewFriendRepo(pool)
	notificationRepo := postgres.NewNotificationRepo(pool)
	userRepo := postgres.NewUserRepo(pool)
	likeRepo := postgres.NewLikeRepo(pool)

	// --- WS Hub ---
	hub := ws.NewHub()

	// --- services ---
	notificationSvc := service.NewNotificationService(notificationRepo, hub)
	roomSvc := service.NewRoomService(roomRepo, memberRepo, banRepo, userRepo)
	messageSvc := service.NewMessageService(messageRepo, roomRepo, memberRepo, userRepo,
		notificationSvc, hub, cfg.Chat.MaxContentLen, slog.Default())
	friendSvc := service.NewFriendService(friendRepo, userRepo, notificationSvc, slog.Default())
	likeSvc := service.NewLikeService(likeRepo, messageRepo, userRepo)
	presenceSvc := service.NewPresenceService(rdb, userRepo, cfg.Chat.PresenceTTLDuration(), slog.Default())

	// --- WS Server ---
	wsServer := ws.NewServer(hub, presenceSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(roomSvc, messageSvc, friendSvc, notificationSvc, likeSvc, presenceSvc, userRepo)
	router := httpx.NewRouter(handler, presenceSvc, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
