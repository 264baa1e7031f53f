package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"go-events-api/core/conferencing"
	"go-events-api/core/config"
	"go-events-api/core/lock"
	"go-events-api/core/logger"
	"go-events-api/core/middleware"
	"go-events-api/core/payments"
	"go-events-api/core/records"
	"go-events-api/core/worker"
	"go-events-api/modules/event"
	"go-events-api/modules/invite"
	"go-events-api/modules/meeting"
	"go-events-api/modules/reminder"
	"go-events-api/modules/subscriber"
	"go-events-api/modules/sync"
	"go-events-api/modules/user"
	userRepo "go-events-api/modules/user/repository"
)

// Run wires every module and serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	mw := middleware.New()
	e.Use(mw.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	store, err := records.NewClient(records.ClientConfig{
		BaseURL: cfg.Records.BaseURL,
		APIKey:  cfg.Records.APIKey,
		BaseID:  cfg.Records.BaseID,
	})
	if err != nil {
		return err
	}
	pay := payments.NewClient(cfg.Payments.BaseURL)
	conf := conferencing.NewClient(conferencing.ClientConfig{
		BaseURL:      cfg.Conferencing.BaseURL,
		TokenURL:     cfg.Conferencing.TokenURL,
		ClientID:     cfg.Conferencing.ClientID,
		ClientSecret: cfg.Conferencing.ClientSecret,
	})

	// Without redis the job lock degrades to a no-op and the cron worker
	// stays off; manual triggers through the API still work.
	var locker lock.Locker = lock.NewNoopLocker()
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker = lock.NewRedisLocker(redisClient)
	}

	api := e.Group("/api/v1")

	users := userRepo.NewUserRepository(store)
	userSvc := user.Init(api, store, mw, conf)
	eventRepo, _ := event.Init(api, store, mw, pay)
	subRepo := subscriber.Init(api, store, mw)
	inviteRepo := invite.Init(api, store, mw)
	reminderSvc := reminder.Init(api, mw, eventRepo, subRepo, inviteRepo, locker)
	syncSvc := sync.Init(api, mw, eventRepo, subRepo, users, pay, locker)
	meeting.Init(api, mw, userSvc, conf)

	var jobs *worker.Worker
	if redisClient != nil {
		jobs = worker.New(cfg, reminderSvc, syncSvc, users)
		if err := jobs.Start(); err != nil {
			logger.Error("Server:Run:WorkerStart:Error:", err)
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server:Run:Listening", "addr", addr, "env", cfg.Server.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if jobs != nil {
			jobs.Shutdown()
		}
		return err
	case sig := <-quit:
		logger.Info("Server:Run:Shutdown", "signal", sig.String())
	}

	if jobs != nil {
		jobs.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
