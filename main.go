package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/soxlite/api/audit"
	"github.com/soxlite/api/config"
	"github.com/soxlite/api/controller"
	"github.com/soxlite/api/db"
	"github.com/soxlite/api/engine"
	logger "github.com/soxlite/api/logging"
	"github.com/soxlite/api/notifier"
	"github.com/soxlite/api/router"
	"github.com/soxlite/api/service"
	"github.com/soxlite/api/util"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	if err := logger.InitLogger(cfg.Log.Dir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Redis.Enabled {
		if err := db.InitRedis(); err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		defer db.CloseRedis()
	} else {
		logger.Info("Redis disabled: report cache and rate limiting are off")
	}

	auditTimeout := config.GetDuration("audit.timeout")
	var auditRepository audit.Repository
	if cfg.Elasticsearch.Enabled {
		transport := &http.Transport{ResponseHeaderTimeout: auditTimeout}
		repo, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index, transport)
		if err != nil {
			logger.Fatal("Failed to initialize Elasticsearch", zap.Error(err))
		}
		auditRepository = repo
	}
	auditService := audit.NewService(auditRepository)

	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	dispatcher := notifier.NewWebhookDispatcher(cfg.Notifier.WebhookURL, cfg.Notifier.Timeout, eventBus)
	if !dispatcher.Configured() {
		logger.Warn("No alert webhook configured: alerts will not be dispatched")
	}

	ttl, _ := time.ParseDuration(cfg.Redis.DefaultCacheTTL)
	services, err := service.InitializeServices(
		engine.New(),
		auditService,
		util.NewCacheService(ttl),
		dispatcher,
		auditTimeout,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	validationUtil := util.NewValidationUtil(cfg.Server.MaxUploadMB)
	controllers := controller.InitializeControllers(services, validationUtil)

	gin.SetMode(gin.ReleaseMode)
	handler := router.SetupRouter(controllers, router.Options{
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
		RequestTimeout:    cfg.Server.RequestTimeout,
		MaxUploadBytes:    cfg.Server.MaxUploadMB << 20,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.Bool("redis", cfg.Redis.Enabled),
			zap.Bool("audit", auditService.Enabled()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	// let queued alert notifications finish
	if err := eventBus.Drain(shutdownCtx); err != nil {
		logger.Warn("Pending alert notifications abandoned", zap.Error(err))
	}

	logger.Info("Server exiting")
}
