package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cuattro/internal/auth"
	"cuattro/internal/cart"
	"cuattro/internal/catalog"
	"cuattro/internal/category"
	"cuattro/internal/config"
	"cuattro/internal/db"
	"cuattro/internal/llm"
	"cuattro/internal/logging"
	"cuattro/internal/middleware"
	"cuattro/internal/order"
	"cuattro/internal/router"
	"cuattro/internal/storage"
	"cuattro/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Server.AppEnv, cfg.Logger.Level, cfg.Logger.Encoding)
	defer logger.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Setup(cfg.Tracing.Enabled)
	if err != nil {
		logger.Fatal("tracing init failed", zap.Error(err))
	}

	ctx := context.Background()

	// ───────────────────────── DB ─────────────────────────
	pool, err := db.ConnectPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres init failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// ───────────────────────── STORAGE ─────────────────────────
	images, err := storage.NewS3Client(ctx, storage.Options{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("object storage init failed", zap.Error(err))
	}
	if err := images.EnsureBucket(ctx); err != nil {
		logger.Fatal("object storage bucket check failed", zap.Error(err))
	}

	// ───────────────────────── CART STATE ─────────────────────────
	checks := map[string]router.Pinger{"postgres": pool.Ping}

	var (
		cartStore cart.Store
		aiLimiter middleware.Limiter
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis init failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

		cartStore = cart.NewRedisStore(rdb, cfg.Redis.CartTTL)
		aiLimiter = middleware.NewRedisRateLimiter(rdb, cfg.RateLimit.AIRequests, cfg.RateLimit.AIWindow, logger)
	} else {
		logger.Warn("REDIS_ADDR empty, carts and rate limits are kept in process memory")
		cartStore = cart.NewMemoryStore()
		limiter := middleware.NewRateLimiter(cfg.RateLimit.AIRequests, cfg.RateLimit.AIWindow)
		go sweep(limiter, cfg.RateLimit.AIWindow)
		aiLimiter = limiter
	}

	// ───────────────────────── SERVICES ─────────────────────────
	userService := auth.NewService(auth.NewPostgresUserRepository(pool), logger)
	categoryService := category.NewService(category.NewPostgresRepository(pool), logger)
	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), categoryService, images, logger)
	cartService := cart.NewService(cartStore, catalogService, logger)
	orderService := order.NewService(order.NewPostgresRepository(pool), catalogService, cartService, logger)

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY empty, menu suggestions will fail")
	}
	assistant := llm.NewService(
		catalogService,
		llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, logger.Named("openai")),
		logger,
	)

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		Logger: logger,
		Tokens: auth.TokenConfig{
			Secret:   []byte(cfg.JWT.Secret),
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AILimiter:      aiLimiter,
		Checks:         checks,
		Users:          auth.NewHandler(userService, logger),
		Categories:     category.NewHandler(categoryService, logger),
		Catalog:        catalog.NewHandler(catalogService, logger),
		Cart:           cart.NewHandler(cartService, logger),
		Orders:         order.NewHandler(orderService, logger),
		Assistant:      llm.NewHandler(assistant, logger),
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           telemetry.Handler(r, "cuattro-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("api listening", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
}

func sweep(rl *middleware.RateLimiter, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		rl.Cleanup()
	}
}
