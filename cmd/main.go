package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/clubconnect/internal/config"
	"github.com/ferdian3456/clubconnect/internal/delivery/http/middleware"
	"github.com/ferdian3456/clubconnect/internal/exception"
	"github.com/ferdian3456/clubconnect/internal/metrics"
	tracelog "github.com/ferdian3456/clubconnect/internal/middleware"
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC

	bootstrapLog := config.NewZap("info")
	koanf := config.NewKoanf(bootstrapLog, config.ServerKeys...)
	zap := config.NewZap(koanf.String("LOG_LEVEL"))

	shutdownTracer, err := observability.Init(context.Background(), config.LoadObservabilityConfig(koanf, zap), zap)
	if err != nil {
		zap.Fatal("failed to initialize tracing", zapLog.Error(err))
	}

	fiber := config.NewFiber(zap)
	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)
	minio := config.NewMinIO(koanf, zap)

	// Recovery first so panics in later middleware still get the JSON envelope
	fiber.Use(exception.Recovery(zap))
	fiber.Use(otelfiber.Middleware())
	fiber.Use(metrics.Middleware())
	fiber.Use(tracelog.TraceLoggerMiddleware(zap))
	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	fiber.Use(middleware.SetupCORS(koanf.String("CORS_ALLOW_ORIGINS")))
	fiber.Use(middleware.SetupRateLimiter(zap))

	userUsecase := config.Server(&config.ServerConfig{
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
		MinIO:   minio,
	})

	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = userUsecase.EnsureAdmin(bootstrapCtx)
	bootstrapCancel()
	if err != nil {
		zap.Fatal("failed to bootstrap admin account", zapLog.Error(err))
	}

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	// Flush zap buffered log first then cancel the context for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	err = shutdownTracer(ctx)
	if err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	rds.Close()
	postgresql.Close()

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
