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

	"github.com/joho/godotenv"

	"github.com/jcamposr/storefront-gateway/internal/checkoutlog"
	checkoutsqlite "github.com/jcamposr/storefront-gateway/internal/checkoutlog/sqlite"
	"github.com/jcamposr/storefront-gateway/internal/pkg/cache"
	"github.com/jcamposr/storefront-gateway/internal/pkg/telemetry"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/session"
	"github.com/jcamposr/storefront-gateway/internal/storefront/infra/adapters/backend"
	"github.com/jcamposr/storefront-gateway/internal/storefront/infra/httpx"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "storefront-gateway"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	backendBase := getEnv("BACKEND_BASE_URL", "http://localhost:8001")

	var opts []backend.Option
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		opts = append(opts, backend.WithCache(cache.NewRedisCache(addr, "storefront"), 30*time.Second))
		slog.Info("catalog cache enabled", "redis_addr", addr)
	}
	client := backend.New(backendBase, opts...)

	var checkoutLog checkoutlog.Repository
	if path := os.Getenv("CHECKOUT_LOG_PATH"); path != "" {
		repo, err := checkoutsqlite.Open(path)
		if err != nil {
			slog.Error("failed to open checkout log", "path", path, "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		checkoutLog = repo
		slog.Info("checkout log enabled", "path", path)
	}

	sessions := session.NewRegistry(getDurationEnv("SESSION_TTL", 30*time.Minute))
	go sessions.Sweep(ctx, time.Minute)

	handler := httpx.NewHandler(client, client, checkoutLog)
	router := httpx.NewRouter(handler, sessions)

	addr := getEnv("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("storefront gateway running", "addr", addr, "backend", backendBase)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("invalid duration, using fallback", "key", key, "value", value, "fallback", fallback)
	}
	return fallback
}
