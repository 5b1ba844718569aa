package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mr1hm/go-disaster-maps/internal/api"
	"github.com/mr1hm/go-disaster-maps/internal/config"
	"github.com/mr1hm/go-disaster-maps/internal/ingestion"
	"github.com/mr1hm/go-disaster-maps/internal/logging"
	"github.com/mr1hm/go-disaster-maps/internal/observability"
	"github.com/mr1hm/go-disaster-maps/internal/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		logging.Fatalf("Failed to create output dir: %v", err)
	}

	transport := ingestion.NewHTTPTransport(cfg.Sources.HTTPTimeout)
	defer transport.Close()

	fires := ingestion.NewFireLoader(transport, cfg.Sources.FireURL, cfg.Cache.FirePath)
	quakes := ingestion.NewEarthquakeLoader(transport, cfg.Sources.EarthquakeURL)
	renderer := render.NewHTMLRenderer(cfg.Output.Dir, cfg.Output.PlotlyJSURL, nil)
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // must stay false with wildcard origins
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimit))

	handler := api.NewHandler(fires, quakes, renderer, metrics)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
