package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Manakin-Wraith/Cheap-Cheap/controllers"
	"github.com/Manakin-Wraith/Cheap-Cheap/logger"
	"github.com/Manakin-Wraith/Cheap-Cheap/middleware"
	"github.com/Manakin-Wraith/Cheap-Cheap/repository"
	"github.com/Manakin-Wraith/Cheap-Cheap/routes"
	"github.com/Manakin-Wraith/Cheap-Cheap/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Dataset ---
	repo, err := repository.New(context.Background(), cfg.DatasetPath)
	if err != nil {
		log.Fatal("Dataset repository init failed", zap.Error(err))
	}
	log.Info("Loading data from", zap.String("location", repo.Location()))

	// --- Dependency injection ---
	promotionService := services.NewPromotionService(repo, log)

	var limiter *middleware.RateLimiter
	stopCleanup := make(chan struct{})
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.PerMinute(cfg.RateLimitPerMinute)
		go limiter.RunCleanup(stopCleanup)
	}

	r := newRouter(cfg, promotionService, log, middleware.NewMetrics(), limiter)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Promotions API started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	close(stopCleanup)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	log.Info("Promotions API stopped gracefully")
}

// newRouter wires middleware and routes. limiter may be nil to disable rate limiting.
func newRouter(cfg *Config, svc services.PromotionService, log *zap.Logger, metrics *middleware.Metrics, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Handler())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	if limiter != nil {
		r.Use(middleware.RateLimitMiddleware(limiter))
	}

	routes.RegisterPromotionRoutes(r, controllers.NewPromotionController(svc))
	routes.RegisterMetricsRoute(r, metrics.Registry)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
