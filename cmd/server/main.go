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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sweettreats/bakery-pos/internal/config"
	"github.com/sweettreats/bakery-pos/internal/handlers"
	"github.com/sweettreats/bakery-pos/internal/insight"
	"github.com/sweettreats/bakery-pos/internal/middleware"
	"github.com/sweettreats/bakery-pos/internal/repository"
	"github.com/sweettreats/bakery-pos/internal/service"
	"github.com/sweettreats/bakery-pos/pkg/logger"
)

func main() {
	// Load .env if present, then configuration from environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting bakery pos server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store_backend", cfg.Store.Backend,
		"log_level", cfg.LogLevel,
	)

	// Initialize bill store per configured backend
	var billStore repository.BillStore
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		billStore = repository.NewRedisBillStore(client, cfg.Store.RedisKey)
	case "memory":
		billStore = repository.NewMemoryBillStore()
	default:
		billStore = repository.NewFileBillStore(cfg.Store.Path)
	}

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()

	// Initialize services
	productService := service.NewProductService(productRepo)
	billService := service.NewBillService(productRepo, billStore, cfg.TaxRate)
	reportService := service.NewReportService(billStore)
	insightGenerator := insight.NewGenerator(cfg.Insight, log)

	if cfg.Insight.APIKey == "" {
		log.Warn("insight api key not configured, insights will use fallback text")
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(productService, log)
	billHandler := handlers.NewBillHandler(billService, log)
	reportHandler := handlers.NewReportHandler(reportService, cfg.Shop.Name, log)
	insightHandler := handlers.NewInsightHandler(billService, insightGenerator, log)
	shopHandler := handlers.NewShopHandler(cfg.Shop, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)

		// Bill endpoints; mutations require an API key
		r.Get("/bill", billHandler.ListBills)
		r.Get("/bill/{billId}", billHandler.GetBill)
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Post("/bill", billHandler.CreateBill)
			r.Delete("/bill/{billId}", billHandler.DeleteBill)
		})

		// Report endpoints
		r.Get("/report/summary", reportHandler.Summary)
		r.Get("/report/export", reportHandler.Export)

		// Insight endpoint
		r.Get("/insight", insightHandler.GetInsight)

		// Shop details for invoice rendering
		r.Get("/shop", shopHandler.GetShop)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
