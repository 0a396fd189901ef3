package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/supplier-hub/internal/adapter/events"
	"github.com/rl1809/supplier-hub/internal/adapter/handler"
	"github.com/rl1809/supplier-hub/internal/adapter/storage"
	"github.com/rl1809/supplier-hub/internal/config"
	"github.com/rl1809/supplier-hub/internal/core/service"
	"github.com/rl1809/supplier-hub/internal/metrics"
	"github.com/rl1809/supplier-hub/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	orderStore := storage.NewOrderStore(db)
	clientStore := storage.NewClientStore(db)
	productStore := storage.NewProductStore(db)

	// Transition guard: in-process by default, Redis-backed when several
	// instances share the order pipeline.
	var guard port.TransitionGuard = service.NewMemoryGuard()
	var rdb *redis.Client
	if cfg.GuardBackend == "redis" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		log.Println("connected to redis")
		guard = storage.NewRedisGuard(rdb, time.Duration(cfg.GuardTTLSeconds)*time.Second)
	}

	var publisher port.EventPublisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Printf("publishing transition events to %s", cfg.KafkaTopic)
	}

	reconciler := service.NewStockReconciler(productStore)
	orderService := service.NewOrderService(orderStore, reconciler, guard, publisher)
	aggregator := service.NewAggregatorService(orderStore, clientStore, productStore)
	productService := service.NewProductService(productStore)

	m := metrics.New(prometheus.DefaultRegisterer)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	httpHandler := handler.NewHTTPHandler(orderService, aggregator, productService, m)
	httpHandler.Register(router)

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	if err := publisher.Close(); err != nil {
		log.Printf("close event publisher: %v", err)
	}
	if rdb != nil {
		rdb.Close()
	}
	db.Close()
	log.Println("connections closed")
}
