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

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/okairos/servibook/internal/adapter/cache"
	"github.com/okairos/servibook/internal/adapter/feed"
	"github.com/okairos/servibook/internal/adapter/handler"
	"github.com/okairos/servibook/internal/adapter/repository/postgres"
	"github.com/okairos/servibook/internal/core/services"
	"github.com/okairos/servibook/internal/platform/config"
	"github.com/okairos/servibook/internal/platform/database"
	"github.com/okairos/servibook/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(cfg.LogFilePath, cfg.Environment == "production")
	defer appLog.Sync()

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	}, appLog)
	if err != nil {
		appLog.Fatal("failed to connect to db after retries", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		DB:   0,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		appLog.Fatal("failed to connect to redis", zap.Error(err))
	}
	appLog.Info("redis connected")

	bookingRepo := postgres.NewBookingRepository(db)
	queryCache := cache.NewMemoryCache()
	changeFeed := feed.NewRedisFeed(redisClient, cfg.FeedChannelPrefix, appLog)

	lifecycleService := services.NewLifecycleService(bookingRepo, queryCache, changeFeed, appLog)
	paymentService := services.NewPaymentService(bookingRepo, queryCache, appLog)
	scopeService := services.NewScopeService(bookingRepo, appLog)
	listingService := services.NewListingService(bookingRepo, queryCache, appLog)
	feedSync := services.NewFeedSync(changeFeed, queryCache, lifecycleService, appLog)

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	go func() {
		if err := feedSync.Run(feedCtx); err != nil && feedCtx.Err() == nil {
			appLog.Error("feed consumer exited", zap.Error(err))
		}
	}()

	bookingHandler := handler.NewBookingHandler(lifecycleService, paymentService, scopeService, listingService)

	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", bookingHandler.ListBookings)
	mux.HandleFunc("/bookings/statuses", bookingHandler.AvailableStatuses)
	mux.HandleFunc("/bookings/status-change", bookingHandler.RequestStatusChange)
	mux.HandleFunc("/bookings/status-change/confirm", bookingHandler.ConfirmStatusChange)
	mux.HandleFunc("/bookings/status-change/cancel", bookingHandler.CancelStatusChange)
	mux.HandleFunc("/bookings/archive", bookingHandler.ArchiveBookings)
	mux.HandleFunc("/bookings/delete", bookingHandler.DeleteBookings)
	mux.HandleFunc("/payments/mark-paid", bookingHandler.MarkAsPaid)
	mux.HandleFunc("/payments/verify", bookingHandler.VerifyPayment)
	mux.HandleFunc("/payments/refund", bookingHandler.RefundPayment)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLog.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("server startup failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("shutting down server")
	stopFeed()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Fatal("server forced to shutdown", zap.Error(err))
	}

	appLog.Info("server exiting")
}
