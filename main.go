// File: kerjalink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kerjalink/config"
	"kerjalink/cron"
	"kerjalink/database"
	bookingRepoPkg "kerjalink/database/repository/booking"
	businessRepoPkg "kerjalink/database/repository/business"
	complianceRepoPkg "kerjalink/database/repository/compliance"
	historyRepoPkg "kerjalink/database/repository/history"
	jobRepoPkg "kerjalink/database/repository/job"
	reviewRepoPkg "kerjalink/database/repository/review"
	walletRepoPkg "kerjalink/database/repository/wallet"
	workerRepoPkg "kerjalink/database/repository/worker"
	"kerjalink/handlers"
	"kerjalink/middleware"
	"kerjalink/routes"
	"kerjalink/services/booking"
	"kerjalink/services/compliance"
	"kerjalink/services/job"
	"kerjalink/services/reliability"
	"kerjalink/services/review"
	"kerjalink/services/wallet"
	"kerjalink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitScoreCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	workerRepo := workerRepoPkg.NewMongoWorkerRepo()
	businessRepo := businessRepoPkg.NewMongoBusinessRepo()
	jobRepo := jobRepoPkg.NewMongoJobRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	complianceRepo := complianceRepoPkg.NewMongoComplianceRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	walletRepo := walletRepoPkg.NewMongoWalletRepo()
	historyRepo := historyRepoPkg.NewMongoScoreHistoryRepo()

	// Asynq client for background score recomputes.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer taskClient.Close()

	// services.
	complianceService := &compliance.DefaultComplianceService{
		WorkerRepo:     workerRepo,
		BusinessRepo:   businessRepo,
		ComplianceRepo: complianceRepo,
		BookingRepo:    bookingRepo,
	}

	reliabilityService := &reliability.DefaultReliabilityService{
		WorkerRepo:  workerRepo,
		BookingRepo: bookingRepo,
		ReviewRepo:  reviewRepo,
		HistoryRepo: historyRepo,
		Cache:       utils.GetScoreCacheClient(),
	}

	bookingService := &booking.DefaultBookingService{
		BookingRepo: bookingRepo,
		JobRepo:     jobRepo,
		WorkerRepo:  workerRepo,
		WalletRepo:  walletRepo,
		Compliance:  complianceService,
		Tasks:       taskClient,
	}

	jobService := &job.DefaultJobService{
		JobRepo:      jobRepo,
		BusinessRepo: businessRepo,
	}

	reviewService := &review.DefaultReviewService{
		ReviewRepo:  reviewRepo,
		BookingRepo: bookingRepo,
		Tasks:       taskClient,
	}

	walletService := &wallet.DefaultWalletService{
		WalletRepo: walletRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Profile:     handlers.NewProfileHandler(workerRepo, businessRepo),
		Job:         handlers.NewJobHandler(jobService),
		Booking:     handlers.NewBookingHandler(bookingService),
		Compliance:  handlers.NewComplianceHandler(complianceService),
		Reliability: handlers.NewReliabilityHandler(reliabilityService),
		Wallet:      handlers.NewWalletHandler(walletService),
		Review:      handlers.NewReviewHandler(reviewService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker consuming score recompute tasks.
	go cron.InitScoreWorker(reliabilityService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetScoreCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
