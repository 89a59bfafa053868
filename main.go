package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"khidma/config"
	"khidma/cron"
	"khidma/database"
	providerRepo "khidma/database/repository/provider"
	requestRepo "khidma/database/repository/request"
	scheduleRepo "khidma/database/repository/schedule"
	userRepo "khidma/database/repository/user"
	"khidma/handlers"
	"khidma/middleware"
	"khidma/routes"
	"khidma/services/notification"
	"khidma/services/scheduling"
	"khidma/services/tasks"
	"khidma/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	custRepo := userRepo.NewMongoCustomerRepo()
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	reqRepo := requestRepo.NewMongoRequestRepo()

	// services.
	schedulingService := &scheduling.DefaultSchedulingService{
		Providers: provRepo,
		Customers: custRepo,
		Schedule:  schedRepo,
		Requests:  reqRepo,
	}

	taskClient := tasks.NewClient()
	defer taskClient.Close()
	cron.InitStatusWorker(notification.LogGateway{})

	requestHandler := handlers.NewRequestHandler(schedulingService, taskClient, utils.GetCacheClient(), logger)
	providerDayHandler := handlers.NewProviderDayHandler(schedulingService, logger)

	routes.RegisterRoutes(router, requestHandler, providerDayHandler)

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
