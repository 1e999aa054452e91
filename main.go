package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homehelper/config"
	"homehelper/database"
	bookingRepoPkg "homehelper/database/repository/booking"
	providerRepoPkg "homehelper/database/repository/provider"
	serviceRepoPkg "homehelper/database/repository/service"
	userRepoPkg "homehelper/database/repository/user"
	"homehelper/handlers"
	"homehelper/middleware"
	"homehelper/routes"
	"homehelper/services/booking"
	"homehelper/services/catalog"
	"homehelper/services/identity"
	"homehelper/services/provider"
	"homehelper/services/session"
	"homehelper/utils"
	"homehelper/workers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitWizardCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	availabilityRepo := providerRepoPkg.NewMongoAvailabilityRepo()

	// Reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	defer asynqClient.Close()
	workers.InitReminderWorker()

	// Services.
	identityService := &identity.DefaultIdentityService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}
	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Reminders: workers.NewReminderScheduler(asynqClient),
	}
	catalogService := catalog.NewCatalogService(serviceRepo, utils.GetCacheClient())
	availabilityService := provider.NewAvailabilityService(availabilityRepo)

	// Per-session state containers.
	sessionTTL := time.Duration(config.AppConfig.TokenTTLHours) * time.Hour
	sessionManager := session.NewManager(identityService, utils.GetAuthCacheClient(), sessionTTL)

	wizardTTL := time.Duration(config.AppConfig.WizardTTLMinutes) * time.Minute
	snapshotStore := booking.NewRedisSnapshotStore(utils.GetWizardCacheClient(), wizardTTL)
	wizardManager := booking.NewManager(bookingService, snapshotStore)

	// Handlers.
	authHandler := &handlers.AuthHandler{Sessions: sessionManager, Profiles: identityService}
	bookingHandler := &handlers.BookingHandler{
		Wizards:  wizardManager,
		Bookings: bookingService,
		Catalog:  catalogService,
	}
	catalogHandler := &handlers.CatalogHandler{Catalog: catalogService}
	providerHandler := &handlers.ProviderHandler{
		Availability: availabilityService,
		Bookings:     bookingService,
	}
	adminHandler := &handlers.AdminHandler{
		Identity: identityService,
		Bookings: bookingService,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Session endpoints.
		RegisterHandler:      authHandler.RegisterHandler,
		LoginHandler:         authHandler.LoginHandler,
		LogoutHandler:        authHandler.LogoutHandler,
		MeHandler:            authHandler.MeHandler,
		UpdateProfileHandler: authHandler.UpdateProfileHandler,
		DashboardHandler:     handlers.DashboardHandler,

		// Catalog endpoints.
		ListServicesHandler:           catalogHandler.ListServicesHandler,
		GetServiceHandler:             catalogHandler.GetServiceHandler,
		CreateServiceHandler:          catalogHandler.CreateServiceHandler,
		UpdateServiceHandler:          catalogHandler.UpdateServiceHandler,
		SetServiceAvailabilityHandler: catalogHandler.SetServiceAvailabilityHandler,

		// Booking wizard endpoints.
		WizardStateHandler:   bookingHandler.StateHandler,
		SelectServiceHandler: bookingHandler.SelectServiceHandler,
		SetScheduleHandler:   bookingHandler.SetScheduleHandler,
		SetAddressHandler:    bookingHandler.SetAddressHandler,
		SetPaymentHandler:    bookingHandler.SetPaymentHandler,
		SetDetailsHandler:    bookingHandler.SetDetailsHandler,
		StepHandler:          bookingHandler.StepHandler,
		ConfirmHandler:       bookingHandler.ConfirmHandler,
		ClearHandler:         bookingHandler.ClearHandler,
		CancelHandler:        bookingHandler.CancelHandler,
		MyBookingsHandler:    bookingHandler.MyBookingsHandler,

		// Provider endpoints.
		SetAvailabilityHandler: providerHandler.SetAvailabilityHandler,
		GetAvailabilityHandler: providerHandler.GetAvailabilityHandler,
		ProviderJobsHandler:    providerHandler.JobsHandler,
		UpdateJobStatusHandler: providerHandler.UpdateJobStatusHandler,

		// Admin endpoints.
		ListUsersHandler:           adminHandler.ListUsersHandler,
		ListBookingsHandler:        adminHandler.ListBookingsHandler,
		UpdateBookingStatusHandler: adminHandler.UpdateBookingStatusHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
