package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rotacare/config"
	"rotacare/cron"
	"rotacare/database"
	accountRepoPkg "rotacare/database/repository/account"
	bookingRepoPkg "rotacare/database/repository/booking"
	carerRepoPkg "rotacare/database/repository/carer"
	clientRepoPkg "rotacare/database/repository/client"
	"rotacare/handlers"
	"rotacare/middleware"
	"rotacare/routes"
	"rotacare/services/account"
	"rotacare/services/booking"
	"rotacare/services/carer"
	"rotacare/services/notification"
	"rotacare/services/report"
	"rotacare/services/scheduling"
	"rotacare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	carerRepo := carerRepoPkg.NewMongoCarerRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	accountRepo := accountRepoPkg.NewMongoAccountRepo()

	bookingRepo.EnsureIndexes()
	carerRepo.EnsureIndexes()

	// services.
	validator := &scheduling.DefaultConflictValidator{
		Bookings: bookingRepo,
		Carers:   carerRepo,
		Clients:  clientRepo,
	}

	notifier := notification.NewRedisRotaNotifier(utils.GetCacheClient())

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	feeCharger := &booking.StripeFeeCharger{
		CustomerLookup: func(ctx context.Context, clientID string) (string, string, error) {
			cl, err := clientRepo.GetByID(ctx, clientID)
			if err != nil {
				return "", "", err
			}
			return cl.StripeCustomerID, cl.StripePaymentMethodID, nil
		},
	}

	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		CarerRepo:  carerRepo,
		ClientRepo: clientRepo,
		Validator:  validator,
		Notifier:   notifier,
		Payments:   feeCharger,
		Queue:      queueClient,
	}

	carerService := &carer.DefaultCarerService{
		Repo:     carerRepo,
		Bookings: bookingRepo,
		Cache:    utils.GetCacheClient(),
	}

	accountService := &account.DefaultAccountService{
		Repo:      accountRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}

	reportService := &report.DefaultReportService{
		Bookings: bookingRepo,
		Carers:   carerRepo,
		Clients:  clientRepo,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, validator, logger)
	carerHandler := handlers.NewCarerHandler(carerService)
	clientHandler := handlers.NewClientHandler(clientRepo)
	accountHandler := handlers.NewAccountHandler(accountService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Account endpoints.
		SignInHandler:        accountHandler.SignIn,
		SignOutHandler:       accountHandler.SignOut,
		CreateAccountHandler: accountHandler.Create,
		MeHandler:            accountHandler.Me,

		// Booking endpoints.
		ValidateAssignmentHandler: bookingHandler.Validate,
		CreateBookingHandler:      bookingHandler.Create,
		GetBookingHandler:         bookingHandler.Get,
		ListDayHandler:            bookingHandler.ListDay,
		EditBookingHandler:        bookingHandler.Edit,
		AddCarerHandler:           bookingHandler.AddCarer,
		CancelBookingHandler:      bookingHandler.Cancel,
		DeleteBookingHandler:      bookingHandler.Delete,
		MarkLateHandler:           bookingHandler.MarkLate,
		ReplicateWeekHandler:      bookingHandler.Replicate,

		// Carer endpoints.
		CreateCarerHandler:      carerHandler.Create,
		GetCarerHandler:         carerHandler.Get,
		ListCarersHandler:       carerHandler.List,
		UpdateCarerHandler:      carerHandler.Update,
		SetCarerStatusHandler:   carerHandler.SetStatus,
		DeleteCarerHandler:      carerHandler.Delete,
		CarerDayScheduleHandler: carerHandler.DaySchedule,

		// Client endpoints.
		CreateClientHandler: clientHandler.Create,
		GetClientHandler:    clientHandler.Get,
		ListClientsHandler:  clientHandler.List,
		UpdateClientHandler: clientHandler.Update,
		DeleteClientHandler: clientHandler.Delete,

		// Report endpoints.
		DailyRotaCSVHandler: reportHandler.DailyRotaCSV,
		DailyRotaPDFHandler: reportHandler.DailyRotaPDF,
		CarerHoursHandler:   reportHandler.CarerHours,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for reminders and end-of-visit sweeps.
	go cron.InitRotaWorker(bookingRepo)

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
