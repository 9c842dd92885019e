package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/config"
	"servicehub/cron"
	"servicehub/database"
	"servicehub/database/repository"
	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/routes"
	"servicehub/services/auth"
	"servicehub/services/booking"
	"servicehub/services/cart"
	"servicehub/services/catalog"
	"servicehub/services/events"
	ai "servicehub/services/intelligence"
	"servicehub/services/messaging"
	"servicehub/services/notification"
	"servicehub/services/scheduling"
	"servicehub/services/tasks"
	"servicehub/services/voice"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if config.AppConfig.JWTSecret == "" {
			logger.Sugar().Fatal("main: JWT_SECRET must be set in production")
		}
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(rootCtx, utils.RedisClients(), database.MongoClient)
	db := database.GetDatabase()

	// repositories.
	catalogRepo := repository.NewMongoCatalogRepo(db)
	bookingRepo := repository.NewMongoBookingRepo(db)
	requestRepo := repository.NewMongoRequestRepo(db)
	messagingRepo := repository.NewMongoMessagingRepo(db)
	if err := catalogRepo.EnsureIndexes(rootCtx); err != nil {
		logger.Warn("main: catalog indexes not ensured", zap.Error(err))
	}
	if err := database.EnsureIndexes(rootCtx, db); err != nil {
		logger.Warn("main: indexes not ensured", zap.Error(err))
	}

	// catalog.
	catalogSvc := catalog.NewStore(catalogRepo, logger)
	if err := catalogSvc.Refresh(rootCtx); err != nil {
		logger.Warn("main: initial catalog load failed, starting empty", zap.Error(err))
	}

	// cart and scheduling.
	carts := cart.NewRegistry(
		repository.NewRedisCartStorage(utils.GetCartCacheClient()),
		cart.WithLogger(logger),
		cart.WithMaxRetries(config.AppConfig.CartPersistRetries),
	)
	carts.IdleTTL = config.AppConfig.CartIdleTTL
	scheduler := scheduling.NewScheduler(catalogSvc, config.AppConfig.ScheduleWindowDays, nil)

	// notifications.
	var sender notification.Sender
	fcm, err := utils.FirebaseMessaging(rootCtx, config.AppConfig.FirebaseCredentialsFile)
	if err != nil {
		logger.Warn("main: firebase unavailable, pushes will only be logged", zap.Error(err))
	} else if fcm != nil {
		sender = fcm
	}
	notifier, err := notification.NewDefaultNotificationService(notification.NewRedisTokenStore(utils.GetCacheClient()), sender, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// task queue.
	queue := asynq.NewClient(tasks.RedisOpt())
	defer queue.Close()

	// bookings.
	publisher := events.New(config.KafkaBrokerList(), config.AppConfig.KafkaBookingTopic)
	defer publisher.Close()
	bookingSvc := booking.NewDefaultBookingService(bookingRepo, catalogSvc, config.AppConfig.Currency, logger)
	bookingSvc.Events = publisher
	bookingSvc.Reminders = queue
	bookingSvc.Notifier = notifier
	if config.AppConfig.StripeKey != "" {
		bookingSvc.Payments = booking.NewStripePaymentProcessor(config.AppConfig.StripeKey, logger)
	} else {
		logger.Warn("main: STRIPE_KEY not set, checkout creates no payment intents")
	}

	// assistant.
	var assistant ai.AssistantService
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini: %v", err)
		}
		defer gemini.Close()
		assistant = ai.NewAssistantService(gemini, catalogSvc, logger)
	} else {
		logger.Warn("main: GEMINI_API_KEY not set, assistant chat disabled")
	}

	// messaging.
	hub := messaging.NewHub(logger)
	messagingSvc := messaging.NewDefaultMessagingService(messagingRepo, hub, logger)

	authSvc := auth.NewDefaultAuthService(auth.NewRedisOTPStore(utils.GetOTPCacheClient()), auth.Options{
		TokenTTL:  config.AppConfig.TokenTTL,
		DemoPhone: config.AppConfig.DemoPhone,
		DemoOTP:   config.AppConfig.DemoOTP,
		AllowDemo: !config.IsProduction(),
	}, logger)

	handlerBundle := &handlers.HandlerBundle{
		Auth:          handlers.NewAuthHandler(authSvc),
		Catalog:       handlers.NewCatalogHandler(catalogSvc),
		Cart:          handlers.NewCartHandler(carts),
		Schedule:      handlers.NewScheduleHandler(scheduler, carts),
		Booking:       handlers.NewBookingHandler(bookingSvc, carts),
		Conversations: handlers.NewConversationHandler(messagingSvc, hub),
		Devices:       handlers.NewDeviceHandler(notifier),
	}
	if assistant != nil {
		handlerBundle.AI = handlers.NewAIHandler(assistant)
	}

	// storage and voice requests need Cloudinary.
	var voiceSvc *voice.DefaultVoiceService
	if store, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: cloudinary unavailable, uploads and voice requests disabled", zap.Error(err))
	} else {
		handlerBundle.Storage = handlers.NewStorageHandler(store, config.AppConfig.CertificateKey)

		voiceSvc = voice.NewDefaultVoiceService(store, requestRepo, queue, logger)
		if assistant != nil {
			voiceSvc.Structurer = assistant
		}
		transcriber, err := voice.NewGoogleTranscriber(rootCtx, config.AppConfig.GoogleServiceAccountFile)
		if err != nil {
			logger.Warn("main: speech-to-text unavailable, voice requests will fail", zap.Error(err))
		} else {
			defer transcriber.Close()
			voiceSvc.Transcriber = transcriber
		}
		handlerBundle.Requests = handlers.NewRequestHandler(voiceSvc)
	}

	// background worker.
	var processor cron.VoiceProcessor
	if voiceSvc != nil {
		processor = voiceSvc
	}
	worker := cron.NewWorker(tasks.RedisOpt(), notifier, processor, logger)
	worker.Start()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	stop()
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to close MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
