package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotecompare/config"
	"quotecompare/cron"
	"quotecompare/database"
	"quotecompare/database/repository"
	"quotecompare/handlers"
	"quotecompare/middleware"
	"quotecompare/routes"
	"quotecompare/services/admin"
	"quotecompare/services/notification"
	"quotecompare/services/quote"
	"quotecompare/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	rootCtx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	// Firebase: auth, Firestore and FCM. Absent credentials mean mock mode.
	fb, err := utils.FirebaseInit(rootCtx)
	if err != nil {
		logger.Error("main: Firebase initialization failed, continuing in mock mode", zap.Error(err))
		fb = nil
	}
	mockMode := fb == nil
	if mockMode {
		logger.Warn("⚠️  Firebase credentials not found. Running in MOCK MODE: tokens are not verified and quotes fall back to the local store.")
	}
	defer fb.Close()

	// Stores.
	backends := repository.Backends{LocalDir: config.AppConfig.LocalDataDir}
	healthChecks := map[string]utils.HealthCheck{}
	var mongoClient *mongo.Client
	switch config.AppConfig.StoreDriver {
	case config.StoreFirestore:
		if fb != nil {
			backends.Firestore = fb.Firestore
		}
	case config.StoreMongo:
		mongoClient, err = database.InitMongo(rootCtx, config.AppConfig.DatabaseURL)
		if err != nil {
			logger.Error("main: MongoDB unavailable, using local store", zap.Error(err))
		} else {
			backends.Mongo = mongoClient.Database(config.AppConfig.MongoDB)
			healthChecks["mongo"] = func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }
		}
	case config.StoreLocal:
	default:
		logger.Warn("main: unknown STORE_DRIVER, using local store", zap.String("driver", config.AppConfig.StoreDriver))
	}
	stores, err := repository.OpenStores(backends)
	if err != nil {
		logger.Fatal("main: failed to open stores", zap.Error(err))
	}
	logger.Info("main: stores ready", zap.String("mode", stores.Mode), zap.String("localDir", config.AppConfig.LocalDataDir))

	// Redis-backed auth cache.
	utils.InitAuthCache()
	if cache := utils.GetAuthCacheClient(); cache != nil {
		healthChecks["redis"] = func(ctx context.Context) error { return cache.Ping(ctx).Err() }
	}
	utils.StartHealthMonitor(rootCtx, 30*time.Second, healthChecks)

	// Notifications.
	var mailer notification.Mailer = notification.LogMailer{}
	if config.MailConfigured() {
		mailer = &notification.SMTPMailer{
			Host:     config.AppConfig.EmailHost,
			Port:     config.AppConfig.EmailPort,
			User:     config.AppConfig.EmailUser,
			Password: config.AppConfig.EmailPass,
			FromName: config.AppConfig.EmailFromName,
		}
	} else {
		logger.Info("main: email credentials not set, emails will be logged only")
	}
	var push notification.PushSender = notification.LogPush{}
	if fb != nil {
		push = notification.NewFCMPush(fb.Messaging)
	}
	notificationService, err := notification.NewDefaultNotificationService(mailer, push, notification.Options{
		TrackingBaseURL:   config.AppConfig.TrackingBaseURL,
		VendorTopicPrefix: config.AppConfig.VendorTopicPrefix,
		AppName:           config.AppConfig.EmailFromName,
	})
	if err != nil {
		logger.Fatal("main: failed to build notification service", zap.Error(err))
	}

	var dispatcher notification.Dispatcher
	var worker *cron.NotificationWorker
	var queueClient *asynq.Client
	if config.AppConfig.RedisAddr != "" {
		redisOpts := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}
		queueClient = asynq.NewClient(redisOpts)
		worker = cron.NewNotificationWorker(redisOpts, notificationService)
		if err := worker.Start(); err != nil {
			logger.Error("main: notification worker unavailable, delivering in-process", zap.Error(err))
			worker = nil
			_ = queueClient.Close()
			queueClient = nil
		}
	}
	if queueClient != nil {
		dispatcher = notification.NewQueueDispatcher(queueClient, notificationService, config.AppConfig.NotifyTimeout)
	} else {
		dispatcher = notification.NewGoroutineDispatcher(notificationService, config.AppConfig.NotifyTimeout)
	}

	// Auth.
	authenticator := &middleware.Authenticator{
		Users:         stores.Users,
		Cache:         utils.GetAuthCacheClient(),
		CacheTTL:      config.AppConfig.AuthCacheTTL,
		AllowInsecure: config.InsecureDecodeAllowed(),
	}
	if fb != nil {
		authenticator.Verifier = fb.Auth
	}
	if authenticator.AllowInsecure {
		logger.Warn("⚠️  AUTH_INSECURE_DEV_DECODE is on: unverifiable tokens are decoded without signature checks")
	}

	// services.
	quoteService := quote.NewDefaultQuoteService(stores.Quotes, stores.Users, dispatcher)
	var identity admin.IdentityAdmin
	if fb != nil {
		identity = fb.Auth
	}
	adminService := admin.NewDefaultAdminService(stores.Users, stores.Quotes, identity)

	handlerBundle := &handlers.HandlerBundle{
		Authenticator: authenticator,
		QuoteHandler:  handlers.NewQuoteHandler(quoteService),
		AdminHandler:  handlers.NewAdminHandler(adminService),
		HealthHandler: &handlers.HealthHandler{StoreMode: stores.Mode, MockMode: mockMode},
	}
	if config.AppConfig.EnableMetrics {
		handlerBundle.Metrics = middleware.NewMetrics()
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "3000"
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
	stopMonitors()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := dispatcher.Wait(ctx); err != nil {
		logger.Warn("main: pending notifications abandoned", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(context.Background())
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
