package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"apptreminders/config"
	"apptreminders/cron"
	"apptreminders/database"
	"apptreminders/database/repository"
	"apptreminders/handlers"
	"apptreminders/middleware"
	"apptreminders/routes"
	"apptreminders/services/notification"
	"apptreminders/services/reminder"
	"apptreminders/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Firebase is always needed for FCM; Firestore only for the default backend.
	app, err := utils.NewFirebaseApp(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Fatal("main: firebase init failed", zap.Error(err))
	}
	fcmClient, err := app.Messaging(ctx)
	if err != nil {
		logger.Fatal("main: error getting Messaging client", zap.Error(err))
	}
	pusher, err := notification.NewFCMPusher(fcmClient)
	if err != nil {
		logger.Fatal("main: push service init failed", zap.Error(err))
	}

	var repos *repository.Repositories
	switch cfg.StoreBackend {
	case config.BackendMongo:
		mongoClient, err := database.ConnectMongo(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("main: mongo init failed", zap.Error(err))
		}
		defer mongoClient.Disconnect(context.Background())

		repos, err = repository.NewMongoRepositories(ctx, mongoClient, cfg)
		if err != nil {
			logger.Fatal("main: mongo repositories init failed", zap.Error(err))
		}
	default:
		fsClient, err := database.ConnectFirestore(ctx, app)
		if err != nil {
			logger.Fatal("main: firestore init failed", zap.Error(err))
		}
		defer fsClient.Close()

		repos = repository.NewFirestoreRepositories(fsClient, cfg)
	}

	// services.
	dispatcher := &reminder.Dispatcher{
		Reminders:    repos.Reminders,
		Appointments: repos.Appointments,
		Users:        repos.Users,
		Pusher:       pusher,
		Logger:       logger.Named("dispatcher"),
		Limit:        cfg.DispatchLimit,
		DefaultTitle: cfg.DefaultReminderTitle,
	}
	sweeper := &reminder.Sweeper{
		Reminders:     repos.Reminders,
		Logger:        logger.Named("sweeper"),
		RetentionDays: cfg.RetentionDays,
	}
	watcher := &reminder.CancellationWatcher{
		Reminders: repos.Reminders,
		Logger:    logger.Named("cancellation"),
	}

	var redisClient *redis.Client
	if cfg.SchedulerEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisSchedulerDB,
		})
		defer redisClient.Close()

		worker := cron.NewReminderWorker(cfg, dispatcher, sweeper, logger.Named("worker"))
		if err := worker.Start(); err != nil {
			logger.Fatal("main: reminder worker failed to start", zap.Error(err))
		}
		defer worker.Shutdown()
	}

	health := utils.NewHealthMonitor(repos.Store, redisClient, logger.Named("health"))
	health.Start(ctx, 60*time.Second)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	triggerHandler := handlers.NewTriggerHandler(dispatcher, sweeper, watcher, logger.Named("http"))
	handlerBundle := &handlers.HandlerBundle{
		DispatchRemindersHandler:    triggerHandler.DispatchRemindersHandler,
		CleanupNotificationsHandler: triggerHandler.CleanupNotificationsHandler,
		AppointmentUpdatedHandler:   triggerHandler.AppointmentUpdatedHandler,
		HealthHandler:               handlers.HealthHandler(health),
		MetricsHandler:              gin.WrapH(promhttp.Handler()),
	}
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
