package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendamento/config"
	"agendamento/cron"
	"agendamento/database"
	"agendamento/handlers"
	"agendamento/middleware"
	"agendamento/routes"
	"agendamento/services/booking"
	"agendamento/services/company"
	"agendamento/services/identity"
	"agendamento/services/user"
	"agendamento/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// healthInterval is how often the background monitor checks the store and cache.
const healthInterval = time.Minute

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := database.Open(rootCtx, cfg, logger)
	if err != nil {
		logger.Fatal("main: failed to open record store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	if err := utils.InitCache(); err != nil {
		// The cache is optional; listings fall back to the store.
		logger.Warn("main: cache unavailable, continuing without it", zap.Error(err))
	}
	cache := utils.GetCacheClient()

	identityProvider := &identity.SupabaseProvider{
		Client:    database.SupabaseClient(cfg),
		JWTSecret: []byte(cfg.SupabaseJWTSecret),
	}
	if cfg.SupabaseJWTSecret == "" {
		logger.Warn("main: SUPABASE_JWT_SECRET not set, protected routes will reject every token")
	}

	// services.
	bookingService := &booking.DefaultBookingService{
		Store:      store,
		Compensate: cfg.BookingCompensate,
		Logger:     logger.Named("booking"),
	}
	userService := &user.DefaultUserService{
		Repo:     store,
		Identity: identityProvider,
		Logger:   logger.Named("user"),
	}
	companyService := &company.DefaultCompanyService{
		Repo:     store,
		Cache:    cache,
		CacheTTL: cfg.CacheTTL,
		Logger:   logger.Named("company"),
	}

	handlerBundle := handlers.NewHandlerBundle(
		identityProvider,
		handlers.NewHealthHandler(store, cache, 2*healthInterval),
		handlers.NewUserHandler(userService),
		handlers.NewCompanyHandler(companyService),
		handlers.NewBookingHandler(bookingService),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(rootCtx, store, cache, healthInterval)

	sweepWorker, err := cron.StartOrphanSweeper(cfg, bookingService, logger.Named("sweep"))
	if err != nil {
		logger.Warn("main: orphan sweep not started", zap.Error(err))
	}

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "3000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Servidor rodando na porta %s", port)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()
	sweepWorker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to close record store: %v", err)
	}
	if cache != nil {
		_ = cache.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
