package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitpass/config"
	"fitpass/cron"
	"fitpass/database"
	recordsRepo "fitpass/database/repository/records"
	"fitpass/handlers"
	"fitpass/routes"
	"fitpass/services/analytics"
	"fitpass/services/auth"
	"fitpass/services/checkout"
	"fitpass/services/discount"
	"fitpass/upstream"
	"fitpass/utils"

	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(
		[]*redis.Client{
			utils.GetSessionCacheClient(),
			utils.GetCheckoutCacheClient(),
			utils.GetAuthFlowCacheClient(),
		},
		database.MongoClient,
	)

	// External collaborators.
	upstreamClient := upstream.NewClient(config.AppConfig.UpstreamBaseURL, logger)

	var analyticsClient analytics.Client = analytics.Noop{}
	if config.AppConfig.MixpanelToken != "" {
		analyticsClient = analytics.NewMixpanelClient(config.AppConfig.MixpanelToken, logger)
	}
	defer analyticsClient.Dispose()

	// Stores and repositories.
	sessionStore := auth.NewRedisSessionStore(utils.GetSessionCacheClient(), logger)
	flowStore := auth.NewRedisFlowStore(utils.GetAuthFlowCacheClient())
	checkoutStore := checkout.NewRedisStore(utils.GetCheckoutCacheClient())
	records := recordsRepo.NewMongoRecordsRepo()

	// Services.
	authService := &auth.DefaultAuthService{
		Upstream:    upstreamClient,
		Flows:       flowStore,
		Sessions:    sessionStore,
		Analytics:   analyticsClient,
		Logger:      logger,
		PhonePrefix: config.AppConfig.PhonePrefix,
		MockOTP:     !config.IsProduction() && config.AppConfig.MockOTP,
	}

	discountResolver := &discount.DefaultResolver{
		Upstream: upstreamClient,
		Logger:   logger,
	}

	checkoutService := &checkout.DefaultCheckoutService{
		Store:         checkoutStore,
		Upstream:      upstreamClient,
		Discounts:     discountResolver,
		Gateway:       checkout.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.RazorpaySecret),
		Records:       records,
		Queue:         cron.NewEnqueuer(logger),
		Analytics:     analyticsClient,
		Logger:        logger,
		PromoCodeType: "fitness",
	}

	cron.InitReconcileWorker(upstreamClient, records)

	handlerBundle := &handlers.HandlerBundle{
		Auth:     authService,
		Checkout: checkoutService,
		Upstream: upstreamClient,
		Sessions: sessionStore,
	}

	router := routes.SetupRouter(handlerBundle)

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
