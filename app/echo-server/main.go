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

	"bundleForge/app/echo-server/router"
	"bundleForge/business/bundles"
	"bundleForge/business/campaign"
	"bundleForge/business/checkout"
	"bundleForge/business/discounts"
	"bundleForge/business/planner"
	"bundleForge/business/pricing"
	"bundleForge/internal/repository/ai"
	"bundleForge/internal/repository/commercetools"
	"bundleForge/internal/repository/imagestore"
	"bundleForge/internal/repository/klaviyo"
	"bundleForge/internal/repository/polisher"
	"bundleForge/internal/repository/stripe"
	"bundleForge/internal/rest"
	"bundleForge/pkg/config"
	"bundleForge/pkg/logger"
	"bundleForge/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting BundleForge", "version", cfg.App.Version)

	metrics.Init()

	// Init external repos
	commercetoolsRepo := commercetools.NewCommercetoolsRepository(
		commercetools.CommercetoolsConfig{
			ProjectKey:   cfg.Commercetools.ProjectKey,
			ClientID:     cfg.Commercetools.ClientID,
			ClientSecret: cfg.Commercetools.ClientSecret,
			AuthURL:      cfg.Commercetools.AuthURL,
			APIURL:       cfg.Commercetools.APIURL,
		},
	)

	aiRepo := ai.NewAIRepository(
		ai.AIConfig{
			APIKey:     cfg.OpenAI.APIKey,
			ChatModel:  cfg.OpenAI.ChatModel,
			ImageModel: cfg.OpenAI.ImageModel,
		},
	)

	stripeRepo := stripe.NewStripeRepository(
		stripe.StripeConfig{
			SecretKey: cfg.Stripe.SecretKey,
			APIURL:    cfg.Stripe.APIURL,
		},
	)

	klaviyoRepo := klaviyo.NewKlaviyoRepository(
		klaviyo.KlaviyoConfig{
			APIKey:    cfg.Klaviyo.APIKey,
			APIURL:    cfg.Klaviyo.APIURL,
			ListID:    cfg.Klaviyo.ListID,
			FromEmail: cfg.Klaviyo.FromEmail,
			FromName:  cfg.Klaviyo.FromName,
		},
	)

	polisherRepo := polisher.NewPolisherRepository(
		polisher.PolisherConfig{URL: cfg.Polisher.URL},
	)

	images := imagestore.New(cfg.Images.Dir, time.Duration(cfg.Images.DownloadTimeoutSecs)*time.Second)

	// Init service
	plannerService := planner.NewPlannerService(commercetoolsRepo, aiRepo, images)
	bundlesService := bundles.NewBundlesService(commercetoolsRepo, cfg.App.BaseURL)
	discountsService := discounts.NewDiscountsService(commercetoolsRepo, cfg.App.CheckoutBaseURL)
	checkoutService := checkout.NewCheckoutService(stripeRepo)
	campaignService := campaign.NewCampaignService(aiRepo, klaviyoRepo)
	pricingService := pricing.NewPricingService()

	// Init handler
	planHandler := rest.NewPlanHandler(plannerService)
	bundlesHandler := rest.NewBundlesHandler(bundlesService)
	discountsHandler := rest.NewDiscountsHandler(discountsService, checkoutService, cfg.App.BaseURL)
	imageHandler := rest.NewImageHandler(plannerService)
	campaignHandler := rest.NewCampaignHandler(campaignService)
	polishHandler := rest.NewPolishHandler(polisherRepo)
	applyHandler := rest.NewApplyHandler(pricingService)
	checkoutHandler := rest.NewCheckoutHandler(checkoutService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetPlanRoutes(api, planHandler)
	router.SetBundleRoutes(api, bundlesHandler)
	router.SetDiscountRoutes(api, discountsHandler)
	router.SetImageRoutes(api, imageHandler)
	router.SetCampaignRoutes(api, campaignHandler)
	router.SetPolishRoutes(api, polishHandler)
	router.SetApplyRoutes(api, applyHandler)
	router.SetCheckoutRoutes(api, checkoutHandler)

	// Locally saved bundle images
	e.Static("/bundle-images", cfg.Images.Dir)

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
