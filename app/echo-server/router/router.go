package router

import (
	"bundleForge/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetPlanRoutes(api *echo.Group, handler *rest.PlanHandler) {
	api.GET("/plan", handler.Usage)
	api.POST("/plan", handler.CreatePlan)
	api.GET("/plan/:id", handler.GetPlan)
}

func SetBundleRoutes(api *echo.Group, handler *rest.BundlesHandler) {
	api.GET("/create-bundles", handler.Usage)
	api.POST("/create-bundles", handler.CreateBundles)
}

func SetDiscountRoutes(api *echo.Group, handler *rest.DiscountsHandler) {
	api.GET("/create-discounts", handler.Usage)
	api.POST("/create-discounts", handler.CreateDiscounts)
}

func SetImageRoutes(api *echo.Group, handler *rest.ImageHandler) {
	api.GET("/generate-bundle-image", handler.Usage)
	api.POST("/generate-bundle-image", handler.GenerateBundleImage)
}

func SetCampaignRoutes(api *echo.Group, handler *rest.CampaignHandler) {
	api.GET("/campaign", handler.Usage)
	api.POST("/campaign", handler.CreateCampaign)
}

func SetPolishRoutes(api *echo.Group, handler *rest.PolishHandler) {
	api.GET("/polish-email", handler.Usage)
	api.POST("/polish-email", handler.PolishEmail)
}

func SetApplyRoutes(api *echo.Group, handler *rest.ApplyHandler) {
	api.GET("/apply", handler.Usage)
	api.POST("/apply", handler.ApplyPriceChanges)
}

func SetCheckoutRoutes(api *echo.Group, handler *rest.CheckoutHandler) {
	checkout := api.Group("/checkout")
	checkout.GET("/sessions/:id", handler.GetSession)
}
