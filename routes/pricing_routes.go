package routes

import (
	handlers "ridefare/internal/handlers/shared"
	"ridefare/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes sets up the public price calculation routes
func SetupPricingRoutes(r *gin.RouterGroup, pricingHandler *handlers.PricingHandler) {
	pricing := r.Group("/pricing")
	{
		pricing.GET("/calculate", pricingHandler.CalculatePrice)
	}
}

// SetupPricingConfigRoutes sets up the administrative config routes. These
// are the only write path into the config store; activation exclusivity and
// audit logging cannot be bypassed from here.
func SetupPricingConfigRoutes(r *gin.RouterGroup, configHandler *handlers.PricingConfigHandler) {
	configs := r.Group("/admin/pricing/configs")
	configs.Use(middleware.ActingUserMiddleware())
	{
		configs.POST("/", configHandler.CreateConfig)
		configs.GET("/", configHandler.ListConfigs)
		configs.GET("/active", configHandler.GetActiveConfig)
		configs.GET("/:id", configHandler.GetConfig)
		configs.PUT("/:id", configHandler.UpdateConfig)
		configs.DELETE("/:id", configHandler.DeleteConfig)
		configs.POST("/:id/activate", configHandler.ActivateConfig)
		configs.GET("/:id/logs", configHandler.GetConfigLogs)
	}
}
