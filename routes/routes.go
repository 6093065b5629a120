package routes

import (
	"purchase-service/controllers"
	"purchase-service/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController) {
	productRoutes := r.Group("/products")
	productRoutes.Use(middleware.AuthMiddleware())
	{
		productRoutes.GET("/", pc.GetProducts)
		productRoutes.GET("/search", pc.SearchProducts)
		productRoutes.GET("/:id", pc.GetProductByID)
		productRoutes.GET("/scan/:code", pc.GetProductByScanCode)
		productRoutes.POST("/", pc.CreateProduct)
	}
}

func RegisterPurchaseRoutes(r *gin.Engine, pc *controllers.PurchaseController) {
	purchaseRoutes := r.Group("/purchases")
	purchaseRoutes.Use(middleware.AuthMiddleware())
	{
		purchaseRoutes.POST("/", pc.CreatePurchase)
		purchaseRoutes.GET("/", pc.ListPurchases)
		purchaseRoutes.GET("/:id", pc.GetPurchaseByID)
	}
}

func RegisterAnalyticsRoutes(r *gin.Engine, ac *controllers.AnalyticsController) {
	analyticsRoutes := r.Group("/analytics")
	analyticsRoutes.Use(middleware.AuthMiddleware())
	{
		analyticsRoutes.GET("/overview", ac.GetOverview)
	}
}
