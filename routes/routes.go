package routes

import (
	"net/http"

	"myshop-backend/controllers"
	"myshop-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup configures and returns the Gin engine.
func Setup(ctrl *controllers.Controller, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	protect := middleware.Protect(ctrl.PasetoSecretKey)
	adminOnly := middleware.AdminOnly()

	api := r.Group("/api")
	{
		api.GET("/health", ctrl.HealthCheck)

		api.POST("/auth/register", ctrl.Register)
		api.POST("/auth/login", ctrl.Login)
		api.GET("/auth/profile", protect, ctrl.GetProfile)
		api.PUT("/auth/profile", protect, ctrl.UpdateProfile)

		api.GET("/products", ctrl.GetProducts)
		api.GET("/products/:id", ctrl.GetProduct)
		api.POST("/products", protect, adminOnly, ctrl.CreateProduct)
		api.PUT("/products/:id", protect, adminOnly, ctrl.UpdateProduct)
		api.DELETE("/products/:id", protect, adminOnly, ctrl.DeleteProduct)

		api.GET("/categories", ctrl.GetCategories)
		api.POST("/categories", protect, adminOnly, ctrl.CreateCategory)
		api.DELETE("/categories/:id", protect, adminOnly, ctrl.DeleteCategory)

		api.GET("/users", protect, adminOnly, ctrl.GetUsers)
		api.GET("/users/:id", protect, adminOnly, ctrl.GetUserByID)
		api.PUT("/users/:id", protect, adminOnly, ctrl.UpdateUser)
		api.DELETE("/users/:id", protect, adminOnly, ctrl.DeleteUser)

		api.POST("/orders", protect, ctrl.CreateOrder)
		api.GET("/orders/myorders", protect, ctrl.GetMyOrders)
		api.GET("/orders", protect, adminOnly, ctrl.GetOrders)
		api.GET("/orders/:id", protect, ctrl.GetOrderByID)

		api.GET("/settings", ctrl.GetSettings)
		api.PUT("/settings", protect, adminOnly, ctrl.UpdateSettings)

		api.GET("/dashboard", protect, adminOnly, ctrl.GetDashboard)

		api.POST("/upload", ctrl.UploadImage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Endpoint not found"})
	})
	return r
}
