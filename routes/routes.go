package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/controllers"
	"storefront/middleware"
	"storefront/payment"
	"storefront/repositories"
	"storefront/services"
)

// SetupRoutes wires all controllers. The payment gateway and mailer are
// injected so the checkout flow never reaches for a global client.
func SetupRoutes(router *gin.Engine, gateway payment.Gateway, mailer services.OrderMailer) {
	authCtrl := controllers.NewAuthController()
	userCtrl := controllers.NewUserController()
	categoryCtrl := controllers.NewCategoryController()
	productCtrl := controllers.NewProductController()

	orderRepo := repositories.NewOrderRepository()
	checkout := services.NewCheckoutService(repositories.NewProductRepository(), orderRepo, gateway, mailer)
	paymentCtrl := controllers.NewPaymentController(gateway, checkout)
	orderCtrl := controllers.NewOrderController(orderRepo)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.POST("/auth/forgot-password", authCtrl.ForgotPassword)

	router.GET("/categories", categoryCtrl.GetCategories)
	router.GET("/categories/:slug", categoryCtrl.GetCategoryBySlug)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/filter", productCtrl.FilterProducts)
	router.GET("/products/photo/:id", productCtrl.GetProductPhoto)
	router.GET("/products/search/:keyword", productCtrl.SearchProducts)
	router.GET("/products/:slug", productCtrl.GetProductBySlug)
	router.GET("/products/:slug/related", productCtrl.GetRelatedProducts)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.GET("/payment/token", paymentCtrl.GetToken)
		auth.POST("/payment/process", paymentCtrl.ProcessPayment)

		auth.GET("/orders", orderCtrl.GetOrders)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/users/:id", userCtrl.GetUserByID)
		admin.PATCH("/users/:id", userCtrl.UpdateUser)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PUT("/categories/:id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PUT("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PUT("/orders/:orderId/status", orderCtrl.UpdateOrderStatus)
	}
}
