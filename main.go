package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"storefront/config"
	_ "storefront/docs"
	"storefront/middleware"
	"storefront/models"
	"storefront/payment"
	"storefront/routes"
	"storefront/services"
)

func main() {

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.InitRedis()

	gateway, err := payment.NewBraintreeGateway(
		config.AppConfig.BraintreeEnv,
		config.AppConfig.BraintreeMerchantID,
		config.AppConfig.BraintreePublicKey,
		config.AppConfig.BraintreePrivateKey,
	)
	if err != nil {
		log.Fatalf("Failed to configure payment gateway: %v", err)
	}

	var mailer services.OrderMailer
	if emailService, err := models.NewEmailService(); err != nil {
		log.Println("Email service disabled:", err)
	} else {
		mailer = emailService
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, gateway, mailer)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
