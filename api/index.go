package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"storefront/config"
	"storefront/middleware"
	"storefront/models"
	"storefront/payment"
	"storefront/routes"
	"storefront/services"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.ConnectDB()
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
		if emailService, err := models.NewEmailService(); err == nil {
			mailer = emailService
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router, gateway, mailer)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
