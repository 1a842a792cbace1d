package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/handler"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Yield      *handler.YieldHandler
	Purchase   *handler.PurchaseHandler
	Referral   *handler.ReferralHandler
	Payment    *handler.PaymentHandler
	Withdrawal *handler.WithdrawalHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, tokens gateway.TokenIssuer) {
	api := router.Group("/api")

	// public
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", handlers.Auth.Register)
		authRoutes.POST("/login", handlers.Auth.Login)
	}
	api.POST("/webhooks/mercadopago", handlers.Payment.Webhook)
	api.GET("/assets", handlers.Purchase.ListAssets)

	// authenticated
	authenticated := api.Group("")
	authenticated.Use(middleware.Auth(tokens))
	{
		authenticated.GET("/user/profile", handlers.User.Profile)
		authenticated.POST("/yield/accrue", handlers.Yield.Accrue)
		authenticated.POST("/purchases", handlers.Purchase.Buy)
		authenticated.GET("/holdings", handlers.Purchase.ListHoldings)
		authenticated.GET("/referrals", handlers.Referral.List)
		authenticated.POST("/payments", handlers.Payment.CreatePayment)
		authenticated.POST("/payments/status", handlers.Payment.PaymentStatus)
		authenticated.POST("/withdrawals", handlers.Withdrawal.Withdraw)
		authenticated.GET("/withdrawals", handlers.Withdrawal.History)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, allowedOrigins []string) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(allowedOrigins))
}
