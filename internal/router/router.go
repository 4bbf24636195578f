package router

import (
	"github.com/blues/gms/internal/config"
	"github.com/blues/gms/internal/handler"
	"github.com/blues/gms/internal/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, processor payment.Processor, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "grove-marketplace-service",
		})
	})

	// webhook单独挂在根路径下
	webhookHandler := handler.NewWebhookHandler(db, processor, cfg)
	r.POST("/webhooks/payment", webhookHandler.HandleWebhook)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 建造者账户
		foundationHandler := handler.NewFoundationHandler(db)
		foundations := v1.Group("/foundations")
		{
			foundations.POST("", foundationHandler.CreateFoundation)
			foundations.GET("/:id", foundationHandler.GetFoundation)
		}

		// 作品
		creationHandler := handler.NewCreationHandler(db)
		creations := v1.Group("/creations")
		{
			creations.POST("", creationHandler.PublishCreation)
			creations.GET("", creationHandler.GetCreations)
			creations.GET("/:id", creationHandler.GetCreation)
			creations.PUT("/:id/shares", creationHandler.UpdateCreationShares)
		}

		// 购买
		checkoutHandler := handler.NewCheckoutHandler(db, processor)
		v1.POST("/checkout", checkoutHandler.Checkout)

		// 收款账户
		payoutHandler := handler.NewPayoutHandler(db, processor)
		v1.POST("/payout-accounts", payoutHandler.ProvisionPayoutAccount)

		// 贡献积分
		contributionHandler := handler.NewContributionHandler(db)
		contributions := v1.Group("/contributions")
		{
			contributions.POST("", contributionHandler.RecordContribution)
			contributions.GET("/:id", contributionHandler.GetContributionStatus)
		}

		// 能力与功能门禁
		abilityHandler := handler.NewAbilityHandler(db)
		abilities := v1.Group("/abilities")
		{
			abilities.GET("/check", abilityHandler.CheckAbility)
			abilities.POST("/check", abilityHandler.BulkCheckAbilities)
		}
		features := v1.Group("/features")
		{
			features.GET("/check", abilityHandler.CheckFeature)
			features.GET("/:id", abilityHandler.ListFeatures)
		}

		// 看板
		dashboardHandler := handler.NewDashboardHandler(db, cfg)
		v1.GET("/dashboard/:id", dashboardHandler.GetDashboard)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
