package router

import (
	"fmt"
	"strings"

	"github.com/loopiify-next/internal/cache"
	"github.com/loopiify-next/internal/config"
	adminhandlers "github.com/loopiify-next/internal/http/handlers/admin"
	webhookhandlers "github.com/loopiify-next/internal/http/handlers/webhook"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	webhookHandler := webhookhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "lp"
	}
	webhookRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:webhook", redisPrefix),
		WindowSeconds: cfg.Webhook.RateLimitWindowSeconds,
		MaxRequests:   cfg.Webhook.RateLimitMaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// WooCommerce 插件回调，按 API Key 限流
		webhook := api.Group("/webhook")
		{
			webhook.POST("/order",
				RateLimitMiddleware(cache.Client(), webhookRule, KeyByAPIKey("X-API-Key")),
				webhookHandler.HandleOrder,
			)
		}

		// 管理端接口
		admin := api.Group("/admin")
		{
			admin.GET("/stores", adminHandler.GetStores)
			admin.POST("/stores", adminHandler.CreateStore)
			admin.GET("/stores/:id", adminHandler.GetStore)
			admin.PUT("/stores/:id", adminHandler.UpdateStore)
			admin.DELETE("/stores/:id", adminHandler.DeleteStore)
			admin.POST("/stores/:id/rotate-key", adminHandler.RotateStoreWebhookKey)
			admin.POST("/stores/:id/sync", adminHandler.SyncStoreOrders)

			// 会员计划
			admin.GET("/stores/:id/program", adminHandler.GetActiveProgram)
			admin.GET("/stores/:id/stamp-cards", adminHandler.GetStampCards)
			admin.GET("/stores/:id/points-configs", adminHandler.GetPointsConfigs)
			admin.POST("/stores/:id/stamp-cards/:program_id/activate", adminHandler.ActivateStampCard)
			admin.POST("/stores/:id/points-configs/:program_id/activate", adminHandler.ActivatePointsConfig)
			admin.POST("/stores/:id/programs/deactivate", adminHandler.DeactivatePrograms)
			admin.POST("/stamp-cards", adminHandler.CreateStampCard)
			admin.POST("/points-configs", adminHandler.CreatePointsConfig)

			// 顾客
			admin.GET("/customers", adminHandler.GetCustomers)
			admin.GET("/customers/:id", adminHandler.GetCustomer)

			// 抽奖活动
			admin.GET("/campaigns", adminHandler.GetCampaigns)
			admin.POST("/campaigns", adminHandler.CreateCampaign)
			admin.GET("/campaigns/:id", adminHandler.GetCampaign)
			admin.POST("/campaigns/:id/end", adminHandler.EndCampaign)
			admin.POST("/campaigns/:id/draw", adminHandler.RunDraw)
			admin.GET("/campaigns/:id/entries", adminHandler.GetCampaignEntries)

			// 群发
			admin.POST("/blasts", adminHandler.SendBlast)

			// 跟进流程
			admin.GET("/flows", adminHandler.GetFlows)
			admin.POST("/flows", adminHandler.CreateFlow)
			admin.GET("/flows/:id", adminHandler.GetFlow)
			admin.PUT("/flows/:id", adminHandler.UpdateFlow)
			admin.DELETE("/flows/:id", adminHandler.DeleteFlow)
			admin.POST("/flows/enroll", adminHandler.EnrollCustomer)

			// 消息任务
			admin.GET("/jobs", adminHandler.GetJobs)
		}
	}

	return r
}
