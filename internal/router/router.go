package router

import (
	"fmt"
	"strings"

	"github.com/shabihhaider/waterbottle-admin/internal/cache"
	"github.com/shabihhaider/waterbottle-admin/internal/config"
	adminhandlers "github.com/shabihhaider/waterbottle-admin/internal/http/handlers/admin"
	"github.com/shabihhaider/waterbottle-admin/internal/logger"
	"github.com/shabihhaider/waterbottle-admin/internal/provider"
	"github.com/shabihhaider/waterbottle-admin/internal/storage"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "hp"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地存储时直接挂载静态文件（账单 PDF 等）
	if local, ok := c.Store.(*storage.LocalStore); ok {
		r.Static("/files", local.Dir())
	}

	// API 路由组
	api := r.Group("/api")
	{
		// 登录接口（无需鉴权）
		api.POST("/auth/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIP), adminHandler.AdminLogin)

		// 需要鉴权的接口
		authorized := api.Use(JWTAuthMiddleware(cfg.JWT, c.AdminRepo))
		{
			// 账户
			authorized.GET("/auth/me", adminHandler.GetAdminProfile)
			authorized.PUT("/auth/password", adminHandler.ChangeAdminPassword)

			// 仪表盘与分析
			authorized.GET("/dashboard/metrics", adminHandler.GetDashboard)
			authorized.GET("/analytics", adminHandler.GetAnalyticsOverview)
			authorized.POST("/analytics", adminHandler.GetAnalyticsOverview)

			// 客户管理
			authorized.GET("/customers", adminHandler.GetCustomers)
			authorized.GET("/customers/:id", adminHandler.GetCustomer)
			authorized.POST("/customers", adminHandler.CreateCustomer)
			authorized.PUT("/customers/:id", adminHandler.UpdateCustomer)
			authorized.DELETE("/customers/:id", adminHandler.DeleteCustomer)

			// 商品与库存
			authorized.GET("/products", adminHandler.GetProducts)
			authorized.GET("/products/low-stock", adminHandler.GetLowStockProducts)
			authorized.GET("/products/:id", adminHandler.GetProduct)
			authorized.POST("/products", adminHandler.CreateProduct)
			authorized.PUT("/products/:id", adminHandler.UpdateProduct)
			authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
			authorized.POST("/products/:id/restock", adminHandler.AdjustProductStock)
			authorized.GET("/products/:id/movements", adminHandler.GetProductMovements)

			// 订单管理
			authorized.GET("/orders", adminHandler.GetOrders)
			authorized.GET("/orders/:id", adminHandler.GetOrder)
			authorized.POST("/orders", adminHandler.CreateOrder)
			authorized.PUT("/orders/:id", adminHandler.UpdateOrder)
			authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			authorized.POST("/orders/:id/cancel", adminHandler.CancelOrder)

			// 账单管理
			authorized.GET("/invoices", adminHandler.GetInvoices)
			authorized.GET("/invoices/:id", adminHandler.GetInvoice)
			authorized.POST("/invoices", adminHandler.CreateInvoice)
			authorized.POST("/invoices/:id/payments", adminHandler.RecordInvoicePayment)
			authorized.POST("/invoices/:id/cancel", adminHandler.CancelInvoice)
			authorized.GET("/invoices/:id/pdf", adminHandler.GetInvoicePDF)
			authorized.POST("/invoices/:id/pdf", adminHandler.RenderInvoicePDF)

			// 配送管理
			authorized.GET("/deliveries", adminHandler.GetDeliveries)
			authorized.GET("/deliveries/:id", adminHandler.GetDelivery)
			authorized.POST("/deliveries", adminHandler.CreateDelivery)
			authorized.POST("/deliveries/:id/assign", adminHandler.AssignDeliveryDriver)
			authorized.PATCH("/deliveries/:id/status", adminHandler.UpdateDeliveryStatus)

			// 司机管理
			authorized.GET("/drivers", adminHandler.GetDrivers)
			authorized.GET("/drivers/:id", adminHandler.GetDriver)
			authorized.POST("/drivers", adminHandler.CreateDriver)
			authorized.PUT("/drivers/:id", adminHandler.UpdateDriver)
			authorized.DELETE("/drivers/:id", adminHandler.DeleteDriver)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
