package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"baseti_shopapp_v1_202609/internal/controller"
	"baseti_shopapp_v1_202609/internal/middleware"
	"baseti_shopapp_v1_202609/internal/model"
)

// Controllers 控制器集合
type Controllers struct {
	Auth         *controller.AuthController
	Business     *controller.BusinessController
	Product      *controller.ProductController
	Customer     *controller.CustomerController
	Order        *controller.OrderController
	Social       *controller.SocialController
	Content      *controller.ContentController
	Cart         *controller.CartController
	Storefront   *controller.StorefrontController
	Dashboard    *controller.DashboardController
	Notification *controller.NotificationController
}

// SetupRouter 注册所有路由
// resolver 负责把登录用户解析成租户上下文，守卫中间件按权限表放行
func SetupRouter(ctls *Controllers, resolver middleware.TenantResolver) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Device-Id"},
		AllowCredentials: true,
	}))

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// local 存储模式的商品图片
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")
	{
		// auth 认证组 (部分接口需登录)
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctls.Auth.Register)
			auth.POST("/login", ctls.Auth.Login)
			auth.POST("/refresh", ctls.Auth.RefreshToken)

			authed := auth.Group("", middleware.JWTAuth())
			{
				authed.POST("/logout", ctls.Auth.Logout)
				authed.GET("/me", ctls.Auth.Me)
				authed.PUT("/password", ctls.Auth.ChangePassword)
			}
		}

		// 店铺前台 (公开，无登录态)
		shops := api.Group("/shops")
		{
			shops.GET("/:slug", ctls.Storefront.GetShop)
			shops.GET("/:slug/products", ctls.Storefront.GetProducts)
			shops.GET("/:slug/products/:id", ctls.Storefront.GetProduct)
			shops.POST("/:slug/checkout", ctls.Storefront.Checkout)

			cart := shops.Group("/:slug/cart")
			{
				cart.GET("", ctls.Cart.Get)
				cart.DELETE("", ctls.Cart.Clear)
				cart.POST("/items", ctls.Cart.AddItem)
				cart.PUT("/items/:id", ctls.Cart.UpdateQuantity)
				cart.DELETE("/items/:id", ctls.Cart.RemoveItem)
			}
		}
		api.GET("/orders/track/:order_no", ctls.Storefront.TrackOrder)

		// 后台业务组，登录 + 租户上下文
		backoffice := api.Group("", middleware.JWTAuth())
		{
			// 通知出口 (toast)，登录即可
			backoffice.GET("/notifications", ctls.Notification.Drain)

			// 商家资料
			business := backoffice.Group("/business", middleware.RequireTenant(resolver))
			{
				business.GET("/profile", ctls.Business.GetProfile)
				business.GET("/context", ctls.Business.GetTenantContext)
			}
			backoffice.PUT("/business/profile",
				middleware.RequirePermission(resolver, model.PermChangeSettings),
				ctls.Business.UpdateProfile)

			// 商品
			products := backoffice.Group("/products", middleware.RequirePermission(resolver, model.PermManageProducts))
			{
				products.GET("", ctls.Product.GetList)
				products.GET("/stats", ctls.Product.InventoryStats)
				products.GET("/:id", ctls.Product.GetDetail)
				products.POST("", ctls.Product.Create)
				products.PUT("/:id", ctls.Product.Update)
				products.DELETE("/:id", ctls.Product.Delete)
				products.POST("/:id/stock", ctls.Product.AdjustStock)
				products.POST("/:id/image", ctls.Product.UploadImage)
			}

			// 客户
			customers := backoffice.Group("/customers", middleware.RequirePermission(resolver, model.PermManageOrders))
			{
				customers.GET("", ctls.Customer.GetList)
				customers.GET("/:id", ctls.Customer.GetDetail)
				customers.POST("", ctls.Customer.Create)
				customers.PUT("/:id", ctls.Customer.Update)
				customers.DELETE("/:id", ctls.Customer.Delete)
			}

			// 订单
			orders := backoffice.Group("/orders", middleware.RequirePermission(resolver, model.PermManageOrders))
			{
				orders.GET("", ctls.Order.GetList)
				orders.GET("/:id", ctls.Order.GetDetail)
				orders.POST("", ctls.Order.Create)
				orders.PUT("/:id/status", ctls.Order.UpdateStatus)
			}

			// 社媒连接与内容排期
			social := backoffice.Group("/social", middleware.RequirePermission(resolver, model.PermChangeSettings))
			{
				social.GET("/connections", ctls.Social.GetList)
				social.POST("/connections", ctls.Social.Connect)
				social.PUT("/connections/:id", ctls.Social.Update)
				social.POST("/connections/:id/verify", ctls.Social.Verify)
				social.DELETE("/connections/:id", ctls.Social.Disconnect)
			}
			content := backoffice.Group("/content", middleware.RequirePermission(resolver, model.PermManageProducts))
			{
				content.GET("/plans", ctls.Content.GetList)
				content.GET("/plans/upcoming", ctls.Content.GetUpcoming)
				content.POST("/plans", ctls.Content.Create)
				content.PUT("/plans/:id", ctls.Content.Update)
				content.DELETE("/plans/:id", ctls.Content.Delete)
				content.POST("/generate", ctls.Content.GenerateCaption)
			}

			// 看板
			backoffice.GET("/dashboard",
				middleware.RequirePermission(resolver, model.PermViewAnalytics),
				ctls.Dashboard.Stats)

			// 平台管理 (owner/admin 或平台超管)
			admin := backoffice.Group("/admin", middleware.RequireAdmin(resolver))
			{
				admin.GET("/businesses", ctls.Business.ListBusinesses)
				admin.PUT("/tenant", ctls.Business.SetCurrentTenant)
				admin.PUT("/businesses/:id/role", ctls.Business.SetRole)
				admin.PUT("/businesses/:id/active", ctls.Business.SetActive)
			}
		}
	}

	return r
}
