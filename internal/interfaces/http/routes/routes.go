// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API v1 routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	chatHandler := handlers.NewChatHandler(db, cfg)
	returnsHandler := handlers.NewReturnsHandler(db, cfg)
	adminProductHandler := handlers.NewAdminProductHandler(db, cfg)
	adminUserHandler := handlers.NewAdminUserHandler(db, cfg)
	adminCouponHandler := handlers.NewAdminCouponHandler(db, cfg)
	adminOrderHandler := handlers.NewAdminOrderHandler(db, cfg)
	adminInventoryHandler := handlers.NewAdminInventoryHandler(db, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)

	// Public authentication routes
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
	}

	// Public catalogue routes
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Session cart routes; guests carry X-Session-ID
	cart := rg.Group("/cart")
	cart.Use(middleware.SessionMiddleware())
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items", cartHandler.UpdateCart)
		cart.DELETE("/items/:product_id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}

	// Checkout works for guests and signed-in users
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.SessionMiddleware(), middleware.OptionalAuthMiddleware(cfg))
	{
		checkout.POST("", checkoutHandler.ProcessCheckout)
	}

	// Authenticated customer routes
	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		orders := protected.Group("/orders")
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/invoice", orderHandler.DownloadInvoice)
		}

		chat := protected.Group("/chat")
		{
			chat.GET("/messages", chatHandler.GetMessages)
			chat.POST("/messages", chatHandler.SendMessage)
		}

		protected.GET("/returns", returnsHandler.GetMyRequests)
		protected.POST("/returns", returnsHandler.CreateReturn)
		protected.POST("/exchanges", returnsHandler.CreateExchange)
	}

	// Admin back-office routes
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		adminProducts := admin.Group("/products")
		{
			adminProducts.POST("", adminProductHandler.CreateProduct)
			adminProducts.PUT("/:id", adminProductHandler.UpdateProduct)
			adminProducts.DELETE("/:id", adminProductHandler.DeleteProduct)
			adminProducts.POST("/upload", adminProductHandler.UploadImage)
		}

		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", adminUserHandler.ListUsers)
			adminUsers.DELETE("/:id", adminUserHandler.DeleteUser)
		}

		adminCoupons := admin.Group("/coupons")
		{
			adminCoupons.GET("", adminCouponHandler.ListCoupons)
			adminCoupons.POST("", adminCouponHandler.CreateCoupon)
			adminCoupons.DELETE("/:id", adminCouponHandler.DeleteCoupon)
		}

		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", adminOrderHandler.ListOrders)
			adminOrders.GET("/:id", adminOrderHandler.GetOrder)
			adminOrders.PUT("/:id/status", adminOrderHandler.UpdateOrderStatus)
		}

		adminChat := admin.Group("/chat")
		{
			adminChat.GET("/conversations", chatHandler.GetConversations)
			adminChat.GET("/:user_id/messages", chatHandler.GetUserMessages)
			adminChat.POST("/:user_id/messages", chatHandler.Reply)
		}

		admin.GET("/returns", returnsHandler.GetAllRequests)
		admin.PUT("/exchanges/:id/status", returnsHandler.UpdateExchangeStatus)

		admin.GET("/inventory/:product_id/movements", adminInventoryHandler.GetMovements)

		admin.GET("/analytics/dashboard", analyticsHandler.GetDashboardStats)
	}
}
