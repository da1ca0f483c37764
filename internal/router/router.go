package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecomdev/electronics-shop-api/internal/config"
	"github.com/ecomdev/electronics-shop-api/internal/handlers"
	"github.com/ecomdev/electronics-shop-api/internal/middleware"
	"github.com/ecomdev/electronics-shop-api/internal/services"
)

// Initialize builds the gin engine with all middleware and routes wired.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Services
	paymentService := services.NewPaymentService(cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(db, cfg)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db)
	addressService := services.NewAddressService(db)
	couponService := services.NewCouponService(db)
	orderService := services.NewOrderService(db, cfg, paymentService, couponService)
	reviewService := services.NewReviewService(db)
	wishlistService := services.NewWishlistService(db)
	adminService := services.NewAdminService(db, orderService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	addressHandler := handlers.NewAddressHandler(addressService)
	couponHandler := handlers.NewCouponHandler(couponService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	adminHandler := handlers.NewAdminHandler(adminService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Authentication
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
		auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		profile := auth.Group("")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("/profile", authHandler.GetProfile)
			profile.PUT("/profile", authHandler.UpdateProfile)
			profile.PUT("/password", authHandler.ChangePassword)
		}
	}

	// Public catalog. OptionalAuth attaches the user claim when a token is
	// present so request logs carry user_id for signed-in browsing.
	catalog := api.Group("")
	catalog.Use(middleware.OptionalAuth())
	{
		catalog.GET("/categories", categoryHandler.List)
		catalog.GET("/categories/:id", categoryHandler.Get)
		catalog.GET("/products", productHandler.List)
		catalog.GET("/products/search", productHandler.Search)
		catalog.GET("/products/featured", productHandler.Featured)
		catalog.GET("/products/:id", productHandler.Get)
		catalog.GET("/products/:id/reviews", reviewHandler.ListForProduct)
	}

	// Authenticated customer routes
	authed := api.Group("")
	authed.Use(middleware.AuthRequired())
	{
		cart := authed.Group("/cart")
		{
			cart.GET("", cartHandler.Get)
			cart.DELETE("", cartHandler.Clear)
			cart.GET("/count", cartHandler.Count)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("", orderHandler.ListMine)
			orders.GET("/:id", orderHandler.Get)
			orders.POST("/:id/cancel", orderHandler.Cancel)
		}

		addresses := authed.Group("/addresses")
		{
			addresses.GET("", addressHandler.List)
			addresses.POST("", addressHandler.Create)
			addresses.PUT("/:id", addressHandler.Update)
			addresses.DELETE("/:id", addressHandler.Delete)
			addresses.PUT("/:id/default", addressHandler.SetDefault)
		}

		wishlist := authed.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.List)
			wishlist.POST("/:productId", wishlistHandler.Add)
			wishlist.DELETE("/:productId", wishlistHandler.Remove)
		}

		authed.POST("/products/:id/reviews", reviewHandler.Create)
		authed.PUT("/reviews/:id", reviewHandler.Update)
		authed.DELETE("/reviews/:id", reviewHandler.Delete)
		authed.POST("/coupons/validate", couponHandler.Validate)
	}

	// Management routes: catalog and order operations need manager or above,
	// user administration and analytics need admin.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired())
	{
		manager := admin.Group("")
		manager.Use(middleware.ManagerRequired())
		{
			manager.POST("/categories", categoryHandler.Create)
			manager.PUT("/categories/:id", categoryHandler.Update)
			manager.DELETE("/categories/:id", categoryHandler.Delete)
			manager.PUT("/categories/:id/toggle", categoryHandler.ToggleStatus)

			manager.POST("/products", productHandler.Create)
			manager.PUT("/products/:id", productHandler.Update)
			manager.DELETE("/products/:id", productHandler.Delete)
			manager.POST("/products/:id/images", productHandler.UploadImages)

			manager.GET("/orders", orderHandler.ListAll)
			manager.GET("/orders/stats", orderHandler.Stats)
			manager.GET("/orders/:id", orderHandler.GetAny)
			manager.PUT("/orders/:id/status", orderHandler.UpdateStatus)
			manager.POST("/orders/:id/mark-paid", orderHandler.MarkPaid)

			manager.GET("/coupons", couponHandler.List)
			manager.GET("/coupons/:id", couponHandler.Get)
			manager.POST("/coupons", couponHandler.Create)
			manager.PUT("/coupons/:id", couponHandler.Update)
			manager.DELETE("/coupons/:id", couponHandler.Delete)

			manager.GET("/reviews/pending", reviewHandler.ListPending)
			manager.PUT("/reviews/:id/moderate", reviewHandler.Moderate)
		}

		adminOnly := admin.Group("")
		adminOnly.Use(middleware.AdminRequired())
		{
			adminOnly.GET("/dashboard", adminHandler.Dashboard)
			adminOnly.GET("/users", adminHandler.ListUsers)
			adminOnly.POST("/users", adminHandler.CreateUser)
			adminOnly.GET("/users/:id", adminHandler.GetUser)
			adminOnly.PUT("/users/:id", adminHandler.UpdateUser)
			adminOnly.PUT("/users/:id/toggle", adminHandler.ToggleUserStatus)
			adminOnly.GET("/analytics/products", adminHandler.ProductAnalytics)
			adminOnly.GET("/analytics/revenue", adminHandler.RevenueAnalytics)
		}
	}

	return r, nil
}
