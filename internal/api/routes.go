package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (Logging, Recovery, CORS) are applied to the
// router instance before this function is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	userService core.UserService,
	catalogService core.CatalogService,
	cartService core.CartService,
	orderService core.OrderService,
	productService core.ProductService,
	bannerService core.BannerService,
	categoryService core.CategoryService,
	couponService core.CouponService,
) {
	// The Firebase Auth client must be available after db.InitFirestore().
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("CRITICAL_SETUP_ERROR: Firebase Auth client is not initialized. AuthMiddleware cannot be created.")
		panic("Firebase Auth client is nil during route setup")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, userService)

	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService)
	catalogHandler := NewCatalogHandler(catalogService)
	cartHandler := NewCartHandler(cartService)
	orderHandler := NewOrderHandler(orderService)
	productHandler := NewProductHandler(productService)
	bannerHandler := NewBannerHandler(bannerService)
	taxonomyHandler := NewTaxonomyHandler(categoryService, couponService)

	apiV1 := router.Group("/api/v1")
	{
		// --- Public storefront reads, no authentication required ---
		apiV1.GET("/catalog", catalogHandler.GetCatalog)
		apiV1.GET("/catalog/products/:productId", catalogHandler.GetProduct)
		apiV1.GET("/categories", taxonomyHandler.ListCategories)

		// --- User and authentication endpoints ---
		usersGroup := apiV1.Group("/users")
		{
			// Called after client-side Firebase login/signup to ensure the
			// backend profile exists.
			usersGroup.POST("/initialize", authMW.VerifyToken(), authHandler.InitializeUserProfile)
			usersGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		// --- Cart endpoints, all authenticated ---
		cartGroup := apiV1.Group("/cart", authMW.VerifyToken())
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.PATCH("/items", cartHandler.ChangeQuantity)
			cartGroup.DELETE("/items", cartHandler.RemoveItem)
		}

		// --- Customer order endpoints ---
		ordersGroup := apiV1.Group("/orders", authMW.VerifyToken())
		{
			ordersGroup.POST("", orderHandler.Checkout)
			ordersGroup.GET("", orderHandler.ListMyOrders)
			ordersGroup.GET("/:orderId", orderHandler.GetMyOrder)
		}

		// --- Encore request on past products ---
		apiV1.POST("/products/:productId/encore", authMW.VerifyToken(), productHandler.RequestEncore)

		// --- Admin back office, token plus role check ---
		adminGroup := apiV1.Group("/admin", authMW.VerifyToken(), authMW.RequireAdmin())
		{
			adminGroup.GET("/products", productHandler.ListProducts)
			adminGroup.POST("/products", productHandler.CreateProduct)
			adminGroup.PUT("/products/:productId", productHandler.UpdateProduct)
			adminGroup.DELETE("/products/:productId", productHandler.DeleteProduct)

			adminGroup.GET("/orders", orderHandler.ListOrders)
			// Search is registered before the status route only for reading
			// clarity; Gin matches literal segments ahead of params anyway.
			adminGroup.GET("/orders/search", orderHandler.SearchOrders)
			adminGroup.PUT("/orders/status", orderHandler.UpdateStatus)

			adminGroup.GET("/users", userHandler.ListUsers)
			adminGroup.PUT("/users/:userId/restriction", userHandler.SetRestriction)
			adminGroup.PUT("/users/:userId/role", userHandler.SetRole)

			adminGroup.GET("/banners", bannerHandler.ListBanners)
			adminGroup.POST("/banners", bannerHandler.CreateBanner)
			adminGroup.PUT("/banners/order", bannerHandler.ReorderBanners)
			adminGroup.PUT("/banners/:bannerId", bannerHandler.UpdateBanner)
			adminGroup.DELETE("/banners/:bannerId", bannerHandler.DeleteBanner)

			adminGroup.POST("/categories", taxonomyHandler.CreateCategory)
			adminGroup.DELETE("/categories/:categoryId", taxonomyHandler.DeleteCategory)

			adminGroup.GET("/coupons", taxonomyHandler.ListCoupons)
			adminGroup.POST("/coupons", taxonomyHandler.CreateCoupon)
			adminGroup.DELETE("/coupons/:couponId", taxonomyHandler.DeleteCoupon)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Group-buy backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
