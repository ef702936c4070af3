package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"groupbuy-backend-go/internal/api"
	"groupbuy-backend-go/internal/cache"
	"groupbuy-backend-go/internal/config"
	"groupbuy-backend-go/internal/core"
	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/events"
	"groupbuy-backend-go/internal/middleware"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	if db.GetFirebaseAuthClient() == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}

	// --- 4. Initialize cart store (Redis) ---
	// The cart is the only state kept outside Firestore; without Redis the
	// server cannot hold carts, so a connection failure is fatal.
	cartStore, err := cache.NewRedisCache(cache.NewRedisCacheConfig{
		Address:  appConfig.RedisAddress,
		Password: appConfig.RedisPassword,
		DB:       appConfig.RedisDB,
	})
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to Redis for cart storage", zap.Error(err))
	}
	zapLogger.Info("Redis cart store initialized successfully.", zap.String("address", appConfig.RedisAddress))

	// --- 5. Initialize order event publisher (RabbitMQ, optional) ---
	var publisher events.Publisher = events.NewNopPublisher()
	if appConfig.AMQPURL != "" {
		publisher, err = events.NewRabbitMQPublisher(events.NewRabbitMQPublisherConfig{
			URL:       appConfig.AMQPURL,
			QueueName: appConfig.OrderEventQueue,
		})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer publisher.Close()
		zapLogger.Info("RabbitMQ order event publisher initialized successfully.", zap.String("queue", appConfig.OrderEventQueue))
	} else {
		zapLogger.Warn("AMQP_URL is not configured; order events will not be published.")
	}

	// --- 6. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	productRepo := db.NewFirestoreProductRepository(firestoreClient)
	orderRepo := db.NewFirestoreOrderRepository(firestoreClient)
	bannerRepo := db.NewFirestoreBannerRepository(firestoreClient)
	categoryRepo := db.NewFirestoreCategoryRepository(firestoreClient)
	couponRepo := db.NewFirestoreCouponRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 7. Initialize Services ---
	userService := core.NewUserService(userRepo)
	catalogService := core.NewCatalogService(productRepo, bannerRepo)
	cartService := core.NewCartService(cartStore, productRepo)
	orderService := core.NewOrderService(orderRepo, userRepo, cartService, publisher)
	productService := core.NewProductService(productRepo)
	bannerService := core.NewBannerService(bannerRepo)
	categoryService := core.NewCategoryService(categoryRepo)
	couponService := core.NewCouponService(couponRepo)
	zapLogger.Info("Core services initialized successfully.")

	// --- 8. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 9. Apply Global Middleware (order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	// --- 10. Setup API Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		userService,
		catalogService,
		cartService,
		orderService,
		productService,
		bannerService,
		categoryService,
		couponService,
	)

	// --- 11. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 12. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
