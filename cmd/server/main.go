package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
	identityapp "github.com/markethub/backend/internal/application/identity"
	listingapp "github.com/markethub/backend/internal/application/listing"
	subscriptionapp "github.com/markethub/backend/internal/application/subscription"
	tradeapp "github.com/markethub/backend/internal/application/trade"
	vendorapp "github.com/markethub/backend/internal/application/vendor"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/listing"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/cache"
	"github.com/markethub/backend/internal/infrastructure/config"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/infrastructure/persistence"
	"github.com/markethub/backend/internal/infrastructure/storage"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
	"github.com/markethub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			MarketHub API
//	@version		1.0
//	@description	Multi-vertical services marketplace backend - vendor onboarding, dynamic listings, subscriptions and orders
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/markethub/backend
//	@contact.email	support@markethub.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting MarketHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	activationRepo := persistence.NewGormActivationRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)

	// Token blacklist: Redis-backed when reachable, in-memory otherwise
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	// Vendor onboarding and review services
	onboardingService := vendorapp.NewOnboardingService(profileRepo)
	vendorReviewService := vendorapp.NewReviewService(profileRepo)

	// Catalog activation service over the built-in entry catalog
	activationService := catalogapp.NewActivationService(activationRepo)

	// Object storage for listing images: S3-compatible endpoint when
	// configured, in-memory store otherwise (local development)
	var objectStorage listingapp.ObjectStorageService
	if cfg.Storage.Endpoint != "" || cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewInMemoryObjectStorage()
		log.Warn("No storage endpoint configured, using in-memory object storage")
	}

	// Listing service with configured form-value retention policy
	retentionPolicy := listing.RetentionPolicy(cfg.Marketplace.RetentionPolicy)
	listingService := listingapp.NewService(listingRepo, objectStorage, retentionPolicy)

	// Durable plan selection store: Redis when reachable, in-memory otherwise
	selectionFactory := cache.NewSelectionStoreFactory(cfg.Redis, cfg.Marketplace.SelectionTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	selectionStore, err := selectionFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize selection store", zap.Error(err))
	}
	subscriptionService := subscriptionapp.NewService(subscriptionRepo, selectionStore)

	// Trade services
	orderService := tradeapp.NewOrderService(orderRepo, listingRepo)
	paymentService := tradeapp.NewPaymentService(paymentRepo, orderRepo)
	reviewService := tradeapp.NewReviewService(reviewRepo, orderRepo)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	vendorReviewHandler := handler.NewVendorReviewHandler(vendorReviewService)
	catalogHandler := handler.NewCatalogHandler(activationService)
	listingHandler := handler.NewListingHandler(listingService, onboardingService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, onboardingService)
	orderHandler := handler.NewOrderHandler(orderService, onboardingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// Public endpoints: registration/login/refresh, the plan catalog
	// (pre-auth plan selection) and the public marketplace browse surface.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/plans",
			"/api/v1/marketplace",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain - authentication
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)

	// Vendor onboarding wizard
	onboardingRoutes := router.NewDomainGroup("onboarding", "/onboarding")
	onboardingRoutes.POST("/initialize", onboardingHandler.Initialize)
	onboardingRoutes.PUT("/business-details", onboardingHandler.SubmitBusinessDetails)
	onboardingRoutes.PUT("/business-contact", onboardingHandler.SubmitBusinessContact)
	onboardingRoutes.PUT("/owner-details", onboardingHandler.SubmitOwnerDetails)
	onboardingRoutes.PUT("/contact-person", onboardingHandler.SubmitContactPerson)
	onboardingRoutes.PUT("/business-address", onboardingHandler.SubmitBusinessAddress)
	onboardingRoutes.GET("/profile", onboardingHandler.GetProfile)

	// Listing management (approved vendors)
	listingRoutes := router.NewDomainGroup("listing", "/listings")
	listingRoutes.GET("/form", listingHandler.Form)
	listingRoutes.POST("/form/switch", listingHandler.SwitchCategory)
	listingRoutes.POST("", listingHandler.Create)
	listingRoutes.POST("/images", listingHandler.UploadImages)
	listingRoutes.GET("/mine", listingHandler.ListMine)
	listingRoutes.GET("/:id", listingHandler.Get)
	listingRoutes.POST("/:id/publish", listingHandler.Publish)
	listingRoutes.POST("/:id/unpublish", listingHandler.Unpublish)

	// Public marketplace browse surface
	marketplaceRoutes := router.NewDomainGroup("marketplace", "/marketplace")
	marketplaceRoutes.GET("/services", catalogHandler.ListActive)
	marketplaceRoutes.GET("/listings", listingHandler.ListActive)
	marketplaceRoutes.GET("/listings/:listingId/reviews", reviewHandler.ListByListing)

	// Subscription plans and durable pre-auth plan selection
	planRoutes := router.NewDomainGroup("plan", "/plans")
	planRoutes.GET("", subscriptionHandler.Plans)
	planRoutes.PUT("/selection", subscriptionHandler.SelectPlan)
	planRoutes.GET("/selection", subscriptionHandler.GetSelection)
	planRoutes.DELETE("/selection", subscriptionHandler.ClearSelection)

	// Vendor subscriptions
	subscriptionRoutes := router.NewDomainGroup("subscription", "/subscriptions")
	subscriptionRoutes.POST("", subscriptionHandler.Subscribe)
	subscriptionRoutes.GET("/active", subscriptionHandler.GetActive)
	subscriptionRoutes.DELETE("/active", subscriptionHandler.Cancel)

	// Orders
	orderRoutes := router.NewDomainGroup("order", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("/mine", orderHandler.ListMine)
	orderRoutes.GET("/received", orderHandler.ListReceived)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.PUT("/:id/status", orderHandler.Transition)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.GET("/:id/payments", paymentHandler.ListByOrder)

	// Payments
	paymentRoutes := router.NewDomainGroup("payment", "/payments")
	paymentRoutes.POST("", paymentHandler.Initiate)
	paymentRoutes.POST("/:id/settle", paymentHandler.Settle)
	paymentRoutes.POST("/:id/fail", paymentHandler.Fail)
	paymentRoutes.POST("/:id/refund", paymentHandler.Refund)

	// Reviews (customer-submitted)
	reviewRoutes := router.NewDomainGroup("review", "/reviews")
	reviewRoutes.POST("", reviewHandler.Create)

	// Admin surface: vendor application review, catalog activation and
	// review moderation
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireRole(string(identity.RoleAdmin)))
	adminRoutes.GET("/vendors", vendorReviewHandler.List)
	adminRoutes.GET("/vendors/:id", vendorReviewHandler.Get)
	adminRoutes.POST("/vendors/:id/approve", vendorReviewHandler.Approve)
	adminRoutes.POST("/vendors/:id/reject", vendorReviewHandler.Reject)
	adminRoutes.POST("/vendors/:id/reopen", vendorReviewHandler.Reopen)
	adminRoutes.GET("/catalog", catalogHandler.ListManaged)
	adminRoutes.POST("/catalog/activations/:id/toggle", catalogHandler.Toggle)
	adminRoutes.POST("/catalog/:entryId/activate", catalogHandler.Activate)
	adminRoutes.POST("/catalog/:entryId/deactivate", catalogHandler.Deactivate)
	adminRoutes.POST("/reviews/:id/hide", reviewHandler.Hide)
	adminRoutes.POST("/reviews/:id/show", reviewHandler.Show)

	// Register all domain groups
	r.Register(authRoutes).
		Register(onboardingRoutes).
		Register(listingRoutes).
		Register(marketplaceRoutes).
		Register(planRoutes).
		Register(subscriptionRoutes).
		Register(orderRoutes).
		Register(paymentRoutes).
		Register(reviewRoutes).
		Register(adminRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
