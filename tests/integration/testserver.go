package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

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
	"github.com/markethub/backend/internal/infrastructure/persistence"
	"github.com/markethub/backend/internal/infrastructure/storage"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
	"github.com/markethub/backend/internal/interfaces/http/router"
)

// TestServer wires the full HTTP surface against a containerized database,
// mirroring the production route table with in-memory substitutes for Redis
// and object storage.
type TestServer struct {
	DB     *TestDB
	Engine *gin.Engine
	t      *testing.T
}

// NewTestServer builds a test server backed by a fresh PostgreSQL container.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	testDB := NewTestDB(t)

	userRepo := persistence.NewGormUserRepository(testDB.DB)
	profileRepo := persistence.NewGormProfileRepository(testDB.DB)
	activationRepo := persistence.NewGormActivationRepository(testDB.DB)
	listingRepo := persistence.NewGormListingRepository(testDB.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(testDB.DB)
	orderRepo := persistence.NewGormOrderRepository(testDB.DB)
	paymentRepo := persistence.NewGormPaymentRepository(testDB.DB)
	reviewRepo := persistence.NewGormReviewRepository(testDB.DB)

	jwtConfig := config.JWTConfig{
		Secret:                 "test-secret-key-for-integration-1234567890",
		RefreshSecret:          "test-refresh-secret-key-for-integration",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "markethub-test",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtConfig)
	blacklist := auth.NewInMemoryTokenBlacklist()

	log := zap.NewNop()
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	onboardingService := vendorapp.NewOnboardingService(profileRepo)
	vendorReviewService := vendorapp.NewReviewService(profileRepo)
	activationService := catalogapp.NewActivationService(activationRepo)

	objectStorage := storage.NewInMemoryObjectStorage()
	listingService := listingapp.NewService(listingRepo, objectStorage, listing.RetentionPreserve)

	selectionStore := cache.NewInMemorySelectionStore(time.Hour)
	subscriptionService := subscriptionapp.NewService(subscriptionRepo, selectionStore)

	orderService := tradeapp.NewOrderService(orderRepo, listingRepo)
	paymentService := tradeapp.NewPaymentService(paymentRepo, orderRepo)
	reviewService := tradeapp.NewReviewService(reviewRepo, orderRepo)

	authHandler := handler.NewAuthHandler(authService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	vendorReviewHandler := handler.NewVendorReviewHandler(vendorReviewService)
	catalogHandler := handler.NewCatalogHandler(activationService)
	listingHandler := handler.NewListingHandler(listingService, onboardingService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, onboardingService)
	orderHandler := handler.NewOrderHandler(orderService, onboardingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/api/v1/plans",
			"/api/v1/marketplace",
		},
		Logger: log,
	}))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)

	onboardingRoutes := router.NewDomainGroup("onboarding", "/onboarding")
	onboardingRoutes.POST("/initialize", onboardingHandler.Initialize)
	onboardingRoutes.PUT("/business-details", onboardingHandler.SubmitBusinessDetails)
	onboardingRoutes.PUT("/business-contact", onboardingHandler.SubmitBusinessContact)
	onboardingRoutes.PUT("/owner-details", onboardingHandler.SubmitOwnerDetails)
	onboardingRoutes.PUT("/contact-person", onboardingHandler.SubmitContactPerson)
	onboardingRoutes.PUT("/business-address", onboardingHandler.SubmitBusinessAddress)
	onboardingRoutes.GET("/profile", onboardingHandler.GetProfile)

	listingRoutes := router.NewDomainGroup("listing", "/listings")
	listingRoutes.GET("/form", listingHandler.Form)
	listingRoutes.POST("/form/switch", listingHandler.SwitchCategory)
	listingRoutes.POST("", listingHandler.Create)
	listingRoutes.POST("/images", listingHandler.UploadImages)
	listingRoutes.GET("/mine", listingHandler.ListMine)
	listingRoutes.GET("/:id", listingHandler.Get)
	listingRoutes.POST("/:id/publish", listingHandler.Publish)
	listingRoutes.POST("/:id/unpublish", listingHandler.Unpublish)

	marketplaceRoutes := router.NewDomainGroup("marketplace", "/marketplace")
	marketplaceRoutes.GET("/services", catalogHandler.ListActive)
	marketplaceRoutes.GET("/listings", listingHandler.ListActive)
	marketplaceRoutes.GET("/listings/:listingId/reviews", reviewHandler.ListByListing)

	planRoutes := router.NewDomainGroup("plan", "/plans")
	planRoutes.GET("", subscriptionHandler.Plans)
	planRoutes.PUT("/selection", subscriptionHandler.SelectPlan)
	planRoutes.GET("/selection", subscriptionHandler.GetSelection)
	planRoutes.DELETE("/selection", subscriptionHandler.ClearSelection)

	subscriptionRoutes := router.NewDomainGroup("subscription", "/subscriptions")
	subscriptionRoutes.POST("", subscriptionHandler.Subscribe)
	subscriptionRoutes.GET("/active", subscriptionHandler.GetActive)
	subscriptionRoutes.DELETE("/active", subscriptionHandler.Cancel)

	orderRoutes := router.NewDomainGroup("order", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("/mine", orderHandler.ListMine)
	orderRoutes.GET("/received", orderHandler.ListReceived)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.PUT("/:id/status", orderHandler.Transition)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.GET("/:id/payments", paymentHandler.ListByOrder)

	paymentRoutes := router.NewDomainGroup("payment", "/payments")
	paymentRoutes.POST("", paymentHandler.Initiate)
	paymentRoutes.POST("/:id/settle", paymentHandler.Settle)
	paymentRoutes.POST("/:id/fail", paymentHandler.Fail)
	paymentRoutes.POST("/:id/refund", paymentHandler.Refund)

	reviewRoutes := router.NewDomainGroup("review", "/reviews")
	reviewRoutes.POST("", reviewHandler.Create)

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
	r.Setup()

	return &TestServer{
		DB:     testDB,
		Engine: engine,
		t:      t,
	}
}

// Request performs an HTTP request against the test server. A non-empty token
// is sent as a bearer credential; body is JSON-encoded when non-nil.
func (ts *TestServer) Request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(ts.t, err, "Failed to marshal request body")
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

// RequestWithHeaders performs a request with additional headers.
func (ts *TestServer) RequestWithHeaders(method, path, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(ts.t, err, "Failed to marshal request body")
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

// DecodeData unmarshals the data field of a success envelope into out.
func (ts *TestServer) DecodeData(w *httptest.ResponseRecorder, out interface{}) {
	ts.t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), &envelope), "Failed to decode response envelope: %s", w.Body.String())
	require.True(ts.t, envelope.Success, "Expected success envelope, got: %s", w.Body.String())
	require.NoError(ts.t, json.Unmarshal(envelope.Data, out), "Failed to decode response data: %s", w.Body.String())
}

// RegisterAndLogin registers an account and returns its access token and user ID.
func (ts *TestServer) RegisterAndLogin(email, name, password, role string) (token string, userID string) {
	ts.t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"name":     name,
		"password": password,
		"role":     role,
	})
	require.Equal(ts.t, http.StatusCreated, w.Code, "Registration failed: %s", w.Body.String())

	var user struct {
		ID string `json:"id"`
	}
	ts.DecodeData(w, &user)

	return ts.Login(email, password), user.ID
}

// Login authenticates an existing account and returns its access token.
func (ts *TestServer) Login(email, password string) string {
	ts.t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(ts.t, http.StatusOK, w.Code, "Login failed: %s", w.Body.String())

	var result struct {
		Token struct {
			AccessToken string `json:"access_token"`
		} `json:"token"`
	}
	ts.DecodeData(w, &result)
	require.NotEmpty(ts.t, result.Token.AccessToken)

	return result.Token.AccessToken
}
