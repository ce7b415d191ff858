package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/swiftbasket/backend/internal/application/cart"
	catalogapp "github.com/swiftbasket/backend/internal/application/catalog"
	identityapp "github.com/swiftbasket/backend/internal/application/identity"
	orderapp "github.com/swiftbasket/backend/internal/application/order"
	reviewapp "github.com/swiftbasket/backend/internal/application/review"
	"github.com/swiftbasket/backend/internal/domain/cart"
	"github.com/swiftbasket/backend/internal/domain/identity"
	"github.com/swiftbasket/backend/internal/infrastructure/auth"
	"github.com/swiftbasket/backend/internal/infrastructure/cache"
	"github.com/swiftbasket/backend/internal/infrastructure/config"
	"github.com/swiftbasket/backend/internal/infrastructure/logger"
	"github.com/swiftbasket/backend/internal/infrastructure/mail"
	"github.com/swiftbasket/backend/internal/infrastructure/persistence"
	"github.com/swiftbasket/backend/internal/infrastructure/social"
	"github.com/swiftbasket/backend/internal/interfaces/http/handler"
	"github.com/swiftbasket/backend/internal/interfaces/http/middleware"
	"github.com/swiftbasket/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SwiftBasket backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs session carts, the token blacklist and the password
	// reset handshake. Development falls back to in-memory stores when
	// Redis is unreachable; production does not start without it.
	redisClient := connectRedis(cfg, log)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	var (
		sessionCarts cart.Repository
		blacklist    auth.TokenBlacklist
		handshake    cache.HandshakeStore
	)
	if redisClient != nil {
		sessionCarts = cache.NewRedisCartStoreWithClient(redisClient, "", 0)
		blacklist = cache.NewRedisTokenBlacklistWithClient(redisClient, "")
		handshake = cache.NewRedisHandshakeStoreWithClient(redisClient, "")
	} else {
		sessionCarts = cache.NewMemoryCartStore()
		blacklist = cache.NewMemoryTokenBlacklist()
		handshake = cache.NewMemoryHandshakeStore()
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	resetTokenRepo := persistence.NewGormResetTokenRepository(db.DB)
	userCarts := persistence.NewGormCartRepository(db.DB)

	// Outbound integrations
	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail)
		log.Info("SMTP mail enabled", zap.String("host", cfg.Mail.Host))
	} else {
		mailer = mail.NewNopMailer(log)
	}

	var publisher social.Publisher
	if cfg.Social.Enabled {
		adapter, err := social.NewChirpAdapter(&social.ChirpConfig{
			BaseURL:   cfg.Social.BaseURL,
			AppKey:    cfg.Social.AppKey,
			AppSecret: cfg.Social.AppSecret,
			Timeout:   cfg.Social.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to configure social publisher", zap.Error(err))
		}
		publisher = adapter
		log.Info("Social posting enabled", zap.String("base_url", cfg.Social.BaseURL))
	} else {
		publisher = social.NewNopPublisher(log)
	}

	// Application services. The cart service doubles as the cart
	// merger invoked on buyer login.
	jwtService := auth.NewJWTService(cfg.JWT)
	cartService := cartapp.NewService(sessionCarts, userCarts, productRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, cartService, log)
	resetService := identityapp.NewPasswordResetService(userRepo, resetTokenRepo, handshake, mailer, cfg.App.BaseURL, log)
	storeService := catalogapp.NewStoreService(storeRepo, publisher, log)
	productService := catalogapp.NewProductService(productRepo, storeRepo, reviewRepo, publisher, log)
	checkoutService := orderapp.NewCheckoutService(orderRepo, userCarts, productRepo, userRepo, mailer, log)
	reviewService := reviewapp.NewService(reviewRepo, productRepo, orderRepo, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	resetHandler := handler.NewPasswordResetHandler(resetService)
	storeHandler := handler.NewStoreHandler(storeService, productService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	systemHandler := handler.NewSystemHandler(version, func() error {
		if err := db.Ping(); err != nil {
			return err
		}
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		}
		return nil
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Authentication for protected groups. Applied per group rather
	// than globally because the same paths mix public and protected
	// methods: anyone may GET a product, only its vendor may PUT it.
	authMW := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	optionalAuthMW := middleware.OptionalJWTAuthMiddleware(jwtService)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Registration and login are public. Login reads X-Session-ID to
	// pick up the anonymous cart for merging.
	authPublic := router.NewDomainGroup("auth-public", "/auth")
	authPublic.Use(middleware.Session())
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authPublic.Use(middleware.RateLimit(authLimiter))
	}
	authPublic.POST("/register", authHandler.Register)
	authPublic.POST("/login", authHandler.Login)

	authProtected := router.NewDomainGroup("auth", "/auth")
	authProtected.Use(authMW)
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/me", authHandler.Me)

	// Password reset is rate limited per target email so one address
	// cannot be flooded from many IPs.
	resetLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	resetRoutes := router.NewDomainGroup("password-reset", "/password-reset")
	resetRoutes.POST("/request", middleware.RateLimitByKey(resetLimiter, resetRateKey), resetHandler.Request)
	resetRoutes.POST("/validate", resetHandler.Validate)
	resetRoutes.POST("/confirm", resetHandler.Consume)

	// Catalog reads are public
	storesPublic := router.NewDomainGroup("stores-public", "/stores")
	storesPublic.GET("", storeHandler.List)
	storesPublic.GET("/:id", storeHandler.Get)
	storesPublic.GET("/:id/products", storeHandler.ListProducts)

	storesVendor := router.NewDomainGroup("stores", "/stores")
	storesVendor.Use(authMW)
	storesVendor.POST("", middleware.RequireCapability(string(identity.CapStoreCreate)), storeHandler.Create)
	storesVendor.GET("/mine", storeHandler.GetMine)
	storesVendor.PUT("/:id", middleware.RequireCapability(string(identity.CapStoreUpdate)), storeHandler.Update)
	storesVendor.DELETE("/:id", middleware.RequireCapability(string(identity.CapStoreDelete)), storeHandler.Delete)

	productsPublic := router.NewDomainGroup("products-public", "/products")
	productsPublic.GET("", productHandler.List)
	productsPublic.GET("/:id", productHandler.Get)
	productsPublic.GET("/:id/reviews", reviewHandler.ListByProduct)

	productsProtected := router.NewDomainGroup("products", "/products")
	productsProtected.Use(authMW)
	productsProtected.POST("", middleware.RequireCapability(string(identity.CapProductCreate)), productHandler.Create)
	productsProtected.PUT("/:id", middleware.RequireCapability(string(identity.CapProductUpdate)), productHandler.Update)
	productsProtected.DELETE("/:id", middleware.RequireCapability(string(identity.CapProductDelete)), productHandler.Delete)
	productsProtected.POST("/:id/reviews", middleware.RequireCapability(string(identity.CapReviewCreate)), reviewHandler.Create)

	// Cart works for anonymous sessions and logged-in buyers alike; a
	// valid token wins over the session header, and token holders need
	// the cart capability to reach their stored cart.
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.Use(optionalAuthMW, middleware.Session(),
		middleware.RequireCapabilityIfAuthenticated(string(identity.CapCartManage)))
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.DELETE("", cartHandler.Clear)
	cartRoutes.POST("/items", cartHandler.Add)
	cartRoutes.PUT("/items/:productId", cartHandler.SetQuantity)
	cartRoutes.DELETE("/items/:productId", cartHandler.Remove)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.Use(authMW, middleware.RequireCapability(string(identity.CapOrderRead)))
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)

	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.Use(authMW, middleware.RequireCapability(string(identity.CapOrderCreate)))
	checkoutRoutes.POST("", orderHandler.Checkout)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.Info)

	r.Register(authPublic).
		Register(authProtected).
		Register(resetRoutes).
		Register(storesPublic).
		Register(storesVendor).
		Register(productsPublic).
		Register(productsProtected).
		Register(cartRoutes).
		Register(orderRoutes).
		Register(checkoutRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// connectRedis connects to Redis, or returns nil when Redis is
// unreachable outside production
func connectRedis(cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unreachable, using in-memory stores", zap.Error(err))
		return nil
	}

	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	return client
}

// resetRateKey keys password reset rate limiting on the target email.
// The body is restored so the handler can bind it again; parse
// failures fall back to the client IP.
func resetRateKey(c *gin.Context) string {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var req struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &req); err != nil || req.Email == "" {
		return c.ClientIP()
	}
	return "email:" + strings.ToLower(req.Email)
}
