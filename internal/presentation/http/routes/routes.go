package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/config"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
	domainRepo "github.com/kirekcahs/codebrew-pos/internal/domain/repository"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/handler"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/middleware"
	"github.com/kirekcahs/codebrew-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Receipt  *handler.ReceiptHandler
	Journal  *handler.JournalHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager       *utils.JWTManager
	Cfg              *config.Config
	Sessions         *service.SessionRegistry
	IdempotencyStore domainRepo.IdempotencyStore
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Sessions))

		rateLimiter := middleware.NewSessionRateLimiter(&deps.Cfg.RateLimit)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.PUT("/auth/branch", h.Auth.SelectBranch)
	protected.GET("/session", h.Auth.GetSession)

	// Register operations require the POS capability; only cashiers ring
	// sales, the other roles administer elsewhere.
	pos := protected.Group("")
	pos.Use(middleware.RequireCapability(enum.CapabilityPOS))
	{
		pos.GET("/products", h.Catalog.List)
		pos.POST("/products/refresh", h.Catalog.Refresh)

		pos.GET("/cart", h.Cart.Get)
		pos.POST("/cart/items", h.Cart.AddItem)
		pos.PATCH("/cart/items/:product_id", h.Cart.AdjustQuantity)
		pos.DELETE("/cart/items/:product_id", h.Cart.RemoveItem)
		pos.PUT("/cart/discount", h.Cart.SetDiscount)

		pos.POST("/checkout/begin", h.Checkout.Begin)
		pos.GET("/checkout", h.Checkout.State)
		pos.POST("/checkout", middleware.Idempotency(deps.IdempotencyStore), h.Checkout.Submit)

		pos.GET("/receipts", h.Receipt.List)
		pos.GET("/receipts/latest", h.Receipt.Latest)
		pos.GET("/receipts/summary", h.Receipt.Summary)
		pos.POST("/receipts/latest/print", h.Receipt.PrintLatest)
		pos.GET("/receipts/journal", h.Journal.List)
		pos.GET("/printer/status", h.Receipt.PrinterStatus)
	}
}
