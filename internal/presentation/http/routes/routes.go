package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kanhaiyya/billing-api/internal/config"
	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	domainRepo "github.com/kanhaiyya/billing-api/internal/domain/repository"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/handler"
	"github.com/kanhaiyya/billing-api/internal/presentation/http/middleware"
	"github.com/kanhaiyya/billing-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Item      *handler.ItemHandler
	Cart      *handler.CartHandler
	Bill      *handler.BillHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.GET("/google", h.Auth.GoogleAuthURL)
			auth.POST("/google/callback", h.Auth.GoogleCallback)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	// Profile and staff management
	protected.GET("/auth/me", h.Auth.Profile)
	protected.POST("/auth/register", adminOnly, h.Auth.Register)

	// Price catalog
	items := protected.Group("/items")
	{
		items.GET("", h.Item.List)
		items.GET("/export", h.Item.Export)
		items.GET("/:id", h.Item.Get)
		items.POST("", adminOnly, h.Item.Create)
		items.POST("/import", adminOnly, h.Item.Import)
		items.PUT("/:id", adminOnly, h.Item.Update)
		items.DELETE("/:id", adminOnly, h.Item.Delete)
	}

	// Per-table carts
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Tables)
		cart.GET("/:table", h.Cart.Get)
		cart.GET("/:table/preview", h.Cart.Preview)
		cart.PUT("/:table", h.Cart.SetLine)
		cart.DELETE("/:table", h.Cart.Clear)
	}

	// Bill ledger. Finalize requires an Idempotency-Key so a retried POST
	// cannot bill the same table twice.
	bills := protected.Group("/bills")
	{
		bills.POST("", middleware.IdempotencyRequired(deps.IdempotencyRepo), h.Bill.Finalize)
		bills.GET("", h.Bill.Search)
		bills.GET("/export", h.Bill.Export)
		bills.GET("/:bill_no", h.Bill.Get)
		bills.GET("/:bill_no/receipt", h.Bill.Receipt)
		bills.POST("/:bill_no/print", h.Bill.Print)
	}

	// Dashboard
	protected.GET("/dashboard/summary", h.Dashboard.Summary)

	// Printer
	protected.GET("/printer/status", h.Printer.Status)
	protected.POST("/printer/test", adminOnly, h.Printer.Test)
}
